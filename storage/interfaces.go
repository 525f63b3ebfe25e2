// Package storage exports ranked search results to files.
package storage

import (
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"

	"price-aggregator/models"
)

// ErrAlreadyWritten is returned by document formats (JSON, YAML) on a second
// Write, which would otherwise produce an invalid file.
var ErrAlreadyWritten = eris.New("storage: results already written")

// ResultWriter is the interface any export format must satisfy. CSV accepts
// repeated writes; JSON and YAML hold a single result set.
type ResultWriter interface {
	Write(ranked []models.RankedListing) error
	Close() error
}

// NewWriter picks a writer from the file extension of path: .csv, .json,
// .yaml or .yml.
func NewWriter(path string) (ResultWriter, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVWriter(path)
	case ".json":
		return NewJSONWriter(path)
	case ".yaml", ".yml":
		return NewYAMLWriter(path)
	default:
		return nil, eris.Errorf("unsupported export format %q", filepath.Ext(path))
	}
}
