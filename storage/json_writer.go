package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/rotisserie/eris"

	"price-aggregator/models"
)

// record is the export shape of a ranked listing; unlike the API response it
// carries the parsed price.
type record struct {
	models.Listing
	NumericPrice float64 `json:"numeric_price"`
}

// JSONWriter writes ranked listings as an indented JSON array.
type JSONWriter struct {
	mu      sync.Mutex
	file    *os.File
	written bool
}

// NewJSONWriter creates (or truncates) the file at path.
func NewJSONWriter(path string) (*JSONWriter, error) {
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return &JSONWriter{file: f}, nil
}

// Write encodes ranked as the whole document. It may be called once.
func (j *JSONWriter) Write(ranked []models.RankedListing) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.written {
		return ErrAlreadyWritten
	}
	j.written = true

	records := make([]record, 0, len(ranked))
	for _, l := range ranked {
		records = append(records, record{Listing: l.Listing, NumericPrice: l.NumericPrice})
	}

	enc := json.NewEncoder(j.file)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return eris.Wrap(enc.Encode(records), "json: encode")
}

func (j *JSONWriter) Close() error {
	return j.file.Close()
}
