package storage

import (
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"price-aggregator/models"
)

// YAMLWriter writes ranked listings as a YAML sequence.
type YAMLWriter struct {
	mu      sync.Mutex
	file    *os.File
	written bool
}

// NewYAMLWriter creates (or truncates) the file at path.
func NewYAMLWriter(path string) (*YAMLWriter, error) {
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}
	return &YAMLWriter{file: f}, nil
}

// Write encodes ranked as the whole document. It may be called once.
func (y *YAMLWriter) Write(ranked []models.RankedListing) error {
	y.mu.Lock()
	defer y.mu.Unlock()

	if y.written {
		return ErrAlreadyWritten
	}
	y.written = true

	enc := yaml.NewEncoder(y.file)
	enc.SetIndent(2)
	if err := enc.Encode(ranked); err != nil {
		return eris.Wrap(err, "yaml: encode")
	}
	return eris.Wrap(enc.Close(), "yaml: flush")
}

func (y *YAMLWriter) Close() error {
	return y.file.Close()
}
