package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rotisserie/eris"

	"price-aggregator/models"
)

// CSVWriter writes ranked listings to a CSV file, one row per listing.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	f, err := createFile(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"rank", "platform", "title", "price", "numeric_price", "quantity", "rating", "link", "image", "exported_at",
	}); err != nil {
		_ = f.Close()
		return nil, eris.Wrap(err, "csv: write header")
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends the listings in rank order.
func (c *CSVWriter) Write(ranked []models.RankedListing) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().Format(time.RFC3339)
	for i, l := range ranked {
		row := []string{
			strconv.Itoa(i + 1),
			string(l.Platform),
			l.Title,
			l.Price,
			strconv.FormatFloat(l.NumericPrice, 'f', 2, 64),
			l.Quantity,
			l.Rating,
			l.Link,
			l.Image,
			now,
		}
		if err := c.writer.Write(row); err != nil {
			return eris.Wrap(err, "csv: write row")
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file. A failed flush is reported
// ahead of any close error.
func (c *CSVWriter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.writer.Flush()
	flushErr := c.writer.Error()
	closeErr := c.file.Close()
	if flushErr != nil {
		return eris.Wrap(flushErr, "csv: flush")
	}
	return closeErr
}

func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, eris.Wrap(err, "create output dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, eris.Wrapf(err, "create file %q", path)
	}
	return f, nil
}
