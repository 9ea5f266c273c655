package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"imdb-visualizer/models"
)

// CSVWriter writes the cleaned movie table to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	header := append(append([]string(nil), models.Columns...), models.ColDecade)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends one row per movie.
func (c *CSVWriter) Write(movies []*models.Movie) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, m := range movies {
		row := []string{
			m.Director,
			formatFloat(m.Rating),
			strconv.Itoa(m.ReleasedYear),
			formatFloat(m.MetaScore),
			strconv.Itoa(m.Votes),
			strconv.Itoa(m.Runtime),
			formatFloat(m.Gross),
			strconv.Itoa(m.Decade),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
