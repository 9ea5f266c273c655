package source

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"imdb-visualizer/models"
	"imdb-visualizer/utils"
)

// Cleaner turns raw rows into filled, typed records.
type Cleaner interface {
	Clean(raw []*models.RawMovie) ([]*models.Movie, error)
}

// Loader fetches, parses and cleans the dataset.
type Loader struct {
	url     string
	fetcher *Fetcher
	cleaner Cleaner
	logger  *utils.Logger
}

// NewLoader creates a Loader for the CSV at url.
func NewLoader(url string, fetcher *Fetcher, cleaner Cleaner, logger *utils.Logger) *Loader {
	return &Loader{url: url, fetcher: fetcher, cleaner: cleaner, logger: logger}
}

// Load returns the cleaned record collection.
func (l *Loader) Load(ctx context.Context) ([]*models.Movie, error) {
	start := time.Now()

	body, err := l.fetcher.Fetch(ctx, l.url)
	if err != nil {
		return nil, err
	}

	raw, err := ParseCSV(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("source: %s contains no rows", l.url)
	}

	movies, err := l.cleaner.Clean(raw)
	if err != nil {
		return nil, err
	}

	l.logger.Duration(start, "[source] Loaded %d movies", len(movies))
	return movies, nil
}
