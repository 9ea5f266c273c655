package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"imdb-visualizer/utils"
)

// Fetcher downloads the dataset over HTTP.
type Fetcher struct {
	client *http.Client
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewFetcher creates a Fetcher. A zero timeout waits as long as the transport allows;
// attempts <= 1 disables retries.
func NewFetcher(timeout time.Duration, attempts int, logger *utils.Logger) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		retry: &utils.RetryConfig{
			MaxAttempts: attempts,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		logger: logger,
	}
}

// Fetch returns the body of url. Any non-2xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	var body []byte

	err := f.retry.Do(ctx, "fetch-dataset", func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("source: build request: %w", err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("source: GET %s: %w", url, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return fmt.Errorf("source: GET %s: unexpected status %s", url, resp.Status)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("source: read body: %w", err)
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Debug("[source] Fetched %d bytes from %s", len(body), url)
	return body, nil
}
