package extraction

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Fetcher downloads attachment bytes. Transient transport failures are
// retried a fixed number of times; 4xx responses are permanent (the document
// is gone or inaccessible) and never retried.
type Fetcher struct {
	http    *http.Client
	retries int
	logger  *slog.Logger
}

func NewFetcher(timeout time.Duration, retries int, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	if retries < 0 {
		retries = 0
	}
	return &Fetcher{
		http:    &http.Client{Timeout: timeout},
		retries: retries,
		logger:  logger,
	}
}

// Fetch returns the document bytes and the Content-Type the server reported.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(time.Duration(attempt) * 250 * time.Millisecond):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, "", err
		}
		resp, err := f.http.Do(req)
		if err != nil {
			lastErr = err
			f.logger.Warn("document fetch failed", "url", url, "attempt", attempt, "error", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				lastErr = readErr
				continue
			}
			return body, resp.Header.Get("Content-Type"), nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, "", fmt.Errorf("document returned %d", resp.StatusCode)
		default:
			lastErr = fmt.Errorf("document returned %d", resp.StatusCode)
		}
	}
	return nil, "", fmt.Errorf("fetch exhausted retries: %v", lastErr)
}
