// Package fetch downloads binary resources (images) with bounded retry and
// exponential backoff. Downloads either return the complete byte content or
// fail; partial bytes are never returned.
package fetch

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// maxBlobSize caps a single download at 16MB.
const maxBlobSize = 16 << 20

// Config holds fetcher tuning.
type Config struct {
	// Retries is the number of attempts per URL.
	Retries int
	// Timeout applies per attempt.
	Timeout time.Duration
	// BaseDelay for exponential backoff between attempts.
	BaseDelay time.Duration
	// RPS caps requests per second; 0 disables throttling.
	RPS int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Retries:   3,
		Timeout:   10 * time.Second,
		BaseDelay: time.Second,
	}
}

// DownloadError is returned when all retry attempts for a URL are
// exhausted. It wraps the last underlying cause.
type DownloadError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Fetcher downloads resources over HTTP.
type Fetcher struct {
	config  Config
	client  *http.Client
	limiter *rate.Limiter
}

// New creates a fetcher from config.
func New(cfg Config) *Fetcher {
	if cfg.Retries <= 0 {
		cfg.Retries = 3
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = time.Second
	}

	var limiter *rate.Limiter
	if cfg.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS)
	}

	return &Fetcher{
		config:  cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: limiter,
	}
}

// Get downloads the resource at url and returns its complete byte content.
// On failure it retries with exponential backoff (BaseDelay, 2x BaseDelay,
// 4x BaseDelay, ...) up to the configured attempt count, then returns a
// *DownloadError wrapping the last cause. Context cancellation aborts
// between attempts.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 0; attempt < f.config.Retries; attempt++ {
		if attempt > 0 {
			delay := f.config.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))

			select {
			case <-ctx.Done():
				return nil, &DownloadError{URL: url, Attempts: attempt, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		if f.limiter != nil {
			if err := f.limiter.Wait(ctx); err != nil {
				return nil, &DownloadError{URL: url, Attempts: attempt, Err: err}
			}
		}

		data, err := f.fetchOnce(ctx, url)
		if err == nil {
			return data, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return nil, &DownloadError{URL: url, Attempts: f.config.Retries, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "CampusPocket/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > maxBlobSize {
		return nil, fmt.Errorf("resource is %d bytes, cap is %d", resp.ContentLength, maxBlobSize)
	}

	// Read one byte past the cap so an over-cap body is detected rather
	// than silently truncated
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBlobSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxBlobSize {
		return nil, fmt.Errorf("resource exceeds %d byte cap", maxBlobSize)
	}

	return data, nil
}
