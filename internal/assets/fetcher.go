// Package assets retrieves the guide preview image embedded in the
// auto-reply email. Fetch failures are expected to be tolerated by callers;
// the auto-reply is sent without the image.
package assets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds the preview download. The original handler ran
// without any timeout; the bound here is a hardening margin only.
const DefaultFetchTimeout = 5 * time.Second

// FetchError reports a failed asset download.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher downloads a single fixed asset over HTTP.
type Fetcher struct {
	url    string
	client *http.Client
}

// NewFetcher creates a Fetcher for the given URL. A non-positive timeout
// falls back to DefaultFetchTimeout.
func NewFetcher(url string, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Fetcher{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch performs one GET against the configured URL and returns the raw body
// on a 2xx response. Any network error or non-2xx status yields a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	return body, nil
}
