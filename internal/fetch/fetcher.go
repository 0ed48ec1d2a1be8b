// Package fetch downloads images over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrDownload wraps every failure to retrieve an image: transport errors,
// timeouts, non-2xx responses and oversized bodies.
var ErrDownload = errors.New("failed to download image")

// DefaultTimeout bounds a single download.
const DefaultTimeout = 10 * time.Second

// Fetcher performs one GET per call with a fixed timeout and a size cap.
// It does not retry.
type Fetcher struct {
	client    *http.Client
	maxBytes  int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with each request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// New creates a Fetcher. A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration, maxBytes int64, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:   &http.Client{},
		maxBytes: maxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f.client.Timeout = timeout
	return f
}

// Fetch downloads url and returns the response body.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s for url: %s", ErrDownload, resp.Status, url)
	}

	if f.maxBytes > 0 && resp.ContentLength > f.maxBytes {
		return nil, fmt.Errorf("%w: content length %d exceeds limit of %d bytes",
			ErrDownload, resp.ContentLength, f.maxBytes)
	}

	body := io.Reader(resp.Body)
	if f.maxBytes > 0 {
		// One extra byte distinguishes "exactly at the limit" from "over it".
		body = io.LimitReader(resp.Body, f.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
		return nil, fmt.Errorf("%w: body exceeds limit of %d bytes", ErrDownload, f.maxBytes)
	}

	return data, nil
}
