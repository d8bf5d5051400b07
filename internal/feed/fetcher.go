// Package feed acquires the raw catalog document from an unreliable
// upstream that exposes the same export at several historical paths.
package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/melodika/melodika-sync/internal/httputil"
)

// ErrAllSourcesFailed is returned when every candidate URL failed or
// answered with an empty body. Fatal for a sync run.
var ErrAllSourcesFailed = errors.New("all feed sources failed")

// Fetcher tries an ordered list of candidate URLs and returns the first
// non-empty body. Candidates are tried sequentially, never raced: which
// source answered must stay diagnosable, and the upstream is fragile.
type Fetcher struct {
	client     *http.Client
	urls       []string
	timeout    time.Duration
	maxRetries int
	log        *slog.Logger
}

// New creates a fetcher over the given candidate URLs. timeout bounds each
// individual candidate, not the whole acquisition.
func New(client *http.Client, urls []string, timeout time.Duration, maxRetries int, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		client:     client,
		urls:       urls,
		timeout:    timeout,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Fetch returns the raw document and the URL that served it. A failing
// candidate (network error, non-OK status, empty body) is logged and the
// next one is tried; only exhausting the list fails the acquisition.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, string, error) {
	var lastErr error
	for _, url := range f.urls {
		body, err := f.fetchOne(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, "", ctx.Err()
			}
			lastErr = err
			f.log.Warn("feed source failed", "url", url, "error", err)
			continue
		}
		f.log.Info("feed source answered", "url", url, "bytes", len(body))
		return body, url, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no feed URLs configured")
	}
	return nil, "", fmt.Errorf("%w: %v", ErrAllSourcesFailed, lastErr)
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range httputil.FeedHeaders() {
		req.Header[k] = v
	}

	resp, err := httputil.DoWithRetry(f.client, req, f.maxRetries)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := httputil.ReadBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, errors.New("empty response body")
	}
	return body, nil
}
