// Package fetch retrieves listing-page HTML for the scrape layer, either
// over plain HTTP or through a headless browser for sites that render their
// listings with JavaScript.
package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 5 * time.Second
	defaultTimeout    = 30 * time.Second
	defaultUserAgent  = "TheaterScraperBot/1.0"
)

// Fetcher retrieves the HTML of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

type staticFetcher struct {
	maxRetries int
	retryDelay time.Duration
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client

	client *resty.Client
}

type Option func(*staticFetcher)

func WithRetries(maxRetries int, delay time.Duration) Option {
	return func(f *staticFetcher) {
		f.maxRetries = maxRetries
		f.retryDelay = delay
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(f *staticFetcher) {
		f.timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(f *staticFetcher) {
		f.userAgent = userAgent
	}
}

// WithHTTPClient overrides the underlying HTTP client, mainly for tests
// against httptest servers.
func WithHTTPClient(c *http.Client) Option {
	return func(f *staticFetcher) {
		f.httpClient = c
	}
}

// NewStatic builds a Fetcher that retrieves pages over plain HTTP with
// bounded retries and a fixed delay between attempts.
func NewStatic(opts ...Option) Fetcher {
	f := &staticFetcher{
		maxRetries: defaultMaxRetries,
		retryDelay: defaultRetryDelay,
		timeout:    defaultTimeout,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	client := resty.New()
	if f.httpClient != nil {
		client = resty.NewWithClient(f.httpClient)
	}
	client.
		SetRetryCount(f.maxRetries-1).
		SetRetryWaitTime(f.retryDelay).
		SetRetryMaxWaitTime(f.retryDelay).
		SetTimeout(f.timeout).
		SetHeader("User-Agent", f.userAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml,application/xml").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.IsError()
		})
	f.client = client
	return f
}

func (f *staticFetcher) Fetch(ctx context.Context, url string) (string, error) {
	slog.Info("fetching HTML", "url", url)

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: status %s", url, resp.Status())
	}

	slog.Debug("fetched HTML", "url", url, "status", resp.StatusCode(), "bytes", len(resp.Body()))
	return resp.String(), nil
}
