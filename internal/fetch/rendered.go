package fetch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-rod/rod"

	"westendwatcher/internal/browser"
)

// renderedFetcher retrieves pages through a headless browser so that
// JavaScript-built listings arrive fully rendered.
type renderedFetcher struct {
	browser browser.Interface
}

// NewRendered builds a Fetcher that loads each page in the shared headless
// browser, waits for it to stabilize, and returns the rendered DOM as HTML.
func NewRendered(b browser.Interface) Fetcher {
	return &renderedFetcher{browser: b}
}

func (r *renderedFetcher) Fetch(ctx context.Context, url string) (string, error) {
	slog.Info("fetching rendered HTML", "url", url)

	var rendered string
	err := r.browser.WithPage(ctx, url, func(page *rod.Page) error {
		var err error
		rendered, err = page.HTML()
		return err
	})
	if err != nil {
		return "", fmt.Errorf("render %s: %w", url, err)
	}
	return rendered, nil
}
