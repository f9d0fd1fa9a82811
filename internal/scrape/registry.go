package scrape

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"westendwatcher/internal"
)

var ErrExtractorNotFound = errors.New("extractor not found")

// Registry resolves site identifiers to their extractors.
type Registry interface {
	GetExtractor(siteID string) (internal.Extractor, error)
}

// ExtractorMiddleware wraps an extractor with cross-cutting behavior.
type ExtractorMiddleware func(internal.Extractor) internal.Extractor

type registry struct {
	extractors map[string]internal.Extractor
}

type RegistryOption func(*registry)

// WithExtractor registers an extractor under a site identifier, with optional
// middleware applied innermost-first.
func WithExtractor(siteID string, x internal.Extractor, mw ...ExtractorMiddleware) RegistryOption {
	return func(r *registry) {
		for _, m := range mw {
			x = m(x)
		}
		r.extractors[siteID] = x
	}
}

func NewRegistry(opts ...RegistryOption) Registry {
	r := &registry{extractors: map[string]internal.Extractor{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *registry) GetExtractor(siteID string) (internal.Extractor, error) {
	x, ok := r.extractors[siteID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExtractorNotFound, siteID)
	}
	return x, nil
}

// Profiles returns the extraction profiles for every configured site, in the
// order sites are scraped and reported.
func Profiles() []Profile {
	return []Profile{
		donmarProfile(),
		nationalProfile(),
		bridgeProfile(),
		hampsteadProfile(),
		maryleboneProfile(),
		sohoDeanProfile(),
		sohoWalthamstowProfile(),
		rscProfile(),
		royalCourtProfile(),
		druryLaneProfile(),
	}
}

// DefaultRegistry builds a registry covering every configured site.
func DefaultRegistry(mw ...ExtractorMiddleware) Registry {
	opts := make([]RegistryOption, 0, 10)
	for _, p := range Profiles() {
		opts = append(opts, WithExtractor(p.SiteID, New(p), mw...))
	}
	return NewRegistry(opts...)
}

// Dispatch parses raw HTML once and routes it to the extractor registered for
// the site. Empty HTML and unknown sites both yield an empty result rather
// than an error; an unconfigured site is a recoverable condition.
func Dispatch(reg Registry, rawHTML, siteID, pageURL string) []internal.ShowRecord {
	if rawHTML == "" {
		slog.Error("no HTML to parse", "site", siteID)
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		slog.Error("failed to parse HTML", "site", siteID, "error", err)
		return nil
	}

	x, err := reg.GetExtractor(siteID)
	if err != nil {
		slog.Warn("no extractor configured for site", "site", siteID)
		x = &noneExtractor{}
	}
	return x.Extract(doc, siteID, pageURL)
}
