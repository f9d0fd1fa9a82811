package scrape

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"

	"westendwatcher/internal"
)

// noneExtractor handles unknown site identifiers by extracting nothing.
type noneExtractor struct{}

func (n *noneExtractor) SiteID() string {
	return "none"
}

func (n *noneExtractor) Extract(_ *goquery.Document, siteID string, _ string) []internal.ShowRecord {
	slog.Warn("no extractor for site, returning no shows", "site", siteID)
	return nil
}
