package internal

import "github.com/PuerkitoBio/goquery"

// Extractor turns a parsed listing page into normalized show records.
// Implementations are pure functions of their inputs: no I/O, and failures
// on a single candidate element are absorbed and logged so one malformed
// fragment never aborts the rest of the page.
type Extractor interface {
	// SiteID returns the site identifier this extractor is configured for
	// (e.g. for registry lookup and log lines).
	SiteID() string
	Extract(doc *goquery.Document, siteID string, pageURL string) []ShowRecord
}
