package scrape

import (
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"westendwatcher/internal"
)

// chromeTerms mark headings that belong to page furniture rather than shows.
var chromeTerms = []string{"menu", "navigation", "home", "about", "contact"}

type engine struct {
	profile Profile
}

// New builds an extractor for the given site profile.
func New(p Profile, opts ...Option) internal.Extractor {
	for _, opt := range opts {
		opt(&p)
	}
	return &engine{profile: p}
}

func (e *engine) SiteID() string {
	return e.profile.SiteID
}

// Extract walks the parsed page and returns every show it can identify.
// A show without a title is skipped; every other field is best-effort.
func (e *engine) Extract(doc *goquery.Document, siteID string, pageURL string) []internal.ShowRecord {
	p := e.profile

	if p.Lead != nil {
		if shows := p.Lead(doc, p, siteID, pageURL); len(shows) > 0 {
			slog.Debug("lead hook found shows", "site", siteID, "count", len(shows))
			return shows
		}
	}

	containers := e.discoverContainers(doc, siteID)

	var shows []internal.ShowRecord
	skipped := 0
	containers.Each(func(_ int, card *goquery.Selection) {
		show, ok := e.extractShow(card, siteID)
		if !ok {
			skipped++
			return
		}
		shows = append(shows, show)
	})
	if skipped > 0 {
		slog.Debug("skipped cards without a usable title", "site", siteID, "count", skipped)
	}

	if len(shows) == 0 && p.Rescue != nil {
		shows = p.Rescue(doc, p, siteID, pageURL)
		if len(shows) > 0 {
			slog.Debug("rescue hook found shows", "site", siteID, "count", len(shows))
		}
	}
	if len(shows) == 0 && !p.SkipHeadingScan {
		shows = e.headingScan(doc, siteID, pageURL)
	}

	slog.Debug("extraction complete", "site", siteID, "shows", len(shows))
	return shows
}

// discoverContainers tries each container selector tier in order and keeps
// the first one that matches anything.
func (e *engine) discoverContainers(doc *goquery.Document, siteID string) *goquery.Selection {
	p := e.profile
	for _, sel := range p.ContainerSelectors {
		if found := findAll(doc.Selection, sel); found.Length() > 0 {
			slog.Debug("found show containers", "site", siteID, "selector", sel, "count", found.Length())
			return found
		}
	}
	if p.MoreContainers != nil {
		if found := p.MoreContainers(doc); found != nil && found.Length() > 0 {
			slog.Debug("found show containers via site hook", "site", siteID, "count", found.Length())
			return found
		}
	}
	return doc.Selection.Find("")
}

func (e *engine) extractShow(card *goquery.Selection, siteID string) (internal.ShowRecord, bool) {
	p := e.profile

	titleEl := firstMatch(card, p.TitleSelectors)
	if titleEl.Length() == 0 && p.ProminentTextFallback {
		titleEl = prominentText(card)
	}
	if titleEl.Length() == 0 {
		return internal.ShowRecord{}, false
	}
	title := cleanText(titleEl.First().Text())
	if title == "" {
		return internal.ShowRecord{}, false
	}

	show := newShow(p, siteID, title, resolveURL(p.Origin, anchorHref(titleEl, card)))

	if dateText := textOf(firstMatch(card, p.DateSelectors)); dateText != "" {
		show.PerformanceStart, show.PerformanceEnd = ParseDateRange(dateText, p.DateSeparators, p.FromUntil)
	}
	if desc := textOf(firstMatch(card, p.DescSelectors)); len(desc) >= p.MinDescriptionLen {
		show.Description = desc
	}
	show.PriceRange = textOf(firstMatch(card, p.PriceSelectors))
	show.Genre = textOf(firstMatch(card, p.GenreSelectors))

	if len(p.VenueSelectors) > 0 {
		if venue := textOf(firstMatch(card, p.VenueSelectors)); venue != "" {
			show.Venue = venue + p.VenueSuffix
		}
	}

	return show, true
}

// headingScan is the last-resort pass: treat substantial page headings as
// show titles, filtering out obvious navigation chrome.
func (e *engine) headingScan(doc *goquery.Document, siteID string, pageURL string) []internal.ShowRecord {
	p := e.profile

	scope := doc.Selection
	for _, sel := range p.HeadingScopes {
		if found := findAll(doc.Selection, sel); found.Length() > 0 {
			scope = found
			break
		}
	}

	var shows []internal.ShowRecord
	scope.Find("h1, h2, h3, h4, h5").Each(func(_ int, h *goquery.Selection) {
		title := cleanText(h.Text())
		if !plausibleTitle(title) {
			return
		}
		showURL := resolveURL(p.Origin, anchorHref(h, h.Parent()))
		if showURL == "" {
			showURL = pageURL
		}
		shows = append(shows, newShow(p, siteID, title, showURL))
	})
	if len(shows) > 0 {
		slog.Debug("heading scan found shows", "site", siteID, "count", len(shows))
	}
	return shows
}

func newShow(p Profile, siteID, title, url string) internal.ShowRecord {
	return internal.ShowRecord{
		Title:       title,
		Venue:       p.Venue,
		URL:         url,
		SiteID:      siteID,
		LastUpdated: time.Now().UTC(),
	}
}

// findAll evaluates one selector chain entry. The "class*=a|b" form matches
// elements whose class attribute contains any of the given substrings,
// case-insensitively; everything else is a plain CSS selector.
func findAll(root *goquery.Selection, selector string) *goquery.Selection {
	if needles, ok := strings.CutPrefix(selector, "class*="); ok {
		parts := strings.Split(strings.ToLower(needles), "|")
		return root.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
			class, _ := s.Attr("class")
			class = strings.ToLower(class)
			for _, part := range parts {
				if strings.Contains(class, part) {
					return true
				}
			}
			return false
		})
	}
	return root.Find(selector)
}

// firstMatch returns the matches for the first selector in the chain that
// matches anything under root.
func firstMatch(root *goquery.Selection, selectors []string) *goquery.Selection {
	for _, sel := range selectors {
		if found := findAll(root, sel); found.Length() > 0 {
			return found
		}
	}
	return root.Find("")
}

// prominentText finds the first substantial bold or linked text in a card,
// used as a title stand-in on sites with unlabelled markup.
func prominentText(card *goquery.Selection) *goquery.Selection {
	return card.Find("strong, b, a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return len(cleanText(s.Text())) > 3
	}).First()
}

// anchorHref finds the show link: the title element itself when it is an
// anchor, then an anchor inside it, then the first anchor in the card.
func anchorHref(titleEl, card *goquery.Selection) string {
	first := titleEl.First()
	if goquery.NodeName(first) == "a" {
		if href, ok := first.Attr("href"); ok {
			return href
		}
	}
	if a := first.Find("a[href]").First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		return href
	}
	if a := card.Find("a[href]").First(); a.Length() > 0 {
		href, _ := a.Attr("href")
		return href
	}
	return ""
}

func resolveURL(origin, href string) string {
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return origin + href
	default:
		return origin + "/" + href
	}
}

func textOf(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return cleanText(sel.First().Text())
}

func cleanText(s string) string {
	return normalizeSpace(s)
}

func plausibleTitle(title string) bool {
	if len(title) <= 3 {
		return false
	}
	lower := strings.ToLower(title)
	for _, term := range chromeTerms {
		if strings.Contains(lower, term) {
			return false
		}
	}
	return true
}
