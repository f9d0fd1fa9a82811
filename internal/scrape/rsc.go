package scrape

// rscProfile targets the RSC's London what's-on page. The page renders its
// production grid with JavaScript, so it is usually fetched through the
// browser fetcher; the lead hook reads the h3.title card markup that grid
// produces, and the rescue hook catches the one long-running London transfer
// when even that fails to render.
func rscProfile() Profile {
	return Profile{
		SiteID: "rsc",
		Venue:  "Royal Shakespeare Company (London)",
		Origin: "https://www.rsc.org.uk",

		ContainerSelectors: []string{
			".production-card, .event-card, .show-card, article.production",
			"class*=production|show|event",
			"article",
		},
		TitleSelectors: []string{
			"h1, h2, h3, h4",
			"class*=title",
		},
		DateSelectors: []string{
			"class*=date|time|when",
		},
		DescSelectors: []string{
			"class*=description|summary|excerpt|content",
			"p",
		},
		PriceSelectors: []string{
			"class*=price|cost|ticket",
		},
		VenueSelectors: []string{
			"class*=venue|location",
		},
		VenueSuffix: " (RSC London)",

		DateSeparators:        []string{" - ", " to ", "–", "-"},
		FromUntil:             true,
		ProminentTextFallback: true,

		HeadingScopes: []string{
			"#whats-on, .whats-on, #productions, .productions, main, #content",
		},

		Lead:   rscTitleCards,
		Rescue: rscKnownTitleScan,
	}
}
