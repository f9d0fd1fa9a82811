package scrape

// druryLaneProfile targets Theatre Royal Drury Lane, which hosts one resident
// production at a time. The generic heading scan is disabled because the page
// is mostly marketing furniture; the rescue hook knows how to pick out the
// resident show instead.
func druryLaneProfile() Profile {
	return Profile{
		SiteID: "drury_lane",
		Venue:  "Drury Lane Theatre",
		Origin: "https://drurylanetheatre.com",

		ContainerSelectors: []string{
			".show, .production, .event-item, article",
			"class*=show|production|event|performance",
		},
		TitleSelectors: []string{
			"h1, h2, h3, h4",
			"class*=title",
		},
		DateSelectors: []string{
			"class*=date|time|when|period",
		},
		DescSelectors: []string{
			"class*=description|summary|excerpt|content",
			"p",
		},
		PriceSelectors: []string{
			"class*=price|cost|ticket",
		},

		DateSeparators:        []string{" - ", " to ", "–", "-"},
		FromUntil:             true,
		ProminentTextFallback: true,
		SkipHeadingScan:       true,

		Rescue: druryResidentShow,
	}
}
