package scrape

// hampsteadProfile targets Hampstead Theatre's productions page. When the
// direct card selectors find nothing, the grid hook digs show items out of
// the listing grids before the heading scan kicks in.
func hampsteadProfile() Profile {
	return Profile{
		SiteID: "hampstead",
		Venue:  "Hampstead Theatre",
		Origin: "https://www.hampsteadtheatre.com",

		ContainerSelectors: []string{
			".production, .production-item, .show-item, .event-item, .grid-item",
			"class*=production|show|event",
		},
		TitleSelectors: []string{
			"h1, h2, h3, h4, h5",
			"class*=title",
		},
		DateSelectors: []string{
			"class*=date|time|when|period",
		},
		DescSelectors: []string{
			"class*=description|summary|synopsis|excerpt|content",
		},
		PriceSelectors: []string{
			"class*=price|cost|ticket",
		},

		DateSeparators:        []string{" - ", " to ", "–", "-"},
		FromUntil:             true,
		ProminentTextFallback: true,

		MoreContainers: hampsteadGridItems,
	}
}
