package scrape

// bridgeProfile targets the Bridge Theatre site. Its performance list lives
// in the global header overlay, so the nav-heading lead hook usually supplies
// every show; the container tiers only matter if that overlay disappears.
func bridgeProfile() Profile {
	return Profile{
		SiteID: "bridge",
		Venue:  "Bridge Theatre",
		Origin: "https://bridgetheatre.co.uk",

		ContainerSelectors: []string{
			".performance, .production, .event-card, .show-item",
			"class*=performance|production|event|show",
		},
		TitleSelectors: []string{
			"h2.performance-title, .production__title, h2.performance__title",
			"h1, h2, h3, h4",
			"class*=title",
		},
		DateSelectors: []string{
			".performance-dates, .production__dates, .performance__dates",
			"class*=date",
		},
		DescSelectors: []string{
			".performance-description, .production__description, .performance__description",
			"class*=description",
		},
		PriceSelectors: []string{
			".performance-price, .production__price, .performance__price, .price-info",
			"class*=price",
		},

		DateSeparators: []string{"–", "-", " to "},

		Lead: bridgeNavHeadings,
	}
}
