package scrape

// royalCourtProfile targets the Royal Court Theatre what's-on page.
func royalCourtProfile() Profile {
	return Profile{
		SiteID: "royal_court",
		Venue:  "Royal Court Theatre",
		Origin: "https://royalcourttheatre.com",

		ContainerSelectors: []string{
			".production, .show-item, article.production, .event-item",
			"class*=production|show|event",
			"article, .whats-on-item",
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

		HeadingScopes: []string{
			"main, #content, .content, .main-content",
		},
	}
}
