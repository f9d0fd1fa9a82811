package scrape

// Soho Theatre runs two houses on the same platform, so Dean Street and
// Walthamstow share one profile shape with different venue labels and
// listing URLs.

func sohoDeanProfile() Profile {
	return sohoProfile("soho_dean", "Soho Theatre (Dean Street)")
}

func sohoWalthamstowProfile() Profile {
	return sohoProfile("soho_walthamstow", "Soho Theatre (Walthamstow)")
}

func sohoProfile(siteID, venue string) Profile {
	return Profile{
		SiteID: siteID,
		Venue:  venue,
		Origin: "https://sohotheatre.com",

		ContainerSelectors: []string{
			".show, .event, .production, article",
			".item, .card",
			"class*=show|event|production",
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
