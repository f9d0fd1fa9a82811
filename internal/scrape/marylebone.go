package scrape

// maryleboneProfile targets the Marylebone Theatre site, whose what's-on
// listing is an anchor section on the homepage. The heading scan is scoped to
// that section to keep homepage furniture out of the results.
func maryleboneProfile() Profile {
	return Profile{
		SiteID: "marylebone",
		Venue:  "Marylebone Theatre",
		Origin: "https://www.marylebonetheatre.com",

		ContainerSelectors: []string{
			".event-item, .production-item, .show-item",
			".card, article",
			"class*=event|show|production",
		},
		TitleSelectors: []string{
			"h1, h2, h3, h4, h5",
			"class*=title",
		},
		DateSelectors: []string{
			"class*=date|time|when",
		},
		DescSelectors: []string{
			"class*=description|summary|excerpt",
			"p",
		},
		PriceSelectors: []string{
			"class*=price|cost|ticket",
		},

		DateSeparators:        []string{" - ", " to ", "–", "-"},
		FromUntil:             true,
		ProminentTextFallback: true,

		HeadingScopes: []string{
			"#Whats-On, #whats-on, #events, #productions",
			"class*=whats-on|events",
		},
	}
}
