package scrape

// nationalProfile targets the National Theatre what's-on page. The current
// markup uses c-event-card classes; older class schemes are kept as fallback
// tiers since the site has changed naming more than once.
func nationalProfile() Profile {
	return Profile{
		SiteID: "national",
		Venue:  "National Theatre",
		Origin: "https://www.nationaltheatre.org.uk",

		ContainerSelectors: []string{
			".c-event-card",
			".production-card, .show-card, .nt-card--production, .nt-listing-item",
			"class*=event-card|show-card|production-card",
		},
		TitleSelectors: []string{
			".c-event-card__title",
			".production-card__title, .show-card__title, .nt-card__title, h3.nt-listing-item__title",
			"h1, h2, h3, h4",
			"class*=title",
		},
		DateSelectors: []string{
			".c-event-card__date, .c-event-card__dates",
			".production-card__dates, .show-card__dates, .nt-card__dates, .nt-listing-item__dates",
			"class*=date",
		},
		DescSelectors: []string{
			".c-event-card__description",
			".production-card__description, .show-card__description, .nt-card__description, .nt-listing-item__description",
			"class*=description",
			"p",
		},
		PriceSelectors: []string{
			".c-event-card__price",
			".production-card__pricing, .show-card__pricing, .nt-card__pricing, .nt-listing-item__pricing",
			"class*=price|ticket",
		},
		GenreSelectors: []string{
			".c-event-card__genre",
			".production-card__genre, .show-card__genre, .nt-card__genre, .nt-listing-item__genre",
			"class*=genre|type",
		},

		DateSeparators: []string{" - ", " to ", "–"},
		FromUntil:      true,
	}
}
