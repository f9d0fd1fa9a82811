package scrape

// donmarProfile targets the Donmar Warehouse what's-on listing, which renders
// each show as an li.eventCard.
func donmarProfile() Profile {
	return Profile{
		SiteID: "donmar",
		Venue:  "Donmar Warehouse",
		Origin: "https://www.donmarwarehouse.com",

		ContainerSelectors: []string{"li.eventCard"},
		TitleSelectors: []string{
			"h2, h3, .eventCard__title",
			"class*=title",
			"h1, h2, h3, h4",
		},
		DateSelectors: []string{
			".eventCard__mainDate, .eventCard__dates",
			"class*=date",
		},
		DescSelectors: []string{
			".eventCard__description, .eventCard__snippet",
			"class*=description|snippet",
			"p",
		},
		PriceSelectors: []string{
			".eventCard__price",
			"class*=price|ticket",
		},

		DateSeparators:    []string{"–", "-"},
		MinDescriptionLen: 10,
	}
}
