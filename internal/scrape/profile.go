package scrape

import (
	"github.com/PuerkitoBio/goquery"

	"westendwatcher/internal"
)

// HookFunc is a site-specific extraction step. Lead hooks run before generic
// container discovery and win when they return shows; Rescue hooks run when
// discovery produced nothing.
type HookFunc func(doc *goquery.Document, p Profile, siteID, pageURL string) []internal.ShowRecord

// Profile configures the extraction engine for one theatre site. The selector
// slices are ordered candidate chains; the first selector that matches
// anything wins for that field.
type Profile struct {
	SiteID string
	Venue  string
	Origin string

	// ContainerSelectors are tried in order to locate per-show cards.
	// Entries may use the "class*=a|b" form, which matches any element
	// whose class attribute contains one of the substrings,
	// case-insensitively.
	ContainerSelectors []string

	TitleSelectors []string
	DateSelectors  []string
	DescSelectors  []string
	PriceSelectors []string
	GenreSelectors []string

	// VenueSelectors, when present, read a per-show venue from the card in
	// place of the site-wide Venue; VenueSuffix is appended to it.
	VenueSelectors []string
	VenueSuffix    string

	// DateSeparators split range text like "12 Jan - 15 Mar"; FromUntil
	// additionally recognizes "from X" and "until X" one-sided ranges.
	DateSeparators []string
	FromUntil      bool

	// MinDescriptionLen drops boilerplate fragments shorter than this.
	MinDescriptionLen int

	// ProminentTextFallback falls back to the first substantial strong, b
	// or a element when no title selector matches within a card.
	ProminentTextFallback bool

	// HeadingScopes restricts the last-resort heading scan to the first
	// matching region of the page; empty means the whole document.
	HeadingScopes []string

	// SkipHeadingScan disables the heading scan entirely, for sites whose
	// chrome headings would otherwise flood the results.
	SkipHeadingScan bool

	Lead   HookFunc
	Rescue HookFunc

	// MoreContainers supplies extra candidate cards when the selector
	// tiers found none.
	MoreContainers func(doc *goquery.Document) *goquery.Selection
}

// Option tweaks a Profile at construction time, mainly for tests that point
// a site at a local server.
type Option func(*Profile)

func WithOrigin(origin string) Option {
	return func(p *Profile) {
		p.Origin = origin
	}
}

func WithVenue(venue string) Option {
	return func(p *Profile) {
		p.Venue = venue
	}
}
