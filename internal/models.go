package internal

import "time"

// ShowRecord is the normalized unit of extraction: one production listed on
// one theatre's what's-on page. Optional fields stay nil/empty when the page
// doesn't carry them; extractors never fabricate placeholders.
type ShowRecord struct {
	Title string `json:"title"`
	Venue string `json:"venue"`
	URL   string `json:"url"`

	PerformanceStart *time.Time `json:"performance_start_date,omitempty"`
	PerformanceEnd   *time.Time `json:"performance_end_date,omitempty"`
	MemberSale       *time.Time `json:"member_sale_date,omitempty"`
	GeneralSale      *time.Time `json:"general_sale_date,omitempty"`

	PriceRange  string `json:"price_range,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Description string `json:"description,omitempty"`

	SiteID      string    `json:"site_id"`
	LastUpdated time.Time `json:"last_updated"`
}

// Valid reports whether the record is usable downstream. Extractors skip
// fragments with no locatable title instead of emitting blank-title records.
func (r ShowRecord) Valid() bool {
	return r.Title != ""
}

// ShowKey is the identity key used to match a show across snapshots. It
// assumes no two distinct productions share both exact title and exact venue
// string; a show that changes venue between runs shows up as removed+new.
type ShowKey struct {
	Title string
	Venue string
}

func (r ShowRecord) Key() ShowKey {
	return ShowKey{Title: r.Title, Venue: r.Venue}
}

// UpdatedShow pairs the current and previous versions of a show whose
// tracked fields differ.
type UpdatedShow struct {
	Current  ShowRecord `json:"current"`
	Previous ShowRecord `json:"previous"`
}

// ChangeReport categorizes every show across two snapshots.
type ChangeReport struct {
	New       []ShowRecord  `json:"new_shows"`
	Updated   []UpdatedShow `json:"updated_shows"`
	Unchanged []ShowRecord  `json:"unchanged_shows"`
	Removed   []ShowRecord  `json:"removed_shows"`
}
