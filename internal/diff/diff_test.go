package diff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"westendwatcher/internal"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestUnit_Compare_Classification(t *testing.T) {
	current := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A", PerformanceStart: datePtr(2025, time.March, 1), PriceRange: "£20-50"},
		{Title: "Show 2", Venue: "Theatre B", Description: "An exciting show"},
		{Title: "Show 3", Venue: "Theatre C", PerformanceStart: datePtr(2025, time.May, 1)},
	}
	previous := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A", PerformanceStart: datePtr(2025, time.March, 10), PriceRange: "£20-50"},
		{Title: "Show 2", Venue: "Theatre B", Description: "An exciting show"},
		{Title: "Show 4", Venue: "Theatre D", PerformanceStart: datePtr(2025, time.June, 1)},
	}

	report := Compare(current, previous)

	require.Len(t, report.New, 1)
	assert.Equal(t, "Show 3", report.New[0].Title)

	require.Len(t, report.Updated, 1)
	assert.Equal(t, "Show 1", report.Updated[0].Current.Title)
	assert.Equal(t, datePtr(2025, time.March, 1), report.Updated[0].Current.PerformanceStart)
	assert.Equal(t, datePtr(2025, time.March, 10), report.Updated[0].Previous.PerformanceStart)

	require.Len(t, report.Unchanged, 1)
	assert.Equal(t, "Show 2", report.Unchanged[0].Title)

	require.Len(t, report.Removed, 1)
	assert.Equal(t, "Show 4", report.Removed[0].Title)
}

func TestUnit_Compare_UntrackedFieldsDoNotFlagUpdate(t *testing.T) {
	current := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A", Genre: "Drama", URL: "https://a.example/new"},
	}
	previous := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A", Genre: "Comedy", URL: "https://a.example/old"},
	}

	report := Compare(current, previous)
	assert.Empty(t, report.Updated)
	require.Len(t, report.Unchanged, 1)
	assert.Equal(t, "Show 1", report.Unchanged[0].Title)
}

func TestUnit_Compare_EachTrackedFieldTriggersUpdate(t *testing.T) {
	base := internal.ShowRecord{
		Title:            "Show 1",
		Venue:            "Theatre A",
		PerformanceStart: datePtr(2025, time.March, 1),
		PerformanceEnd:   datePtr(2025, time.April, 1),
		PriceRange:       "£20-50",
		Description:      "A show",
	}

	cases := []struct {
		name   string
		mutate func(*internal.ShowRecord)
	}{
		{name: "start date", mutate: func(r *internal.ShowRecord) { r.PerformanceStart = datePtr(2025, time.March, 2) }},
		{name: "end date", mutate: func(r *internal.ShowRecord) { r.PerformanceEnd = nil }},
		{name: "price range", mutate: func(r *internal.ShowRecord) { r.PriceRange = "£25-60" }},
		{name: "description", mutate: func(r *internal.ShowRecord) { r.Description = "A revised show" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cur := base
			tc.mutate(&cur)
			report := Compare([]internal.ShowRecord{cur}, []internal.ShowRecord{base})
			require.Len(t, report.Updated, 1)
			assert.Empty(t, report.Unchanged)
		})
	}
}

func TestUnit_Compare_EmptyPrevious(t *testing.T) {
	current := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A"},
		{Title: "Show 2", Venue: "Theatre B"},
	}

	report := Compare(current, nil)
	assert.Equal(t, current, report.New)
	assert.Empty(t, report.Updated)
	assert.Empty(t, report.Unchanged)
	assert.Empty(t, report.Removed)
}

func TestUnit_Compare_EmptyCurrent(t *testing.T) {
	previous := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A"},
	}

	report := Compare(nil, previous)
	assert.Empty(t, report.New)
	assert.Equal(t, previous, report.Removed)
}

func TestUnit_Compare_VenueChangeSplitsIntoNewAndRemoved(t *testing.T) {
	current := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Hampstead Downstairs"},
	}
	previous := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Hampstead Theatre"},
	}

	// A venue move changes the identity key, so the show shows up on both
	// sides instead of as an update. Known limitation of the key choice.
	report := Compare(current, previous)
	require.Len(t, report.New, 1)
	require.Len(t, report.Removed, 1)
	assert.Empty(t, report.Updated)
}

func TestUnit_Compare_DuplicateKeysLastWins(t *testing.T) {
	current := []internal.ShowRecord{
		{Title: "Show 1", Venue: "Theatre A", Description: "first"},
		{Title: "Show 1", Venue: "Theatre A", Description: "second"},
	}

	report := Compare(current, nil)
	require.Len(t, report.New, 1)
	assert.Equal(t, "second", report.New[0].Description)
}

func TestUnit_Compare_OrderFollowsInput(t *testing.T) {
	current := []internal.ShowRecord{
		{Title: "B", Venue: "V"},
		{Title: "A", Venue: "V"},
		{Title: "C", Venue: "V"},
	}

	report := Compare(current, nil)
	require.Len(t, report.New, 3)
	assert.Equal(t, "B", report.New[0].Title)
	assert.Equal(t, "A", report.New[1].Title)
	assert.Equal(t, "C", report.New[2].Title)
}
