package scrape

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestUnit_ParseDateText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want *time.Time
	}{
		{
			name: "day month year",
			text: "1 June 2025",
			want: ptr(date(2025, time.June, 1)),
		},
		{
			name: "abbreviated month",
			text: "15 Mar 2024",
			want: ptr(date(2024, time.March, 15)),
		},
		{
			name: "month day year",
			text: "June 1, 2025",
			want: ptr(date(2025, time.June, 1)),
		},
		{
			name: "weekday prefix ignored",
			text: "Sat 08 Mar 2025",
			want: ptr(date(2025, time.March, 8)),
		},
		{
			name: "ordinal suffix",
			text: "21st February 2025",
			want: ptr(date(2025, time.February, 21)),
		},
		{
			name: "numeric day first",
			text: "12/03/2025",
			want: ptr(date(2025, time.March, 12)),
		},
		{
			name: "numeric with dashes and short year",
			text: "12-03-25",
			want: ptr(date(2025, time.March, 12)),
		},
		{
			name: "numeric with dots",
			text: "01.06.2025",
			want: ptr(date(2025, time.June, 1)),
		},
		{
			name: "month and year only defaults to first",
			text: "June 2025",
			want: ptr(date(2025, time.June, 1)),
		},
		{
			name: "collapses whitespace",
			text: "  15   Mar\n 2024 ",
			want: ptr(date(2024, time.March, 15)),
		},
		{
			name: "misleading trailing number still anchors year",
			text: "15 Mar (see page 2024)",
			want: ptr(date(2024, time.March, 15)),
		},
		{
			name: "bare year rejected",
			text: "2025",
			want: nil,
		},
		{
			name: "empty rejected",
			text: "",
			want: nil,
		},
		{
			name: "too short rejected",
			text: "1 Ju",
			want: nil,
		},
		{
			name: "non-date rejected",
			text: "Book tickets",
			want: nil,
		},
		{
			name: "impossible day rejected",
			text: "32 Mar 2024",
			want: nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDateText(tc.text)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tc.want, *got)
		})
	}
}

func TestUnit_ParseDateText_NoYearUsesCurrent(t *testing.T) {
	got := ParseDateText("Thu 21 Feb")
	require.NotNil(t, got)
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 21, got.Day())
	assert.Equal(t, time.Now().Year(), got.Year())
}

func TestUnit_ParseDateRange(t *testing.T) {
	seps := []string{" - ", " to ", "–", "-"}

	cases := []struct {
		name      string
		text      string
		seps      []string
		fromUntil bool
		wantStart *time.Time
		wantEnd   *time.Time
	}{
		{
			name:      "month stated once propagates to start",
			text:      "1 - 20 Mar 2023",
			seps:      seps,
			wantStart: ptr(date(2023, time.March, 1)),
			wantEnd:   ptr(date(2023, time.March, 20)),
		},
		{
			name:      "year stated once propagates to start",
			text:      "12 Jan - 15 Mar 2025",
			seps:      seps,
			wantStart: ptr(date(2025, time.January, 12)),
			wantEnd:   ptr(date(2025, time.March, 15)),
		},
		{
			name:      "en dash range",
			text:      "1 Mar 2025 – 20 Apr 2025",
			seps:      []string{"–", "-"},
			wantStart: ptr(date(2025, time.March, 1)),
			wantEnd:   ptr(date(2025, time.April, 20)),
		},
		{
			name:      "to separator",
			text:      "1 Mar 2025 to 20 Apr 2025",
			seps:      seps,
			wantStart: ptr(date(2025, time.March, 1)),
			wantEnd:   ptr(date(2025, time.April, 20)),
		},
		{
			name:      "from prefix yields open ended range",
			text:      "From 12 Jan 2025",
			seps:      seps,
			fromUntil: true,
			wantStart: ptr(date(2025, time.January, 12)),
			wantEnd:   nil,
		},
		{
			name:      "until prefix yields end only",
			text:      "Until 15 Mar 2025",
			seps:      seps,
			fromUntil: true,
			wantStart: nil,
			wantEnd:   ptr(date(2025, time.March, 15)),
		},
		{
			name:      "single date",
			text:      "15 Mar 2025",
			seps:      seps,
			wantStart: ptr(date(2025, time.March, 15)),
			wantEnd:   nil,
		},
		{
			name:      "empty",
			text:      "",
			seps:      seps,
			wantStart: nil,
			wantEnd:   nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := ParseDateRange(tc.text, tc.seps, tc.fromUntil)
			assertDate(t, tc.wantStart, start, "start")
			assertDate(t, tc.wantEnd, end, "end")
		})
	}
}

func assertDate(t *testing.T, want, got *time.Time, label string) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, label)
		return
	}
	require.NotNil(t, got, label)
	assert.Equal(t, *want, *got, label)
}

func ptr(t time.Time) *time.Time {
	return &t
}
