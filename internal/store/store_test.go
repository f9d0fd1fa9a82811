package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"westendwatcher/internal"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleShows() []internal.ShowRecord {
	return []internal.ShowRecord{
		{
			Title:            "Hamlet",
			Venue:            "Donmar Warehouse",
			URL:              "https://www.donmarwarehouse.com/hamlet",
			PerformanceStart: date(2025, time.June, 1),
			PerformanceEnd:   date(2025, time.July, 12),
			PriceRange:       "From £25",
			Genre:            "Drama",
			Description:      "A new production of Hamlet.",
			SiteID:           "donmar",
			LastUpdated:      time.Date(2025, time.May, 20, 9, 30, 0, 0, time.UTC),
		},
		{
			Title:       "Work in Progress",
			Venue:       "Soho Theatre (Dean Street)",
			SiteID:      "soho_dean",
			LastUpdated: time.Date(2025, time.May, 20, 9, 30, 0, 0, time.UTC),
		},
	}
}

func TestUnit_SnapshotName(t *testing.T) {
	day := time.Date(2025, time.March, 8, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, "theater_snapshot_20250308.csv", SnapshotName(day))
}

func TestUnit_SaveAndLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	shows := sampleShows()

	require.NoError(t, s.Save("theater_snapshot_20250520.csv", shows))

	loaded, err := s.Load("theater_snapshot_20250520.csv")
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "Hamlet", loaded[0].Title)
	assert.Equal(t, "Donmar Warehouse", loaded[0].Venue)
	require.NotNil(t, loaded[0].PerformanceStart)
	assert.True(t, shows[0].PerformanceStart.Equal(*loaded[0].PerformanceStart))
	require.NotNil(t, loaded[0].PerformanceEnd)
	assert.True(t, shows[0].PerformanceEnd.Equal(*loaded[0].PerformanceEnd))
	assert.Equal(t, "From £25", loaded[0].PriceRange)
	assert.Equal(t, "A new production of Hamlet.", loaded[0].Description)

	assert.Nil(t, loaded[1].PerformanceStart)
	assert.Nil(t, loaded[1].PerformanceEnd)
	assert.Empty(t, loaded[1].URL)
}

func TestUnit_SaveCreatesSnapshotDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "snapshots")
	s := New(dir)

	require.NoError(t, s.Save("theater_snapshot_20250101.csv", sampleShows()))

	_, err := os.Stat(filepath.Join(dir, "theater_snapshot_20250101.csv"))
	assert.NoError(t, err)
}

func TestUnit_LoadMissingSnapshot(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.Load("theater_snapshot_19990101.csv")
	assert.Error(t, err)
}

func TestUnit_LoadTreatsBadDateAsAbsent(t *testing.T) {
	dir := t.TempDir()
	csv := "title,venue,url,performance_start_date,performance_end_date," +
		"member_sale_date,general_sale_date,price_range,genre,description," +
		"site_id,last_updated\n" +
		"Hamlet,Donmar Warehouse,,not-a-date,,,,,,,donmar,2025-05-20T09:30:00Z\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "theater_snapshot_20250520.csv"), []byte(csv), 0o600))

	loaded, err := New(dir).Load("theater_snapshot_20250520.csv")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Nil(t, loaded[0].PerformanceStart)
}

func TestUnit_LatestPicksNewestSnapshot(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"theater_snapshot_20250518.csv",
		"theater_snapshot_20250520.csv",
		"theater_snapshot_20250519.csv",
		"notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("title\n"), 0o600))
	}

	latest, err := New(dir).Latest()
	require.NoError(t, err)
	assert.Equal(t, "theater_snapshot_20250520.csv", latest)
}

func TestUnit_LatestHonorsExclusions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"theater_snapshot_20250519.csv",
		"theater_snapshot_20250520.csv",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("title\n"), 0o600))
	}

	latest, err := New(dir).Latest("theater_snapshot_20250520.csv")
	require.NoError(t, err)
	assert.Equal(t, "theater_snapshot_20250519.csv", latest)
}

func TestUnit_LatestEmptyDir(t *testing.T) {
	latest, err := New(t.TempDir()).Latest()
	require.NoError(t, err)
	assert.Empty(t, latest)

	latest, err = New(filepath.Join(t.TempDir(), "missing")).Latest()
	require.NoError(t, err)
	assert.Empty(t, latest)
}
