// Package store persists show snapshots as dated CSV files, one row per
// show, and finds the most recent prior snapshot to diff against.
package store

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"westendwatcher/internal"
)

const (
	snapshotPrefix = "theater_snapshot_"
	snapshotExt    = ".csv"
)

// Store reads and writes show snapshots under a single directory.
type Store struct {
	dir string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

// SnapshotName returns the snapshot filename for a given day.
func SnapshotName(day time.Time) string {
	return snapshotPrefix + day.Format("20060102") + snapshotExt
}

// Save writes shows to the named snapshot file, creating the snapshot
// directory if needed.
func (s *Store) Save(name string, shows []internal.ShowRecord) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	rows := make([]snapshotRow, 0, len(shows))
	for _, show := range shows {
		rows = append(rows, toRow(show))
	}

	path := filepath.Join(s.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot %s: %w", name, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	slog.Info("saved snapshot", "file", path, "shows", len(shows))
	return nil
}

// Load reads the named snapshot back into show records. Rows whose date
// fields fail to parse come back with those fields empty rather than
// aborting the load.
func (s *Store) Load(name string) ([]internal.ShowRecord, error) {
	path := filepath.Join(s.dir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot %s: %w", name, err)
	}
	defer f.Close()

	var rows []snapshotRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}

	shows := make([]internal.ShowRecord, 0, len(rows))
	for _, row := range rows {
		shows = append(shows, row.toRecord())
	}
	slog.Info("loaded snapshot", "file", path, "shows", len(shows))
	return shows, nil
}

// Latest returns the name of the most recent snapshot, excluding any names
// in exclude (typically today's snapshot, so a run that has already saved
// still compares against yesterday). Returns "" when no prior snapshot
// exists. Snapshot names embed the date, so lexicographic order is
// chronological.
func (s *Store) Latest(exclude ...string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("list snapshots: %w", err)
	}

	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || excluded[name] {
			continue
		}
		if strings.HasPrefix(name, snapshotPrefix) && strings.HasSuffix(name, snapshotExt) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "", nil
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names[0], nil
}

// snapshotRow is the CSV shape of one show. Dates serialize as RFC 3339 so
// they round-trip losslessly.
type snapshotRow struct {
	Title            string       `csv:"title"`
	Venue            string       `csv:"venue"`
	URL              string       `csv:"url"`
	PerformanceStart OptionalTime `csv:"performance_start_date"`
	PerformanceEnd   OptionalTime `csv:"performance_end_date"`
	MemberSale       OptionalTime `csv:"member_sale_date"`
	GeneralSale      OptionalTime `csv:"general_sale_date"`
	PriceRange       string       `csv:"price_range"`
	Genre            string       `csv:"genre"`
	Description      string       `csv:"description"`
	SiteID           string       `csv:"site_id"`
	LastUpdated      time.Time    `csv:"last_updated"`
}

func toRow(show internal.ShowRecord) snapshotRow {
	return snapshotRow{
		Title:            show.Title,
		Venue:            show.Venue,
		URL:              show.URL,
		PerformanceStart: OptionalTime{show.PerformanceStart},
		PerformanceEnd:   OptionalTime{show.PerformanceEnd},
		MemberSale:       OptionalTime{show.MemberSale},
		GeneralSale:      OptionalTime{show.GeneralSale},
		PriceRange:       show.PriceRange,
		Genre:            show.Genre,
		Description:      show.Description,
		SiteID:           show.SiteID,
		LastUpdated:      show.LastUpdated,
	}
}

func (r snapshotRow) toRecord() internal.ShowRecord {
	return internal.ShowRecord{
		Title:            r.Title,
		Venue:            r.Venue,
		URL:              r.URL,
		PerformanceStart: r.PerformanceStart.Time,
		PerformanceEnd:   r.PerformanceEnd.Time,
		MemberSale:       r.MemberSale.Time,
		GeneralSale:      r.GeneralSale.Time,
		PriceRange:       r.PriceRange,
		Genre:            r.Genre,
		Description:      r.Description,
		SiteID:           r.SiteID,
		LastUpdated:      r.LastUpdated,
	}
}

// OptionalTime marshals a nullable date as RFC 3339, with the empty string
// standing in for absent.
type OptionalTime struct {
	Time *time.Time
}

func (o OptionalTime) MarshalCSV() (string, error) {
	if o.Time == nil {
		return "", nil
	}
	return o.Time.Format(time.RFC3339), nil
}

func (o *OptionalTime) UnmarshalCSV(value string) error {
	if strings.TrimSpace(value) == "" {
		o.Time = nil
		return nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// A malformed date degrades to an absent one.
		slog.Warn("unparseable date in snapshot", "value", value)
		o.Time = nil
		return nil
	}
	o.Time = &t
	return nil
}
