// Package diff classifies show records between two snapshots into
// new, updated, unchanged and removed sets.
package diff

import (
	"log/slog"
	"time"

	"westendwatcher/internal"
)

// Compare matches current against previous by (title, venue) identity key and
// classifies every show. A show counts as updated only when one of the
// tracked fields changed: performance start date, performance end date, price
// range or description. Changes to genre or URL alone leave a show
// unchanged. Output ordering follows the input ordering of the respective
// snapshot.
//
// Duplicate identity keys within one snapshot collide last-write-wins; the
// collision is logged since it usually means a site extractor emitted the
// same production twice.
func Compare(current, previous []internal.ShowRecord) internal.ChangeReport {
	currentKeys, currentByKey := index(current)
	previousKeys, previousByKey := index(previous)

	var report internal.ChangeReport
	for _, key := range currentKeys {
		cur := currentByKey[key]
		prev, existed := previousByKey[key]
		switch {
		case !existed:
			report.New = append(report.New, cur)
		case trackedFieldsDiffer(cur, prev):
			report.Updated = append(report.Updated, internal.UpdatedShow{Current: cur, Previous: prev})
		default:
			report.Unchanged = append(report.Unchanged, cur)
		}
	}

	for _, key := range previousKeys {
		if _, exists := currentByKey[key]; !exists {
			report.Removed = append(report.Removed, previousByKey[key])
		}
	}

	slog.Info("snapshot comparison complete",
		"new", len(report.New),
		"updated", len(report.Updated),
		"unchanged", len(report.Unchanged),
		"removed", len(report.Removed))
	return report
}

// index builds a key-to-record map plus the key order of first appearance.
func index(shows []internal.ShowRecord) ([]internal.ShowKey, map[internal.ShowKey]internal.ShowRecord) {
	keys := make([]internal.ShowKey, 0, len(shows))
	byKey := make(map[internal.ShowKey]internal.ShowRecord, len(shows))
	for _, show := range shows {
		key := show.Key()
		if _, dup := byKey[key]; dup {
			slog.Warn("duplicate show identity in snapshot, keeping the later record",
				"title", key.Title, "venue", key.Venue)
		} else {
			keys = append(keys, key)
		}
		byKey[key] = show
	}
	return keys, byKey
}

func trackedFieldsDiffer(a, b internal.ShowRecord) bool {
	return !datesEqual(a.PerformanceStart, b.PerformanceStart) ||
		!datesEqual(a.PerformanceEnd, b.PerformanceEnd) ||
		a.PriceRange != b.PriceRange ||
		a.Description != b.Description
}

func datesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
