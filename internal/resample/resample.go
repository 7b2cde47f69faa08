// FilePath: internal/resample/resample.go
package resample

import (
	"sort"
	"time"

	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

const (
	// BucketInterval is the width of the synthetic time grid.
	BucketInterval = 15 * time.Minute
	// Tolerance is the maximum distance between a bucket instant and the
	// reading selected to represent it. Half the bucket width.
	Tolerance = BucketInterval / 2
)

// Resample normalizes an unordered set of readings onto the 15-minute
// grid, selecting for each bucket the closest reading within Tolerance.
// The grid starts at the quarter-hour floor of the earliest reading and
// stops at the end of that reading's calendar day. Buckets with no
// qualifying reading produce no row. The same reading may win several
// neighboring buckets; the returned sequence is sorted ascending with
// one row per distinct timestamp.
func Resample(readings []models.Reading) []models.Reading {
	if len(readings) == 0 {
		return []models.Reading{}
	}

	sorted := make([]models.Reading, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	start := bucketFloor(sorted[0].Timestamp)
	selected := make([]models.Reading, 0, len(sorted))
	for b := start; sameDay(b, start); b = b.Add(BucketInterval) {
		if r, ok := closest(sorted, b); ok {
			selected = append(selected, r)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Timestamp.Before(selected[j].Timestamp)
	})
	return dedupe(selected)
}

// bucketFloor floors t to the nearest lower multiple of 15 minutes,
// zeroing seconds and sub-second precision.
func bucketFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), (t.Minute()/15)*15, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// closest scans the sorted readings for the one minimizing the absolute
// distance to the bucket instant. Ties keep the first-encountered
// reading. Readings farther than Tolerance never qualify.
func closest(sorted []models.Reading, bucket time.Time) (models.Reading, bool) {
	var best models.Reading
	bestDiff := Tolerance + 1
	found := false
	for _, r := range sorted {
		diff := absDuration(r.Timestamp.Sub(bucket))
		if diff <= Tolerance && diff < bestDiff {
			best = r
			bestDiff = diff
			found = true
		}
	}
	return best, found
}

// dedupe collapses rows sharing a timestamp to one, keeping the first.
// A reading selected by two adjacent buckets would otherwise appear
// twice in the output.
func dedupe(rows []models.Reading) []models.Reading {
	out := rows[:0]
	for i, r := range rows {
		if i > 0 && r.Timestamp.Equal(rows[i-1].Timestamp) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
