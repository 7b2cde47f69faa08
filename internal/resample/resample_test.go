package resample

import (
	"testing"
	"time"

	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

func reading(t *testing.T, stamp string, value float64) models.Reading {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", stamp)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", stamp, err)
	}
	return models.Reading{
		Timestamp: ts,
		Fields:    map[string]any{"Watt Total": value},
	}
}

func TestResampleEmpty(t *testing.T) {
	rows := Resample(nil)
	if len(rows) != 0 {
		t.Fatalf("expected empty result for empty input, got %d rows", len(rows))
	}
	rows = Resample([]models.Reading{})
	if len(rows) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(rows))
	}
}

func TestResampleClosestWithinTolerance(t *testing.T) {
	// Readings at 08:00:10, 08:07:00, 08:14:50, 08:23:00. Buckets run
	// 08:00, 08:15, 08:30, ... 08:00 matches 08:00:10 (10s), 08:15
	// matches 08:14:50 (10s, beating 08:07:00 and 08:23:00 at 8m each),
	// 08:30 has nothing within 7.5 minutes and is skipped.
	input := []models.Reading{
		reading(t, "2025-03-10 08:23:00", 4),
		reading(t, "2025-03-10 08:00:10", 1),
		reading(t, "2025-03-10 08:14:50", 3),
		reading(t, "2025-03-10 08:07:00", 2),
	}

	rows := Resample(input)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	want := []string{"08:00:10", "08:14:50", "08:23:00"}
	for i, w := range want {
		got := rows[i].Timestamp.Format("15:04:05")
		if got != w {
			t.Errorf("row %d: expected timestamp %s, got %s", i, w, got)
		}
	}
	// 08:23:00 also wins the 08:30 bucket (7m away) but appears once.
	if rows[2].Fields["Watt Total"] != float64(4) {
		t.Errorf("expected value 4 at 08:23:00, got %v", rows[2].Fields["Watt Total"])
	}
}

func TestResampleToleranceBoundary(t *testing.T) {
	// Exactly 7.5 minutes from the 08:15 bucket qualifies; a second
	// beyond it does not.
	in := []models.Reading{reading(t, "2025-03-10 08:22:30", 1)}
	rows := Resample(in)
	if len(rows) != 1 {
		t.Fatalf("reading at exact tolerance should qualify, got %d rows", len(rows))
	}

	in = []models.Reading{
		reading(t, "2025-03-10 08:00:00", 1),
		reading(t, "2025-03-10 08:22:31", 2),
	}
	rows = Resample(in)
	// 08:00 bucket takes the first reading; the 08:15 bucket is 7m31s
	// from the second reading, beyond tolerance. 08:30 is 7m29s away
	// and takes it.
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestResampleSortedNoDuplicates(t *testing.T) {
	input := []models.Reading{
		reading(t, "2025-03-10 11:44:00", 5),
		reading(t, "2025-03-10 09:01:00", 1),
		reading(t, "2025-03-10 10:29:00", 3),
		reading(t, "2025-03-10 09:16:00", 2),
		reading(t, "2025-03-10 10:31:00", 4),
	}

	rows := Resample(input)
	if len(rows) == 0 {
		t.Fatal("expected rows")
	}
	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Timestamp.Before(rows[i].Timestamp) {
			t.Errorf("rows not strictly ascending at %d: %v >= %v",
				i, rows[i-1].Timestamp, rows[i].Timestamp)
		}
	}
}

func TestResampleRowsNearSomeBucket(t *testing.T) {
	input := []models.Reading{
		reading(t, "2025-03-10 00:03:00", 1),
		reading(t, "2025-03-10 06:40:00", 2),
		reading(t, "2025-03-10 23:58:00", 3),
	}
	rows := Resample(input)

	start := bucketFloor(input[0].Timestamp)
	for _, r := range rows {
		near := false
		for b := start; sameDay(b, start); b = b.Add(BucketInterval) {
			if absDuration(r.Timestamp.Sub(b)) <= Tolerance {
				near = true
				break
			}
		}
		if !near {
			t.Errorf("row %v is not within tolerance of any bucket", r.Timestamp)
		}
	}
}

func TestResampleDoesNotCrossMidnight(t *testing.T) {
	// Bucket generation is bounded by the first reading's calendar day,
	// so a next-day reading can only be matched by the final buckets of
	// that day, never by next-day buckets.
	input := []models.Reading{
		reading(t, "2025-03-10 23:50:00", 1),
		reading(t, "2025-03-11 10:00:00", 2),
	}
	rows := Resample(input)
	if len(rows) != 1 {
		t.Fatalf("expected only same-day rows, got %d", len(rows))
	}
	if rows[0].Timestamp.Day() != 10 {
		t.Errorf("expected the March 10 reading, got %v", rows[0].Timestamp)
	}
}

func TestResampleGridAnchoredToFirstReading(t *testing.T) {
	// Grid start depends on the earliest reading, not on wall-clock now:
	// identical inputs always produce identical outputs.
	input := []models.Reading{
		reading(t, "2020-01-01 13:37:00", 1),
		reading(t, "2020-01-01 13:52:00", 2),
	}
	a := Resample(input)
	b := Resample(input)
	if len(a) != len(b) || len(a) != 2 {
		t.Fatalf("expected deterministic 2-row result, got %d and %d", len(a), len(b))
	}
	if got := bucketFloor(input[0].Timestamp).Format("15:04:05"); got != "13:30:00" {
		t.Errorf("expected grid floor 13:30:00, got %s", got)
	}
}

func TestResampleTieKeepsFirstAfterSort(t *testing.T) {
	// Two readings equidistant from the 08:15 bucket: the earlier one
	// (first after the stable sort) wins.
	early := reading(t, "2025-03-10 08:10:00", 1)
	late := reading(t, "2025-03-10 08:20:00", 2)
	rows := Resample([]models.Reading{late, early})

	for _, r := range rows {
		if r.Timestamp.Format("15:04:05") == "08:10:00" {
			if r.Fields["Watt Total"] != float64(1) {
				t.Errorf("tie should keep the first-encountered reading")
			}
			return
		}
	}
	t.Error("expected the 08:10:00 reading to win the tie for the 08:15 bucket")
}
