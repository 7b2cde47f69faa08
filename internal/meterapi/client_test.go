package meterapi

import (
	"testing"
)

func TestParseReadingsDropsMalformedTimestamps(t *testing.T) {
	raw := []map[string]any{
		{"reading_time": "2025-03-10 08:00:10", "Watt Total": 1.5},
		{"reading_time": "not-a-time", "Watt Total": 2.0},
		{"Watt Total": 3.0}, // no timestamp key at all
		{"timestamp": "2025-03-10T08:15:00Z", "Volt AN": 230.4},
	}

	readings, dropped := ParseReadings(raw)
	if dropped != 2 {
		t.Errorf("expected 2 dropped records, got %d", dropped)
	}
	if len(readings) != 2 {
		t.Fatalf("expected 2 readings, got %d", len(readings))
	}
	if readings[0].Fields["Watt Total"] != 1.5 {
		t.Errorf("unexpected field value %v", readings[0].Fields["Watt Total"])
	}
	if _, ok := readings[0].Fields["reading_time"]; ok {
		t.Error("timestamp key must not leak into fields")
	}
	if readings[1].Timestamp.Minute() != 15 {
		t.Errorf("RFC3339 timestamp not parsed: %v", readings[1].Timestamp)
	}
}

func TestParseReadingsDayFirstLayout(t *testing.T) {
	raw := []map[string]any{
		{"time": "10/03/2025 08:30:00", "Frequency": 49.98},
	}
	readings, dropped := ParseReadings(raw)
	if dropped != 0 || len(readings) != 1 {
		t.Fatalf("expected 1 reading, got %d (dropped %d)", len(readings), dropped)
	}
	ts := readings[0].Timestamp
	if ts.Day() != 10 || ts.Month() != 3 || ts.Year() != 2025 {
		t.Errorf("day-first layout parsed wrong: %v", ts)
	}
}

func TestParseReadingsEmpty(t *testing.T) {
	readings, dropped := ParseReadings(nil)
	if len(readings) != 0 || dropped != 0 {
		t.Errorf("expected empty result, got %d readings %d dropped", len(readings), dropped)
	}
}
