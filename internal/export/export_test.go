package export

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"strings"
	"testing"
)

func testGrid() [][]string {
	return [][]string{
		{"Time", "Watt Total", "Volt AN"},
		{"10/03/2025 08:00", "1.00", "230.4"},
		{"10/03/2025 08:15", "2.00", "231.0"},
	}
}

func TestEncodeCSVRoundTrip(t *testing.T) {
	grid := [][]string{
		{"Time", `col "quoted"`, "col,comma"},
		{"08:00", `va"lue`, "a,b"},
	}
	out := EncodeCSV(grid)

	parsed, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("standard CSV parser rejected output: %v", err)
	}
	if !reflect.DeepEqual(parsed, grid) {
		t.Errorf("round trip mismatch:\n got %v\nwant %v", parsed, grid)
	}
}

func TestEncodeCSVQuotesEverything(t *testing.T) {
	out := string(EncodeCSV(testGrid()))
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != `"Time","Watt Total","Volt AN"` {
		t.Errorf("unexpected header line %q", lines[0])
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, `"`) || !strings.HasSuffix(line, `"`) {
			t.Errorf("line not fully quoted: %q", line)
		}
	}
}

func TestEncodeTextLayout(t *testing.T) {
	out := string(EncodeText(testGrid()))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header, rule and 2 rows, got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], " | ") {
		t.Errorf("columns should join with \" | \": %q", lines[0])
	}
	if !strings.Contains(lines[1], "-+-") {
		t.Errorf("separator should join with \"-+-\": %q", lines[1])
	}
	// All rows pad to equal width.
	for i := 1; i < len(lines); i++ {
		if len(lines[i]) != len(lines[0]) {
			t.Errorf("line %d width %d differs from header width %d",
				i, len(lines[i]), len(lines[0]))
		}
	}
	// Column width covers the widest of header and content.
	if !strings.HasPrefix(lines[0], "Time            ") {
		t.Errorf("Time column should pad to content width: %q", lines[0])
	}
}

func TestEncodeTextEmpty(t *testing.T) {
	if len(EncodeText(nil)) != 0 {
		t.Error("empty grid should produce empty output")
	}
}

func TestEncodeImageProducesPNG(t *testing.T) {
	out, err := EncodeImage("Meter-7 10/03/2025", testGrid())
	if err != nil {
		t.Fatalf("encode image: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestEncodePDFProducesDocument(t *testing.T) {
	out, err := EncodePDF("Meter-7", "10/03/2025 08:00 - 10/03/2025 17:00", testGrid())
	if err != nil {
		t.Fatalf("encode pdf: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestEncodePDFPaginatesLongTables(t *testing.T) {
	grid := [][]string{{"Time", "Watt Total"}}
	for i := 0; i < 120; i++ {
		grid = append(grid, []string{"10/03/2025 08:00", "1.00"})
	}
	long, err := EncodePDF("Meter-7", "range", grid)
	if err != nil {
		t.Fatalf("encode pdf: %v", err)
	}
	short, err := EncodePDF("Meter-7", "range", testGrid())
	if err != nil {
		t.Fatalf("encode pdf: %v", err)
	}
	// 120 rows at 7mm cannot fit one A4 landscape page, so the long
	// document must carry more page objects than the short one.
	marker := []byte("/Type /Page")
	if bytes.Count(long, marker) <= bytes.Count(short, marker) {
		t.Error("expected the long table to span additional pages")
	}
}
