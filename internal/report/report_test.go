package report

import (
	"reflect"
	"testing"
	"time"

	"github.com/Kraikuppp/webmeter-hub/internal/format"
	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

func testRows(t *testing.T, n int) []models.Reading {
	t.Helper()
	base, err := time.Parse("2006-01-02 15:04:05", "2025-03-10 08:00:00")
	if err != nil {
		t.Fatalf("bad base time: %v", err)
	}
	rows := make([]models.Reading, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.Reading{
			Timestamp: base.Add(time.Duration(i) * 15 * time.Minute),
			Fields:    map[string]any{"Watt Total": float64(i)},
		})
	}
	return rows
}

func testFormatters() FormatterSet {
	return DefaultFormatters(func(fields map[string]any, name string) string {
		return format.Project(fields, name, format.Report)
	})
}

func TestBuildRejectsNotLoaded(t *testing.T) {
	_, err := Build(BuildParams{Loaded: false}, testFormatters())
	if err != models.ErrNotLoaded {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestBuildRejectsEmptyResult(t *testing.T) {
	_, err := Build(BuildParams{Loaded: true, Rows: nil}, testFormatters())
	if err != models.ErrEmptyResult {
		t.Fatalf("expected ErrEmptyResult, got %v", err)
	}
}

func TestBuildAssemblesPayload(t *testing.T) {
	p, err := Build(BuildParams{
		Rows:     testRows(t, 2),
		Columns:  []string{"Watt Total", "Volt AN"},
		Loaded:   true,
		Identity: IdentityInput{ExplicitNames: []string{"Meter-7"}},
		DateFrom: "10/03/2025",
		DateTo:   "10/03/2025",
		TimeFrom: "08:00",
		TimeTo:   "17:00",
	}, testFormatters())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if p.RangeLabel != "10/03/2025 08:00 - 10/03/2025 17:00" {
		t.Errorf("unexpected range label %q", p.RangeLabel)
	}
	wantHeader := []string{"Time", "Watt Total", "Volt AN"}
	if !reflect.DeepEqual(p.Header, wantHeader) {
		t.Errorf("header: expected %v, got %v", wantHeader, p.Header)
	}
	if len(p.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(p.Rows))
	}
	// Missing Volt AN renders as the placeholder.
	if p.Rows[0][2] != format.Placeholder {
		t.Errorf("expected placeholder for missing field, got %q", p.Rows[0][2])
	}
	if p.Rows[1][1] != "1.00" {
		t.Errorf("expected report-variant value, got %q", p.Rows[1][1])
	}
}

func TestResolveIdentityPrecedence(t *testing.T) {
	tree := &models.TreeNode{
		ID:   "root",
		Name: "Building A",
		Children: []*models.TreeNode{
			{ID: "m1", Name: "Main Incomer"},
			{ID: "m2", Name: "Chiller Plant", Children: []*models.TreeNode{
				{ID: "m3", Name: "Chiller 1"},
			}},
		},
	}

	// Explicit names win over a resolvable tree node.
	got := ResolveIdentity(IdentityInput{
		ExplicitNames: []string{"Meter-7"},
		Tree:          tree,
		NodeID:        "m3",
		Fallback:      "fallback",
	})
	if got != "Meter-7" {
		t.Errorf("explicit name should win, got %q", got)
	}

	// Tree lookup next.
	got = ResolveIdentity(IdentityInput{Tree: tree, NodeID: "m3", Fallback: "fallback"})
	if got != "Chiller 1" {
		t.Errorf("expected tree lookup result, got %q", got)
	}

	// Fallback next.
	got = ResolveIdentity(IdentityInput{Tree: tree, NodeID: "missing", Fallback: "Plant 2"})
	if got != "Plant 2" {
		t.Errorf("expected fallback, got %q", got)
	}

	// Default last.
	got = ResolveIdentity(IdentityInput{})
	if got != models.DefaultMeterName {
		t.Errorf("expected %q, got %q", models.DefaultMeterName, got)
	}

	// Empty explicit entries do not count as explicit selection.
	got = ResolveIdentity(IdentityInput{ExplicitNames: []string{""}, Fallback: "Plant 2"})
	if got != "Plant 2" {
		t.Errorf("empty explicit names should be skipped, got %q", got)
	}

	// Multiple explicit names join.
	got = ResolveIdentity(IdentityInput{ExplicitNames: []string{"M1", "M2"}})
	if got != "M1, M2" {
		t.Errorf("expected joined names, got %q", got)
	}
}

func TestFindNodeByIDMalformedInput(t *testing.T) {
	if FindNodeByID(nil, "x") != nil {
		t.Error("nil tree should yield nil")
	}
	if FindNodeByID(&models.TreeNode{ID: "a"}, "") != nil {
		t.Error("empty id should yield nil")
	}
	tree := &models.TreeNode{ID: "a", Children: []*models.TreeNode{nil, {ID: "b", Name: "B"}}}
	if n := FindNodeByID(tree, "b"); n == nil || n.Name != "B" {
		t.Error("nil children entries must be tolerated")
	}
}

func TestPaginateTotals(t *testing.T) {
	rows := testRows(t, 10)
	cases := []struct {
		page, size     int
		wantLen, total int
	}{
		{1, 4, 4, 3},
		{2, 4, 4, 3},
		{3, 4, 2, 3},
		{1, 10, 10, 1},
		{1, 25, 10, 1},
		{99, 4, 2, 3}, // clamped to last page
		{0, 4, 4, 3},  // clamped to first page
	}
	for _, c := range cases {
		page, total := Paginate(rows, c.page, c.size)
		if len(page) != c.wantLen || total != c.total {
			t.Errorf("Paginate(page=%d,size=%d): got len=%d total=%d, want len=%d total=%d",
				c.page, c.size, len(page), total, c.wantLen, c.total)
		}
	}

	empty, total := Paginate(nil, 1, 10)
	if len(empty) != 0 || total != 1 {
		t.Errorf("empty rows: expected total 1, got %d", total)
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	grid := [][]string{
		{"Time", "Watt Total", "Volt AN"},
		{"08:00", "1.00", "230.4"},
		{"08:15", "2.00", "231.0"},
	}
	back := Transpose(Transpose(grid))
	if !reflect.DeepEqual(back, grid) {
		t.Errorf("transpose round trip mismatch:\n got %v\nwant %v", back, grid)
	}
	if len(Transpose([][]string{})) != 0 {
		t.Error("transpose of empty grid should be empty")
	}
}

func TestOrientGridVertical(t *testing.T) {
	p := &models.ReportPayload{
		Header: []string{"Time", "Watt Total"},
		Rows: [][]string{
			{"08:00", "1.00"},
			{"08:15", "2.00"},
		},
	}
	grid := OrientGrid(p, models.OrientationVertical)
	if len(grid) != 2 {
		t.Fatalf("expected 2 vertical rows, got %d", len(grid))
	}
	wantHeader := []string{"Field", "08:00", "08:15"}
	if !reflect.DeepEqual(grid[0], wantHeader) {
		t.Errorf("vertical header: expected %v, got %v", wantHeader, grid[0])
	}
	wantRow := []string{"Watt Total", "1.00", "2.00"}
	if !reflect.DeepEqual(grid[1], wantRow) {
		t.Errorf("vertical row: expected %v, got %v", wantRow, grid[1])
	}
	// The source payload is untouched.
	if p.Rows[0][0] != "08:00" {
		t.Error("orientation change must not mutate the payload")
	}
}
