// FilePath: internal/report/builder.go
package report

import (
	"strings"
	"time"

	"github.com/Kraikuppp/webmeter-hub/internal/models"
)

// FormatterSet bundles the two formatting strategies the builder needs.
// It is passed by value so the payload cannot capture mutable view
// state behind a closure.
type FormatterSet struct {
	FormatDateTime func(time.Time) string
	ColumnValue    func(fields map[string]any, fieldName string) string
}

// IdentityInput carries everything identity resolution may consult, in
// precedence order: explicit names, tree lookup, external fallback.
type IdentityInput struct {
	ExplicitNames []string
	Tree          *models.TreeNode
	NodeID        string
	Fallback      string
}

// BuildParams is the input to one report assembly.
type BuildParams struct {
	Rows     []models.Reading
	Columns  []string
	Loaded   bool
	Identity IdentityInput
	DateFrom string
	DateTo   string
	TimeFrom string
	TimeTo   string
}

// Build assembles the normalized report payload handed to export and
// delivery backends. It fails with ErrNotLoaded when no load has
// completed yet and with ErrEmptyResult when the loaded result has no
// rows, so callers can surface the two conditions differently.
func Build(p BuildParams, f FormatterSet) (*models.ReportPayload, error) {
	if !p.Loaded {
		return nil, models.ErrNotLoaded
	}
	if len(p.Rows) == 0 {
		return nil, models.ErrEmptyResult
	}

	header := make([]string, 0, len(p.Columns)+1)
	header = append(header, "Time")
	header = append(header, p.Columns...)

	rows := make([][]string, 0, len(p.Rows))
	for _, r := range p.Rows {
		cells := make([]string, 0, len(p.Columns)+1)
		cells = append(cells, f.FormatDateTime(r.Timestamp))
		for _, col := range p.Columns {
			cells = append(cells, f.ColumnValue(r.Fields, col))
		}
		rows = append(rows, cells)
	}

	return &models.ReportPayload{
		Identity:   ResolveIdentity(p.Identity),
		RangeLabel: p.DateFrom + " " + p.TimeFrom + " - " + p.DateTo + " " + p.TimeTo,
		TimeLabel:  p.TimeFrom + " - " + p.TimeTo,
		Columns:    append([]string(nil), p.Columns...),
		Header:     header,
		Rows:       rows,
	}, nil
}

// ResolveIdentity picks the meter identity by precedence: explicit
// caller-selected names, then the name of the tree node matching the
// selected node id, then the externally supplied fallback, then the
// literal default.
func ResolveIdentity(in IdentityInput) string {
	names := make([]string, 0, len(in.ExplicitNames))
	for _, n := range in.ExplicitNames {
		if n != "" {
			names = append(names, n)
		}
	}
	if len(names) > 0 {
		return strings.Join(names, ", ")
	}
	if node := FindNodeByID(in.Tree, in.NodeID); node != nil && node.Name != "" {
		return node.Name
	}
	if in.Fallback != "" {
		return in.Fallback
	}
	return models.DefaultMeterName
}

// DefaultFormatters returns the formatter pair used by the tabular
// report context: day-first timestamps and the given projector.
func DefaultFormatters(columnValue func(map[string]any, string) string) FormatterSet {
	return FormatterSet{
		FormatDateTime: func(t time.Time) string {
			return t.Format("02/01/2006 15:04")
		},
		ColumnValue: columnValue,
	}
}
