// FilePath: internal/models/models.report.go
package models

import "errors"

// Guard sentinels shared by the report builder and the view layer.
var (
	// ErrNoDateRange rejects a load attempt before the meter API is called.
	ErrNoDateRange = errors.New("no date range selected")
	// ErrNotLoaded means no load has completed yet for this view.
	ErrNotLoaded = errors.New("data not loaded")
	// ErrEmptyResult means the last load completed but returned zero rows.
	ErrEmptyResult = errors.New("no data in selected range")
)

// Orientation selects the table layout: horizontal keeps one row per
// timestamp, vertical transposes to one row per selected field.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

// DefaultMeterName is used when identity resolution finds nothing better.
const DefaultMeterName = "All Meters"

// ReportPayload is the normalized bundle handed to export encoders and
// report delivery. It carries display-ready cells, never raw readings,
// and is immutable after construction.
type ReportPayload struct {
	Identity   string     `json:"identity"`
	RangeLabel string     `json:"range_label"`
	TimeLabel  string     `json:"time_label"`
	Columns    []string   `json:"columns"`
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
}

// ExportFormat names one export encoder.
type ExportFormat string

const (
	ExportCSV   ExportFormat = "csv"
	ExportText  ExportFormat = "text"
	ExportImage ExportFormat = "image"
	ExportPDF   ExportFormat = "pdf"
)

// ExportScope selects which row set an export covers.
type ExportScope string

const (
	// ExportScopePage exports exactly what pagination currently shows.
	ExportScopePage ExportScope = "page"
	// ExportScopeFiltered exports the whole filtered result set.
	ExportScopeFiltered ExportScope = "filtered"
)

// DeliveryChannel names a report delivery transport.
type DeliveryChannel string

const (
	DeliveryEmail DeliveryChannel = "email"
	DeliveryLine  DeliveryChannel = "line"
)

// DeliveryTarget identifies who receives a sent report.
type DeliveryTarget struct {
	Channel    DeliveryChannel `json:"channel"`
	GroupID    string          `json:"group_id,omitempty"`
	Recipients []string        `json:"recipients,omitempty"`
}

// TreeNode is one node of the caller-owned meter hierarchy used for
// identity resolution. Children may be nil.
type TreeNode struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Groups is the recipient directory fetched from the upstream API.
// The hub treats its contents as opaque.
type Groups struct {
	EmailGroups []Group     `json:"email_groups"`
	LineGroups  []Group     `json:"line_groups"`
	EmailList   []Recipient `json:"email_list"`
	LineList    []Recipient `json:"line_list"`
}

type Group struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Recipient struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}
