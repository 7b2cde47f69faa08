package models

import "time"

// EventFilters defines the available filter options for the audit-event
// browser. Decoded from query parameters with gorilla/schema.
type EventFilters struct {
	Action   string `schema:"action"`
	Resource string `schema:"resource"`
	Actor    string `schema:"actor"`
	From     string `schema:"from"`
	To       string `schema:"to"`
	SortBy   string `schema:"sortBy"`
	SortDir  string `schema:"sortDir"`
	Page     int    `schema:"page"`
	PageSize int    `schema:"pageSize"`
}

// TimeRange represents a resolved time range filter.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// Range parses the From/To filter strings (RFC3339) into a TimeRange.
// Unparseable bounds are left open rather than failing the request.
func (f EventFilters) Range() TimeRange {
	var tr TimeRange
	if f.From != "" {
		if t, err := time.Parse(time.RFC3339, f.From); err == nil {
			tr.Start = &t
		}
	}
	if f.To != "" {
		if t, err := time.Parse(time.RFC3339, f.To); err == nil {
			tr.End = &t
		}
	}
	return tr
}
