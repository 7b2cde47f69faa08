// FilePath: internal/models/models.reading.go
package models

import "time"

// Reading is one timestamped measurement record from the meter API.
// Fields maps measurement names (see FieldNames) to numeric values; a
// missing or nil entry means the meter did not report that field.
type Reading struct {
	Timestamp time.Time      `json:"timestamp"`
	Fields    map[string]any `json:"fields"`
}

// FieldNames is the fixed vocabulary of electrical-measurement fields
// the dashboard knows how to display. Order matters: it is the default
// column order when the caller selects no explicit columns.
var FieldNames = []string{
	"Frequency",
	"Volt AN", "Volt BN", "Volt CN", "Volt LN Average",
	"Volt AB", "Volt BC", "Volt CA", "Volt LL Average",
	"Current A", "Current B", "Current C", "Current Average", "Current IN",
	"Watt A", "Watt B", "Watt C", "Watt Total",
	"Var A", "Var B", "Var C", "Var total",
	"VA A", "VA B", "VA C", "VA Total",
	"PF A", "PF B", "PF C", "PF Total",
	"Demand W", "Demand Var", "Demand VA",
	"Import kWh", "Export kWh", "Import kVarh", "Export kVarh",
	"THDV", "THDI",
}

// IsKnownField reports whether name belongs to the field vocabulary.
func IsKnownField(name string) bool {
	for _, f := range FieldNames {
		if f == name {
			return true
		}
	}
	return false
}

// ReadingQuery describes one load request against the meter API.
type ReadingQuery struct {
	DateFrom string   `json:"date_from" schema:"dateFrom"`
	DateTo   string   `json:"date_to" schema:"dateTo"`
	TimeFrom string   `json:"time_from" schema:"timeFrom"`
	TimeTo   string   `json:"time_to" schema:"timeTo"`
	Columns  []string `json:"columns" schema:"columns"`
	MeterIDs []string `json:"meter_ids" schema:"meterIds"`
}

// Equal reports whether two queries select the same data.
func (q ReadingQuery) Equal(o ReadingQuery) bool {
	if q.DateFrom != o.DateFrom || q.DateTo != o.DateTo ||
		q.TimeFrom != o.TimeFrom || q.TimeTo != o.TimeTo {
		return false
	}
	if len(q.Columns) != len(o.Columns) || len(q.MeterIDs) != len(o.MeterIDs) {
		return false
	}
	for i := range q.Columns {
		if q.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range q.MeterIDs {
		if q.MeterIDs[i] != o.MeterIDs[i] {
			return false
		}
	}
	return true
}

// Validate rejects queries with no date range before any fetch is attempted.
func (q ReadingQuery) Validate() error {
	if q.DateFrom == "" || q.DateTo == "" {
		return ErrNoDateRange
	}
	return nil
}

// CacheKey returns a stable key for the readings query cache.
func (q ReadingQuery) CacheKey() string {
	key := "readings:" + q.DateFrom + ":" + q.DateTo + ":" + q.TimeFrom + ":" + q.TimeTo
	for _, m := range q.MeterIDs {
		key += ":" + m
	}
	return key
}
