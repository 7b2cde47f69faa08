// FilePath: internal/format/format.go
package format

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Placeholder is rendered for absent, nil or undefined field values.
const Placeholder = "-"

// Variant selects the projection rules: Live output carries unit
// suffixes for on-screen realtime display, Report output is plain
// numeric for tabular exports and delivered reports.
type Variant int

const (
	Live Variant = iota
	Report
)

// Project maps one raw field value into its display string. Non-numeric
// values pass through unchanged; numeric values are formatted by the
// unit/precision rules keyed on the field name.
func Project(fields map[string]any, fieldName string, v Variant) string {
	raw, ok := fields[fieldName]
	if !ok || raw == nil {
		return Placeholder
	}
	num, ok := toFloat(raw)
	if !ok {
		return fmt.Sprintf("%v", raw)
	}
	if v == Report {
		return projectReport(fieldName, num)
	}
	return projectLive(fieldName, num)
}

// projectLive applies the unit/precision table. Demand and the energy
// counters are checked before the generic Watt/Var/VA branches so that
// "Demand W" resolves as a demand field, not a wattage.
func projectLive(fieldName string, v float64) string {
	switch {
	case strings.Contains(fieldName, "Demand"):
		return decimals(v, 2) + demandSuffix(fieldName)
	case strings.Contains(fieldName, "kWh"), strings.Contains(fieldName, "kVarh"):
		return decimals(v, 2) + energySuffix(fieldName)
	case strings.Contains(fieldName, "THD"):
		return decimals(v, 1) + "%"
	case fieldName == "Frequency":
		return decimals(v, 1) + " Hz"
	case strings.Contains(fieldName, "Volt"):
		return decimals(v, 1) + " V"
	case strings.Contains(fieldName, "Current"):
		return decimals(v, 2) + " A"
	case strings.Contains(fieldName, "Watt"):
		return decimals(v, 2) + " kW"
	case strings.Contains(fieldName, "Var"):
		return decimals(v, 2) + " kVAR"
	case strings.Contains(fieldName, "VA"):
		return decimals(v, 2) + " kVA"
	case strings.Contains(fieldName, "PF"):
		return decimals(v, 2)
	default:
		return decimals(v, 2)
	}
}

// projectReport renders plain numerics: demand and import/export energy
// fields round to integers, everything else keeps two decimals.
func projectReport(fieldName string, v float64) string {
	if strings.Contains(fieldName, "Demand") ||
		strings.Contains(fieldName, "Import") ||
		strings.Contains(fieldName, "Export") {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return decimals(v, 2)
}

// demandSuffix picks the unit from the token embedded in the demand
// field name. "Var" must be tested before "VA": "Demand VA" contains
// the literal "VA" only, "Demand Var" the literal "Var" only.
func demandSuffix(fieldName string) string {
	switch {
	case strings.Contains(fieldName, "Var"):
		return " kVAR"
	case strings.Contains(fieldName, "VA"):
		return " kVA"
	default:
		return " kW"
	}
}

// energySuffix takes the unit token after the space, e.g.
// "Import kWh" -> " kWh".
func energySuffix(fieldName string) string {
	if i := strings.LastIndex(fieldName, " "); i >= 0 {
		return " " + fieldName[i+1:]
	}
	return ""
}

func decimals(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
