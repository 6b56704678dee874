// Package ticket implements validation and summary computations over
// support-ticket records. All functions are pure: they read the input
// slice, never mutate it, and never fail on malformed data — bad values
// come back as diagnostics or are excluded from aggregates.
package ticket

import (
	"encoding/json"
	"math"
)

// Record is one support-ticket record, a mapping from field name to value
// as decoded from JSON. Any field may be absent; defaults are resolved at
// each read site.
type Record map[string]any

// Defaults applied when a ticket omits a field.
const (
	DefaultTicketID = "UNKNOWN"
	DefaultCategory = "Unknown"
	DefaultPriority = "Low"
)

// PriorityCritical marks a ticket as an escalation.
const PriorityCritical = "Critical"

// stringField returns the named field as text, or def when the field is
// absent or holds a non-text value.
func (r Record) stringField(key, def string) string {
	if s, ok := r[key].(string); ok {
		return s
	}
	return def
}

// TicketID returns the ticket's identifier, used only for diagnostics.
func (r Record) TicketID() string { return r.stringField("ticket_id", DefaultTicketID) }

// Category returns the ticket's classification, the grouping key for
// aggregates.
func (r Record) Category() string { return r.stringField("category", DefaultCategory) }

// Priority returns the ticket's priority.
func (r Record) Priority() string { return r.stringField("priority", DefaultPriority) }

// isInteger reports whether v is an integer-kinded value. Booleans count
// as integers. A json.Number counts when it holds an integral value, so
// inputs decoded with UseNumber keep their integer identity. Floats never
// count, even when their value is integral.
func isInteger(v any) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	case bool:
		return true
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

// numericValue returns v as a float64 and whether v is numeric at all.
// Integer kinds, floats and json.Numbers are numeric; booleans contribute
// 1 or 0.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// round2 rounds to two decimal places, the precision used throughout the
// report.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
