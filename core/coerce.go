package core

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/flazor/stride/schema"
)

// timestampLayouts are tried in order when parsing datetime cells.
// Strava emits RFC3339 (Zulu); the rest cover hand-edited dumps.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Coerce converts designated columns of a table to typed values in place.
// Columns matching the datetime heuristic parse to time.Time, columns in
// the numeric catalog parse to float64, and every cell that fails to parse
// becomes nil. Coercion is element-wise and best-effort: it never drops a
// row and never aborts a column.
func Coerce(t *schema.Table, logger *slog.Logger) {
	for _, name := range t.Columns() {
		switch {
		case schema.IsDatetimeColumn(name):
			failures := coerceColumn(t, name, func(v any) (any, bool) {
				ts, ok := ParseTimestamp(v)
				if !ok {
					return nil, false
				}
				return ts, true
			})
			if failures > 0 {
				logger.Warn("datetime coercion produced nulls", "column", name, "failures", failures)
			}
		case schema.IsNumericColumn(name):
			failures := coerceColumn(t, name, func(v any) (any, bool) {
				f, ok := ParseNumeric(v)
				if !ok {
					return nil, false
				}
				return f, true
			})
			if failures > 0 {
				logger.Warn("numeric coercion produced nulls", "column", name, "failures", failures)
			}
		}
	}
}

// coerceColumn rewrites every non-nil cell of one column in place and
// returns how many cells failed to convert.
func coerceColumn(t *schema.Table, name string, convert func(any) (any, bool)) int {
	failures := 0
	for row, v := range t.Column(name) {
		if v == nil {
			continue
		}
		converted, ok := convert(v)
		if !ok {
			t.SetValue(name, row, nil)
			failures++
			continue
		}
		t.SetValue(name, row, converted)
	}
	return failures
}

// ParseNumeric converts a cell to float64, reporting failure instead of
// raising. Booleans and structured strings do not count as numbers.
func ParseNumeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ParseTimestamp converts a cell to time.Time, reporting failure instead
// of raising.
func ParseTimestamp(v any) (time.Time, bool) {
	switch ts := v.(type) {
	case time.Time:
		return ts, true
	case string:
		s := strings.TrimSpace(ts)
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
