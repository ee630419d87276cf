// Package schema has the data model and shared constants for all parts of stride.
package schema

import "strings"

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// Period represents a display date range relative to the newest data point.
	Period string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All display periods supported.
const (
	PeriodWeek     Period = "1W"
	PeriodMonth    Period = "1M"
	PeriodQuarter  Period = "3M"
	PeriodHalfYear Period = "6M"
	PeriodYTD      Period = "YTD"
	PeriodYear     Period = "1Y"
	PeriodTwoYear  Period = "2Y"
	PeriodFiveYear Period = "5Y"
	PeriodTenYear  Period = "10Y"
	PeriodAll      Period = "ALL" // default
)

// Columns every aggregation consumer depends on.
const (
	DistanceColumn  = "distance"
	StartDateColumn = "start_date"
	TypeColumn      = "type"
)

// AllActivityTypes is the sentinel filter value that keeps every activity type.
const AllActivityTypes = "All"

// numericColumns is the fixed catalog of columns that receive numeric coercion.
// Column names outside this catalog stay opaque strings.
var numericColumns = map[string]bool{
	"distance":             true,
	"moving_time":          true,
	"elapsed_time":         true,
	"total_elevation_gain": true,
	"average_speed":        true,
	"max_speed":            true,
	"average_watts":        true,
	"kilojoules":           true,
	"average_heartrate":    true,
	"max_heartrate":        true,
	"elev_high":            true,
	"elev_low":             true,
	"kudos_count":          true,
	"comment_count":        true,
	"athlete_count":        true,
	"photo_count":          true,
	"achievement_count":    true,
	"pr_count":             true,
	"total_photo_count":    true,
}

// IsNumericColumn reports whether a column belongs to the numeric catalog.
func IsNumericColumn(name string) bool {
	return numericColumns[name]
}

// IsDatetimeColumn reports whether a column receives datetime coercion.
// Membership is a name heuristic: any column whose name contains "date".
func IsDatetimeColumn(name string) bool {
	return strings.Contains(strings.ToLower(name), "date")
}
