package schema

import "time"

// HeatmapDisplayCeiling caps the displayed magnitude of a calendar cell so
// the color scale stays uniform. The true value is kept for inspection.
const HeatmapDisplayCeiling = 20.0

// CalendarCell is one (day-of-week, ISO week) cell of a calendar grid.
type CalendarCell struct {
	Date    time.Time `json:"date"`
	Week    int       `json:"week"`
	Weekday int       `json:"weekday"` // Monday=0 .. Sunday=6
	Miles   float64   `json:"miles"`
	Display float64   `json:"display"` // min(Miles, HeatmapDisplayCeiling)
}

// CalendarYear is the grid for a single ISO year: seven weekday rows, each
// spanning the grid's shared week axis.
type CalendarYear struct {
	Year int `json:"year"`
	// Rows[weekday][i] is the cell for week WeekMin+i of that weekday.
	Rows [][]CalendarCell `json:"rows"`
}

// CalendarGrid bins a daily series into per-year heatmap grids. Every year
// shares the same [WeekMin, WeekMax] axis so year rows align visually.
type CalendarGrid struct {
	ActivityType string         `json:"activity_type"`
	WeekMin      int            `json:"week_min"`
	WeekMax      int            `json:"week_max"`
	Years        []CalendarYear `json:"years"`
}
