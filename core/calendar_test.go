package core

import (
	"testing"
	"time"

	"github.com/flazor/stride/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dailySeries(start time.Time, miles ...float64) *schema.DailySeries {
	series := &schema.DailySeries{ActivityType: schema.AllActivityTypes}
	for i, m := range miles {
		series.Points = append(series.Points, schema.DailyPoint{
			Date:  start.AddDate(0, 0, i),
			Miles: m,
		})
	}
	return series
}

func TestBuildCalendarGridPlacesCells(t *testing.T) {
	// Monday 2024-03-04 is ISO week 10 of 2024.
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	grid, err := BuildCalendarGrid(dailySeries(monday, 5, 0, 3))
	require.NoError(t, err)

	require.Len(t, grid.Years, 1)
	year := grid.Years[0]
	assert.Equal(t, 2024, year.Year)
	require.Len(t, year.Rows, 7, "One row per weekday")

	assert.Equal(t, 10, grid.WeekMin)
	assert.Equal(t, 10, grid.WeekMax)

	// Row index is Monday=0; a single visible week means one cell per row.
	require.Len(t, year.Rows[0], 1)
	assert.Equal(t, monday, year.Rows[0][0].Date)
	assert.InDelta(t, 5.0, year.Rows[0][0].Miles, 1e-9)
	assert.Zero(t, year.Rows[1][0].Miles, "Tuesday had no mileage")
	assert.InDelta(t, 3.0, year.Rows[2][0].Miles, 1e-9)
}

func TestBuildCalendarGridSkipsLeadingZeros(t *testing.T) {
	// Two leading zero weeks must not widen the axis.
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	miles := make([]float64, 15)
	miles[14] = 6 // Monday 2024-03-18, ISO week 12
	grid, err := BuildCalendarGrid(dailySeries(monday, miles...))
	require.NoError(t, err)

	assert.Equal(t, 12, grid.WeekMin)
	assert.Equal(t, 12, grid.WeekMax)
}

func TestBuildCalendarGridSharedWeekAxis(t *testing.T) {
	// Spans two ISO years; both year grids get the same week columns.
	start := time.Date(2023, 12, 18, 0, 0, 0, 0, time.UTC) // ISO week 51 of 2023
	miles := make([]float64, 30)
	miles[0] = 2
	miles[29] = 4 // 2024-01-16, ISO week 3 of 2024
	grid, err := BuildCalendarGrid(dailySeries(start, miles...))
	require.NoError(t, err)

	require.Len(t, grid.Years, 2)
	assert.Equal(t, 2023, grid.Years[0].Year)
	assert.Equal(t, 2024, grid.Years[1].Year)

	wantCols := grid.WeekMax - grid.WeekMin + 1
	for _, year := range grid.Years {
		for _, row := range year.Rows {
			require.Len(t, row, wantCols, "year %d shares the global axis", year.Year)
		}
	}
}

func TestBuildCalendarGridDisplayCeiling(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	grid, err := BuildCalendarGrid(dailySeries(monday, 55.5))
	require.NoError(t, err)

	cell := grid.Years[0].Rows[0][0]
	assert.InDelta(t, 55.5, cell.Miles, 1e-9, "Raw miles are preserved")
	assert.InDelta(t, schema.HeatmapDisplayCeiling, cell.Display, 1e-9)
}

func TestBuildCalendarGridEmptyCellsDated(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	grid, err := BuildCalendarGrid(dailySeries(monday, 5))
	require.NoError(t, err)

	// Sunday of the same ISO week was never in the series but still gets
	// a reconstructed date.
	sunday := grid.Years[0].Rows[6][0]
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), sunday.Date)
	assert.Zero(t, sunday.Miles)
}

func TestBuildCalendarGridAllZero(t *testing.T) {
	monday := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	_, err := BuildCalendarGrid(dailySeries(monday, 0, 0, 0))
	assert.ErrorIs(t, err, schema.ErrNoData)

	_, err = BuildCalendarGrid(&schema.DailySeries{})
	assert.ErrorIs(t, err, schema.ErrNoData)
}

func TestIsoWeekDateRoundTrip(t *testing.T) {
	dates := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),  // ISO week 1 of 2024
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),  // ISO week 52 of 2022
		time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), // mid-year Saturday
		time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		isoYear, isoWeek := d.ISOWeek()
		got := isoWeekDate(isoYear, isoWeek, mondayWeekday(d))
		assert.Equal(t, d, got, "date %s", d.Format(time.DateOnly))
	}
}
