package core

import (
	"time"

	"github.com/flazor/stride/schema"
)

// BuildCalendarGrid bins a daily series into per-year heatmap grids indexed
// by (day-of-week, ISO week number). The visible range starts at the first
// date with nonzero miles and ends at the last date in the series; leading
// all-zero days are not shown. Every year shares the same week axis so the
// year rows align on the same columns.
//
// Returns schema.ErrNoData when the series carries no nonzero miles.
func BuildCalendarGrid(series *schema.DailySeries) (*schema.CalendarGrid, error) {
	first := -1
	for i, p := range series.Points {
		if p.Miles > 0 {
			first = i
			break
		}
	}
	if first < 0 {
		return nil, schema.ErrNoData
	}
	visible := series.Points[first:]

	type cellKey struct {
		year, week, weekday int
	}
	values := make(map[cellKey]schema.DailyPoint)
	yearSet := make(map[int]bool)
	weekMin, weekMax := 0, 0

	for _, p := range visible {
		isoYear, isoWeek := p.Date.ISOWeek()
		key := cellKey{year: isoYear, week: isoWeek, weekday: mondayWeekday(p.Date)}
		values[key] = p
		yearSet[isoYear] = true
		if weekMin == 0 || isoWeek < weekMin {
			weekMin = isoWeek
		}
		if isoWeek > weekMax {
			weekMax = isoWeek
		}
	}

	grid := &schema.CalendarGrid{
		ActivityType: series.ActivityType,
		WeekMin:      weekMin,
		WeekMax:      weekMax,
	}

	for year := minKey(yearSet); year <= maxKey(yearSet); year++ {
		if !yearSet[year] {
			continue
		}
		cy := schema.CalendarYear{Year: year}
		for weekday := range 7 {
			row := make([]schema.CalendarCell, 0, weekMax-weekMin+1)
			for week := weekMin; week <= weekMax; week++ {
				cell := schema.CalendarCell{Week: week, Weekday: weekday}
				if p, ok := values[cellKey{year: year, week: week, weekday: weekday}]; ok {
					cell.Date = p.Date
					cell.Miles = p.Miles
				} else {
					cell.Date = isoWeekDate(year, week, weekday)
				}
				cell.Display = min(cell.Miles, schema.HeatmapDisplayCeiling)
				row = append(row, cell)
			}
			cy.Rows = append(cy.Rows, row)
		}
		grid.Years = append(grid.Years, cy)
	}

	return grid, nil
}

// mondayWeekday maps time.Weekday (Sunday=0) to the Monday=0 convention.
func mondayWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// isoWeekDate reconstructs the calendar date of (ISO year, week, weekday).
// January 4th always falls in ISO week 1, which anchors the reconstruction;
// at year boundaries this yields the nearest consistent date, a cosmetic
// label only, never an aggregation input.
func isoWeekDate(isoYear, week, weekday int) time.Time {
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -mondayWeekday(jan4))
	return week1Monday.AddDate(0, 0, (week-1)*7+weekday)
}

func minKey(set map[int]bool) int {
	first := true
	out := 0
	for k := range set {
		if first || k < out {
			out = k
		}
		first = false
	}
	return out
}

func maxKey(set map[int]bool) int {
	first := true
	out := 0
	for k := range set {
		if first || k > out {
			out = k
		}
		first = false
	}
	return out
}
