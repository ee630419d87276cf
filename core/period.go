package core

import (
	"time"

	"github.com/flazor/stride/schema"
)

// ValidPeriods lists the display periods accepted by consumers.
var ValidPeriods = []schema.Period{
	schema.PeriodWeek,
	schema.PeriodMonth,
	schema.PeriodQuarter,
	schema.PeriodHalfYear,
	schema.PeriodYTD,
	schema.PeriodYear,
	schema.PeriodTwoYear,
	schema.PeriodFiveYear,
	schema.PeriodTenYear,
	schema.PeriodAll,
}

// IsValidPeriod reports whether the period is one of ValidPeriods.
func IsValidPeriod(p schema.Period) bool {
	for _, valid := range ValidPeriods {
		if p == valid {
			return true
		}
	}
	return false
}

// FilterPeriod trims a daily series to the display period, measured back
// from the newest date in the series. The trailing averages computed over
// the full series are kept, so a one-month view still shows 30-day means
// seeded by earlier data.
func FilterPeriod(series *schema.DailySeries, period schema.Period) *schema.DailySeries {
	start := periodStart(period, series.Last().Date)
	if start.IsZero() {
		return series
	}

	out := &schema.DailySeries{ActivityType: series.ActivityType}
	for _, p := range series.Points {
		if !p.Date.Before(start) {
			out.Points = append(out.Points, p)
		}
	}
	if len(out.Points) == 0 {
		// The period window starts after all data; keep the last point so
		// consumers always have at least one.
		out.Points = []schema.DailyPoint{series.Last()}
	}
	return out
}

// periodStart returns the inclusive start date for a period, or the zero
// time for ALL (and anything unrecognized, which callers validate upfront).
func periodStart(period schema.Period, maxDate time.Time) time.Time {
	switch period {
	case schema.PeriodWeek:
		return maxDate.AddDate(0, 0, -7)
	case schema.PeriodMonth:
		return maxDate.AddDate(0, 0, -30)
	case schema.PeriodQuarter:
		return maxDate.AddDate(0, 0, -90)
	case schema.PeriodHalfYear:
		return maxDate.AddDate(0, 0, -180)
	case schema.PeriodYTD:
		return time.Date(maxDate.Year(), time.January, 1, 0, 0, 0, 0, maxDate.Location())
	case schema.PeriodYear:
		return maxDate.AddDate(0, 0, -365)
	case schema.PeriodTwoYear:
		return maxDate.AddDate(0, 0, -730)
	case schema.PeriodFiveYear:
		return maxDate.AddDate(0, 0, -1825)
	case schema.PeriodTenYear:
		return maxDate.AddDate(0, 0, -3650)
	default:
		return time.Time{}
	}
}
