package core

import (
	"log/slog"
	"time"

	"github.com/flazor/stride/schema"
)

// MilesPerMeter converts Strava's metric distances to miles.
const MilesPerMeter = 0.000621371

// BuildDailySeries groups a coerced table into total miles per calendar
// day, filtered by activity type (schema.AllActivityTypes keeps all).
//
// Rows with a null distance, date, or type, and rows with non-positive
// mileage, are dropped. The date axis runs contiguously from the earliest
// surviving date through now inclusive, zero-filled; the axis upper bound
// is deliberately wall-clock now rather than the newest data date, so the
// series tail reflects days without activity. When nothing survives
// filtering, or every surviving row postdates now, the series is a single
// zero-mile point at now, never empty.
//
// Trailing 7- and 30-day averages are annotated on the returned series.
func BuildDailySeries(t *schema.Table, activityType string, now time.Time, logger *slog.Logger) *schema.DailySeries {
	totals := make(map[time.Time]float64)
	var minDay time.Time

	for row := range t.NumRows() {
		miles, ok := rowMiles(t, row)
		if !ok || miles <= 0 {
			continue
		}
		start, ok := t.Value(schema.StartDateColumn, row).(time.Time)
		if !ok {
			continue
		}
		typ, ok := t.Value(schema.TypeColumn, row).(string)
		if !ok {
			continue
		}
		if activityType != schema.AllActivityTypes && typ != activityType {
			continue
		}

		day := truncateToDay(start)
		totals[day] += miles
		if minDay.IsZero() || day.Before(minDay) {
			minDay = day
		}
	}

	today := truncateToDay(now)
	series := &schema.DailySeries{ActivityType: activityType}

	// Rows dated after now (clock skew, ahead-of-UTC offsets) would start
	// the axis past its upper bound; degrade to the no-data shape instead.
	if len(totals) == 0 || minDay.After(today) {
		series.Points = []schema.DailyPoint{{Date: today}}
		ApplyMovingAverages(series.Points)
		logger.Debug("daily series has no qualifying rows", "type", activityType)
		return series
	}

	for day := minDay; !day.After(today); day = day.AddDate(0, 0, 1) {
		series.Points = append(series.Points, schema.DailyPoint{
			Date:  day,
			Miles: totals[day],
		})
	}
	ApplyMovingAverages(series.Points)

	logger.Debug("built daily series",
		"type", activityType,
		"days", len(series.Points),
		"total_miles", series.TotalMiles())
	return series
}

func rowMiles(t *schema.Table, row int) (float64, bool) {
	meters, ok := t.Value(schema.DistanceColumn, row).(float64)
	if !ok {
		return 0, false
	}
	return meters * MilesPerMeter, true
}

// truncateToDay discards time-of-day, keeping the wall-clock date in UTC.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
