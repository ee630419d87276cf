package core

import "github.com/flazor/stride/schema"

// Moving-average window sizes over the daily series.
const (
	ShortWindow = 7
	LongWindow  = 30
)

// ApplyMovingAverages annotates each point with trailing means over the
// short and long windows, using however many samples exist near the start
// of the series (minimum window of one). The caller guarantees the points
// are ascending and gap-free; violated order is not checked.
func ApplyMovingAverages(points []schema.DailyPoint) {
	var sum7, sum30 float64
	for i := range points {
		sum7 += points[i].Miles
		sum30 += points[i].Miles
		if i >= ShortWindow {
			sum7 -= points[i-ShortWindow].Miles
		}
		if i >= LongWindow {
			sum30 -= points[i-LongWindow].Miles
		}
		points[i].Avg7D = sum7 / float64(min(i+1, ShortWindow))
		points[i].Avg30D = sum30 / float64(min(i+1, LongWindow))
	}
}
