package schema

import "time"

// DailyPoint is one day of aggregated activity with trailing averages.
type DailyPoint struct {
	Date   time.Time `json:"date"`
	Miles  float64   `json:"miles"`
	Avg7D  float64   `json:"avg_7d"`
	Avg30D float64   `json:"avg_30d"`
}

// DailySeries is a gap-free, ascending-by-date sequence of daily totals.
// Days with no qualifying activity carry zero miles.
type DailySeries struct {
	ActivityType string       `json:"activity_type"`
	Points       []DailyPoint `json:"points"`
}

// First returns the earliest point. The series is never empty by contract.
func (s *DailySeries) First() DailyPoint { return s.Points[0] }

// Last returns the latest point.
func (s *DailySeries) Last() DailyPoint { return s.Points[len(s.Points)-1] }

// TotalMiles sums miles across the whole series.
func (s *DailySeries) TotalMiles() float64 {
	var total float64
	for _, p := range s.Points {
		total += p.Miles
	}
	return total
}
