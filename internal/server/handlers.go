package server

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/flazor/stride/core"
	"github.com/flazor/stride/schema"
)

// summaryResponse is the shape of GET /api/summary.
type summaryResponse struct {
	Activities int            `json:"activities"`
	TotalMiles float64        `json:"total_miles"`
	FirstDate  *time.Time     `json:"first_date,omitempty"`
	LastDate   *time.Time     `json:"last_date,omitempty"`
	TypeCounts map[string]int `json:"type_counts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSummary(w http.ResponseWriter, _ *http.Request) {
	resp := summaryResponse{
		Activities: s.table.NumRows(),
		TypeCounts: make(map[string]int),
	}

	for row := range s.table.NumRows() {
		if meters, ok := s.table.Value(schema.DistanceColumn, row).(float64); ok {
			resp.TotalMiles += meters * core.MilesPerMeter
		}
		if typ, ok := s.table.Value(schema.TypeColumn, row).(string); ok {
			resp.TypeCounts[typ]++
		}
		if ts, ok := s.table.Value(schema.StartDateColumn, row).(time.Time); ok {
			if resp.FirstDate == nil || ts.Before(*resp.FirstDate) {
				t := ts
				resp.FirstDate = &t
			}
			if resp.LastDate == nil || ts.After(*resp.LastDate) {
				t := ts
				resp.LastDate = &t
			}
		}
	}

	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleDaily(w http.ResponseWriter, req *http.Request) {
	activityType := req.URL.Query().Get("type")
	if activityType == "" {
		activityType = schema.AllActivityTypes
	}

	period := schema.Period(req.URL.Query().Get("period"))
	if period == "" {
		period = schema.PeriodAll
	}
	if !core.IsValidPeriod(period) {
		writeError(w, http.StatusBadRequest, "invalid_period", "unknown period "+string(period))
		return
	}

	series := core.BuildDailySeries(s.table, activityType, s.now(), s.logger)
	writeData(w, http.StatusOK, core.FilterPeriod(series, period))
}

func (s *Server) handleHeatmap(w http.ResponseWriter, req *http.Request) {
	activityType := req.URL.Query().Get("type")
	if activityType == "" {
		activityType = schema.AllActivityTypes
	}

	series := core.BuildDailySeries(s.table, activityType, s.now(), s.logger)
	grid, err := core.BuildCalendarGrid(series)
	if err != nil {
		if errors.Is(err, schema.ErrNoData) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeError(w, http.StatusInternalServerError, "heatmap_failed", err.Error())
		return
	}

	writeData(w, http.StatusOK, grid)
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	seen := make(map[string]bool)
	for row := range s.table.NumRows() {
		if typ, ok := s.table.Value(schema.TypeColumn, row).(string); ok {
			seen[typ] = true
		}
	}

	types := make([]string, 0, len(seen))
	for typ := range seen {
		types = append(types, typ)
	}
	sort.Strings(types)

	writeData(w, http.StatusOK, map[string][]string{"types": types})
}
