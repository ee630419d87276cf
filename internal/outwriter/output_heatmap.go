package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/flazor/stride/internal/contract"
	"github.com/flazor/stride/schema"
	"golang.org/x/term"
)

// weekdayNames label the heatmap rows, Monday first per the grid convention.
var weekdayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// heatmapCellWidth is the printed width of one week column, padding included.
const heatmapCellWidth = 6

// WriteHeatmapResults outputs the calendar grid, dispatching based on the
// output format configured.
func WriteHeatmapResults(grid *schema.CalendarGrid, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, grid)
		}, "Wrote JSON heatmap results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHeatmapCSV(w, grid, fmtFloat)
		}, "Wrote CSV heatmap results")
	default:
		return writeHeatmapGrid(os.Stdout, grid)
	}
}

// writeHeatmapCSV emits one row per nonzero cell, carrying both the true
// and capped display values.
func writeHeatmapCSV(w io.Writer, grid *schema.CalendarGrid, fmtFloat func(float64) string) error {
	header := []string{"year", "week", "weekday", "date", "miles", "display"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, year := range grid.Years {
			for _, row := range year.Rows {
				for _, cell := range row {
					if cell.Miles == 0 {
						continue
					}
					record := []string{
						strconv.Itoa(year.Year),
						strconv.Itoa(cell.Week),
						weekdayNames[cell.Weekday],
						cell.Date.Format(time.DateOnly),
						fmtFloat(cell.Miles),
						fmtFloat(cell.Display),
					}
					if err := csvWriter.Write(record); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// writeHeatmapGrid renders each year as a weekday-by-week grid. When the
// full week axis does not fit the terminal, the most recent weeks win.
func writeHeatmapGrid(w io.Writer, grid *schema.CalendarGrid) error {
	weeks := grid.WeekMax - grid.WeekMin + 1
	visible := visibleWeeks(weeks)
	firstWeek := grid.WeekMin + (weeks - visible)

	for _, year := range grid.Years {
		if _, err := fmt.Fprintf(w, "%d (%s)\n", year.Year, grid.ActivityType); err != nil {
			return err
		}
		// Week-number header row.
		if _, err := fmt.Fprintf(w, "%4s", ""); err != nil {
			return err
		}
		for week := firstWeek; week <= grid.WeekMax; week++ {
			if _, err := fmt.Fprintf(w, "%*d", heatmapCellWidth, week); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}

		for weekday, row := range year.Rows {
			if _, err := fmt.Fprintf(w, "%4s", weekdayNames[weekday]); err != nil {
				return err
			}
			for _, cell := range row[firstWeek-grid.WeekMin:] {
				if cell.Display == 0 {
					if _, err := fmt.Fprintf(w, "%*s", heatmapCellWidth, "."); err != nil {
						return err
					}
					continue
				}
				if _, err := fmt.Fprintf(w, "%*.1f", heatmapCellWidth, cell.Display); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// visibleWeeks caps how many week columns fit the current terminal width.
func visibleWeeks(weeks int) int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // conservative default for narrow terminals and CI
	}
	capacity := (width - 4) / heatmapCellWidth
	if capacity < 1 {
		capacity = 1
	}
	if weeks < capacity {
		return weeks
	}
	return capacity
}
