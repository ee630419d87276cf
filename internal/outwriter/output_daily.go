package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/flazor/stride/internal/contract"
	"github.com/flazor/stride/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Effort label constants.
const (
	PeakValue   = "Peak"   // at or above the heatmap ceiling
	HighValue   = "High"   // at least half the ceiling
	ActiveValue = "Active" // any activity
	RestValue   = "Rest"   // no activity
)

// Color variables for console output.
var (
	PeakColor   = color.New(color.FgRed, color.Bold)
	HighColor   = color.New(color.FgMagenta, color.Bold)
	ActiveColor = color.New(color.FgCyan)
)

// GetPlainLabel returns a plain text effort label for a day's mileage.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(miles float64) string {
	switch {
	case miles >= schema.HeatmapDisplayCeiling:
		return PeakValue
	case miles >= schema.HeatmapDisplayCeiling/2:
		return HighValue
	case miles > 0:
		return ActiveValue
	default:
		return RestValue
	}
}

// GetColorLabel returns a colored effort label for console table output.
func GetColorLabel(miles float64) string {
	text := GetPlainLabel(miles)

	switch text {
	case PeakValue:
		return PeakColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ActiveValue:
		return ActiveColor.Sprint(text)
	default: // "Rest"
		return text
	}
}

// WriteDailyResults outputs the daily series, dispatching based on the
// output format configured.
func WriteDailyResults(series *schema.DailySeries, cfg *contract.Config) error {
	fmtFloat := createFloatFormatter(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, series)
		}, "Wrote JSON daily results")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDailyCSV(w, series, fmtFloat)
		}, "Wrote CSV daily results")
	default:
		return writeDailyTable(series, fmtFloat)
	}
}

func writeDailyCSV(w io.Writer, series *schema.DailySeries, fmtFloat func(float64) string) error {
	header := []string{"date", "miles", "avg_7d", "avg_30d", "label"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, p := range series.Points {
			row := []string{
				p.Date.Format(time.DateOnly),
				fmtFloat(p.Miles),
				fmtFloat(p.Avg7D),
				fmtFloat(p.Avg30D),
				GetPlainLabel(p.Miles),
			}
			if err := csvWriter.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeDailyTable prints the daily series in a five-column table.
func writeDailyTable(series *schema.DailySeries, fmtFloat func(float64) string) error {
	table := tablewriter.NewWriter(os.Stdout)

	headers := []string{"Date", "Miles", "7-Day Avg", "30-Day Avg", "Effort"}
	table.Header(headers)

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range series.Points {
		row := []string{
			p.Date.Format(time.DateOnly),
			fmtFloat(p.Miles),
			fmtFloat(p.Avg7D),
			fmtFloat(p.Avg30D),
			GetColorLabel(p.Miles),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("%s: %d days, %.1f total miles\n",
		series.ActivityType, len(series.Points), series.TotalMiles())
	return nil
}
