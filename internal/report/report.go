package report

import (
	"fmt"
	"io"
	"math"

	"github.com/i474232898/wfetch/internal/weather"
)

const labelWidth = 14

func line(label, value string) string {
	return fmt.Sprintf("%-*s %s", labelWidth, label+":", value)
}

func decimal(v float64, suffix string) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.1f %s", v, suffix)
}

// Render formats a display record as aligned report lines, one per field.
func Render(r weather.DisplayRecord) []string {
	return []string{
		line("Location", r.Location),
		line("Local time", r.LocalTime),
		line("Condition", r.Condition),
		line("Temperature", decimal(r.Temperature, r.TempSuffix)),
		line("Feels like", decimal(r.FeelsLike, r.TempSuffix)),
		line("Wind", decimal(r.Wind, r.WindSuffix)),
		line("Humidity", fmt.Sprintf("%d%%", r.HumidityPct)),
		line("Precipitation", decimal(r.PrecipMM, "mm")),
		line("Pressure", decimal(r.PressureMb, "mb")),
	}
}

// Write renders r and writes one line per field to w.
func Write(w io.Writer, r weather.DisplayRecord) error {
	for _, l := range Render(r) {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}
