package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/i474232898/wfetch/internal/weather"
)

func sampleRecord() weather.DisplayRecord {
	return weather.DisplayRecord{
		Location:    "Paris, Ile-de-France, France",
		LocalTime:   "2024-05-01 01:30 PM",
		Condition:   "Partly cloudy",
		Temperature: 18,
		FeelsLike:   17.04,
		TempSuffix:  "°C",
		Wind:        11.24,
		WindSuffix:  "kph",
		HumidityPct: 64,
		PrecipMM:    0.1,
		PressureMb:  1015,
	}
}

func TestRender(t *testing.T) {
	Convey("Render", t, func() {
		lines := Render(sampleRecord())
		So(lines, ShouldResemble, []string{
			"Location:      Paris, Ile-de-France, France",
			"Local time:    2024-05-01 01:30 PM",
			"Condition:     Partly cloudy",
			"Temperature:   18.0 °C",
			"Feels like:    17.0 °C",
			"Wind:          11.2 kph",
			"Humidity:      64%",
			"Precipitation: 0.1 mm",
			"Pressure:      1015.0 mb",
		})
	})

	Convey("Unit suffixes", t, func() {
		r := sampleRecord()
		r.TempSuffix = "K"
		r.WindSuffix = "mph"
		lines := Render(r)
		So(lines[3], ShouldEndWith, "18.0 K")
		So(lines[5], ShouldEndWith, "11.2 mph")
	})

	Convey("Missing temperature", t, func() {
		r := sampleRecord()
		r.Temperature = math.NaN()
		So(Render(r)[3], ShouldEqual, "Temperature:   n/a")
	})
}

func TestWrite(t *testing.T) {
	Convey("Write emits every line in order", t, func() {
		var buf bytes.Buffer
		So(Write(&buf, sampleRecord()), ShouldBeNil)
		out := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
		So(len(out), ShouldEqual, 9)
		So(out[0], ShouldStartWith, "Location:")
		So(out[8], ShouldStartWith, "Pressure:")
	})
}
