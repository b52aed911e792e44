package render

import (
	"fmt"
	"strings"

	"github.com/swelljoe/zipcast/internal/geo"
	"github.com/swelljoe/zipcast/internal/weather"
)

// DefaultWidth is the column width of the rendered forecast.
const DefaultWidth = 42

// Render formats a resolved forecast as display lines. A width <= 0 uses
// DefaultWidth.
func Render(loc geo.Location, fc weather.Forecast, width int) []string {
	if width <= 0 {
		width = DefaultWidth
	}
	heavy := strings.Repeat("=", width)
	light := strings.Repeat("-", width)

	lines := []string{
		"",
		fmt.Sprintf("[Forecast for %s, %s]", loc.City, loc.StateAbbreviation),
	}

	for _, p := range fc.Periods {
		lines = append(lines,
			heavy,
			fmt.Sprintf("%14s%-15s", "", p.Name),
			heavy,
			fmt.Sprintf("[Temp] %d %s", p.Temperature, p.TemperatureUnit),
			fmt.Sprintf("[Wind] %s %s", p.WindSpeed, p.WindDirection),
			light,
		)
		lines = append(lines, Wrap(p.DetailedForecast, width)...)
		lines = append(lines, heavy, "")
	}

	return lines
}
