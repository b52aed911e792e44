package weather

import "github.com/swelljoe/zipcast/internal/geo"

// DefaultMaxPeriods is how many forecast periods Resolve keeps by default.
const DefaultMaxPeriods = 6

// ForecastPeriod is one entry of the NWS forecast periods array.
type ForecastPeriod struct {
	Name             string
	Temperature      int
	TemperatureUnit  string
	WindSpeed        string
	WindDirection    string
	ShortForecast    string
	DetailedForecast string
}

// Forecast holds periods in the order the service returned them.
type Forecast struct {
	Periods []ForecastPeriod
}

// Result is the outcome of a resolution. Err holds a contained failure of
// the forecast stages; when it is set Forecast has no periods.
type Result struct {
	ID       string
	Location geo.Location
	Forecast Forecast
	Err      error
}
