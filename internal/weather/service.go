package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/swelljoe/zipcast/internal/geo"
)

// DefaultBaseURL is the NWS API root used to build points queries.
const DefaultBaseURL = "https://api.weather.gov"

// Locator finds the coordinates for a postal code. Implementations return
// an error wrapping geo.ErrNotFound on a miss.
type Locator interface {
	Lookup(postalCode string) (geo.Location, error)
}

// Options tune a Service. Zero values select the defaults.
type Options struct {
	BaseURL    string
	MaxPeriods int
	// SkipMalformedPeriods drops undecodable periods with a warning instead
	// of failing the whole forecast.
	SkipMalformedPeriods bool
}

// Service resolves postal codes to forecasts
type Service struct {
	locator Locator
	fetcher Fetcher
	opts    Options
}

// NewService creates a resolver over the given location index and fetcher.
func NewService(locator Locator, fetcher Fetcher, opts Options) *Service {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	if opts.MaxPeriods <= 0 {
		opts.MaxPeriods = DefaultMaxPeriods
	}

	return &Service{
		locator: locator,
		fetcher: fetcher,
		opts:    opts,
	}
}

// Resolve looks up postalCode and fetches its forecast.
//
// A lookup miss is returned as an error wrapping ErrLocationNotFound. Any
// failure after the location is known is logged and contained: the result
// carries the location, no periods, and the failure in Result.Err.
func (s *Service) Resolve(ctx context.Context, postalCode string) (*Result, error) {
	postalCode = strings.TrimSpace(postalCode)
	id := uuid.New().String()

	loc, err := s.locator.Lookup(postalCode)
	if err != nil {
		if errors.Is(err, geo.ErrNotFound) {
			log.Printf("[%s] no location for postal code %q", id, postalCode)
			resolutionsTotal.WithLabelValues("not_found").Inc()
			return nil, fmt.Errorf("%w: %w", ErrLocationNotFound, err)
		}
		log.Printf("[%s] location lookup for %q failed: %v", id, postalCode, err)
		resolutionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("lookup %s: %w", postalCode, err)
	}

	result := &Result{
		ID:       id,
		Location: loc,
		Forecast: Forecast{Periods: []ForecastPeriod{}},
	}

	forecastURL, err := s.GetForecastURL(ctx, s.PointsURL(loc))
	if err != nil {
		log.Printf("[%s] failed to get forecast URL for %s: %v", id, postalCode, err)
		result.Err = fmt.Errorf("failed to get point metadata: %w", err)
		resolutionsTotal.WithLabelValues("unavailable").Inc()
		return result, nil
	}

	fc, err := s.forecast(ctx, id, forecastURL)
	if err != nil {
		log.Printf("[%s] failed to get forecast for %s: %v", id, postalCode, err)
		result.Err = fmt.Errorf("failed to get forecast: %w", err)
		resolutionsTotal.WithLabelValues("unavailable").Inc()
		return result, nil
	}

	result.Forecast = fc
	resolutionsTotal.WithLabelValues("ok").Inc()
	return result, nil
}

// PointsURL builds the points query for a location. Coordinates are used
// verbatim from the dataset.
func (s *Service) PointsURL(loc geo.Location) string {
	return fmt.Sprintf("%s/points/%s,%s", s.opts.BaseURL, loc.Latitude, loc.Longitude)
}

// pointResponse represents the NWS /points/ response
type pointResponse struct {
	Properties struct {
		Forecast *string `json:"forecast"`
	} `json:"properties"`
}

// GetForecastURL fetches a points document and returns properties.forecast.
func (s *Service) GetForecastURL(ctx context.Context, pointsURL string) (string, error) {
	data, err := s.fetcher.Get(ctx, pointsURL)
	if err != nil {
		return "", err
	}

	var pt pointResponse
	if err := json.Unmarshal(data, &pt); err != nil {
		return "", malformed("points", err)
	}
	if pt.Properties.Forecast == nil || *pt.Properties.Forecast == "" {
		return "", malformed("points: missing properties.forecast", nil)
	}
	return *pt.Properties.Forecast, nil
}

// forecastResponse represents the NWS /gridpoints/.../forecast response.
// Periods are kept raw so each one can be decoded on its own.
type forecastResponse struct {
	Properties struct {
		Periods *[]json.RawMessage `json:"periods"`
	} `json:"properties"`
}

type periodJSON struct {
	Name             *string `json:"name"`
	Temperature      *int    `json:"temperature"`
	TemperatureUnit  *string `json:"temperatureUnit"`
	WindSpeed        *string `json:"windSpeed"`
	WindDirection    *string `json:"windDirection"`
	ShortForecast    *string `json:"shortForecast"`
	DetailedForecast *string `json:"detailedForecast"`
}

// GetForecast fetches forecastURL and decodes up to MaxPeriods periods in
// source order.
func (s *Service) GetForecast(ctx context.Context, forecastURL string) (Forecast, error) {
	return s.forecast(ctx, uuid.New().String(), forecastURL)
}

// forecast is GetForecast with skip warnings tagged by the resolution id.
func (s *Service) forecast(ctx context.Context, id, forecastURL string) (Forecast, error) {
	data, err := s.fetcher.Get(ctx, forecastURL)
	if err != nil {
		return Forecast{}, err
	}

	var fr forecastResponse
	if err := json.Unmarshal(data, &fr); err != nil {
		return Forecast{}, malformed("forecast", err)
	}
	if fr.Properties.Periods == nil {
		return Forecast{}, malformed("forecast: missing properties.periods", nil)
	}

	periods := make([]ForecastPeriod, 0, s.opts.MaxPeriods)
	for i, raw := range *fr.Properties.Periods {
		if len(periods) >= s.opts.MaxPeriods {
			break
		}
		p, err := decodePeriod(raw)
		if err != nil {
			if s.opts.SkipMalformedPeriods {
				log.Printf("[%s] skipping forecast period %d: %v", id, i, err)
				continue
			}
			return Forecast{}, malformed(fmt.Sprintf("forecast period %d", i), err)
		}
		periods = append(periods, p)
	}

	return Forecast{Periods: periods}, nil
}

func decodePeriod(raw json.RawMessage) (ForecastPeriod, error) {
	var pj periodJSON
	if err := json.Unmarshal(raw, &pj); err != nil {
		return ForecastPeriod{}, err
	}

	var missing []string
	str := func(name string, v *string) string {
		if v == nil {
			missing = append(missing, name)
			return ""
		}
		return *v
	}

	p := ForecastPeriod{
		Name:             str("name", pj.Name),
		TemperatureUnit:  str("temperatureUnit", pj.TemperatureUnit),
		WindSpeed:        str("windSpeed", pj.WindSpeed),
		WindDirection:    str("windDirection", pj.WindDirection),
		ShortForecast:    str("shortForecast", pj.ShortForecast),
		DetailedForecast: str("detailedForecast", pj.DetailedForecast),
	}
	if pj.Temperature == nil {
		missing = append(missing, "temperature")
	} else {
		p.Temperature = *pj.Temperature
	}

	if len(missing) > 0 {
		return ForecastPeriod{}, fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return p, nil
}
