package app

import (
	"io"
	"log"

	"github.com/swelljoe/zipcast/internal/config"
	"github.com/swelljoe/zipcast/internal/db"
	"github.com/swelljoe/zipcast/internal/geo"
	"github.com/swelljoe/zipcast/internal/weather"
)

// App bundles the resolver with the resources it holds open.
type App struct {
	Service *weather.Service
	closer  io.Closer
}

// New wires the location index, fetcher and resolver described by cfg.
//
// With cfg.DBPath set the SQLite index is used and a failure to open it is
// returned. Otherwise the CSV at cfg.ZipsFile is loaded; an unreadable file
// is logged and the app starts with an empty index.
func New(cfg *config.Config) (*App, error) {
	var (
		locator weather.Locator
		closer  io.Closer
	)

	if cfg.DBPath != "" {
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		locator, closer = database, database
		log.Printf("Using location index %s", cfg.DBPath)
	} else {
		store, err := geo.Load(cfg.ZipsFile)
		if err != nil {
			log.Printf("Warning: %v", err)
		} else {
			log.Printf("Loaded %d postal codes from %s", store.Len(), cfg.ZipsFile)
		}
		locator = store
	}

	var fetcher weather.Fetcher = weather.NewClient(cfg.UserAgent, cfg.Timeout)
	if cfg.RateLimit > 0 {
		fetcher = weather.NewRateLimitedFetcher(fetcher, cfg.RateLimit, cfg.RateBurst)
	}

	svc := weather.NewService(locator, fetcher, weather.Options{
		BaseURL:              cfg.BaseURL,
		MaxPeriods:           cfg.MaxPeriods,
		SkipMalformedPeriods: cfg.SkipMalformedPeriods,
	})

	return &App{Service: svc, closer: closer}, nil
}

// Close releases the location index.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

var (
	_ weather.Locator = (*geo.Store)(nil)
	_ weather.Locator = (*db.DB)(nil)
)
