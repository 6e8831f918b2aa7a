// Package app wires configuration into the services and handlers shared by
// every entry point.
package app

import (
	"github.com/bbernstein/nearstop/internal/clock"
	"github.com/bbernstein/nearstop/internal/config"
	"github.com/bbernstein/nearstop/internal/geocode"
	"github.com/bbernstein/nearstop/internal/handler"
	"github.com/bbernstein/nearstop/internal/holiday"
	"github.com/bbernstein/nearstop/internal/lookup"
	"github.com/bbernstein/nearstop/internal/metrics"
	"github.com/bbernstein/nearstop/internal/transit"
	"github.com/bbernstein/nearstop/internal/weather"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

type App struct {
	Config  *config.Config
	Metrics *metrics.Metrics

	Lookup      *lookup.Service
	StopLocator *transit.StopLocator
	Pages       *handler.PageBuilder

	NearestHandler *handler.NearestHandler
	StopsHandler   *handler.StopsHandler
	IndexHandler   *handler.IndexHandler
}

// New builds one client per provider. m may be nil.
func New(cfg *config.Config, m *metrics.Metrics, clk clock.Clock) *App {
	if clk == nil {
		clk = clock.RealClock{}
	}

	newClient := func(name, baseURL string) *client.Client {
		opts := client.Options{
			Name:    name,
			BaseURL: baseURL,
			Timeout: cfg.HTTPTimeout,
		}
		if m != nil {
			opts.Recorder = m
		}
		return client.New(opts)
	}

	mbtaClient := newClient("mbta", cfg.MBTABaseURL)
	stopLocator := transit.NewStopLocator(mbtaClient, cfg.MBTAAPIKey)

	svc := lookup.NewService(
		geocode.NewMapboxGeocoder(newClient("mapbox", cfg.MapboxBaseURL), cfg.MapboxToken),
		stopLocator,
		transit.NewArrivalsFetcher(mbtaClient, cfg.MBTAAPIKey, clk),
	)
	if m != nil {
		svc.Observer = m
	}

	pages := handler.NewPageBuilder(
		weather.NewOpenWeatherService(newClient("openweather", cfg.OpenWeatherBaseURL), cfg.OpenWeatherAPIKey),
		holiday.NewAbstractService(newClient("holidays", cfg.HolidaysBaseURL), cfg.AbstractHolidaysAPIKey, clk),
		clk,
		cfg.DefaultCity,
		cfg.HolidayCountry,
	)

	return &App{
		Config:         cfg,
		Metrics:        m,
		Lookup:         svc,
		StopLocator:    stopLocator,
		Pages:          pages,
		NearestHandler: handler.NewNearestHandler(svc, pages),
		StopsHandler:   handler.NewStopsHandler(stopLocator),
		IndexHandler:   handler.NewIndexHandler(pages),
	}
}
