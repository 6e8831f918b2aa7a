package handler

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/bbernstein/nearstop/internal/clock"
	"github.com/bbernstein/nearstop/internal/models"
)

const (
	DateLayout = "Monday, January 02, 2006"

	WeatherUnavailable = "Weather data not available"
	HolidayUnavailable = "Holiday data not available"
	NoHolidayToday     = "Today is not a holiday."
)

// PageContextBuilder produces the date, weather and holiday lines.
type PageContextBuilder interface {
	Build(ctx context.Context) models.PageContext
}

type PageBuilder struct {
	weather  models.WeatherProvider
	holidays models.HolidayProvider
	clock    clock.Clock
	city     string
	country  string
}

var _ PageContextBuilder = (*PageBuilder)(nil)

// NewPageBuilder accepts nil providers; their lines fall back to the
// unavailable text.
func NewPageBuilder(weather models.WeatherProvider, holidays models.HolidayProvider, clk clock.Clock, city, country string) *PageBuilder {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &PageBuilder{
		weather:  weather,
		holidays: holidays,
		clock:    clk,
		city:     city,
		country:  country,
	}
}

// Build fetches weather and holiday concurrently. It never fails: provider
// errors are logged and replaced by fallback text.
func (b *PageBuilder) Build(ctx context.Context) models.PageContext {
	page := models.PageContext{
		Date: b.clock.Now().Format(DateLayout),
	}

	p := pool.New().WithMaxGoroutines(2)
	p.Go(func() {
		page.Weather = b.weatherLine(ctx)
	})
	p.Go(func() {
		page.Holiday = b.holidayLine(ctx)
	})
	p.Wait()

	return page
}

func (b *PageBuilder) weatherLine(ctx context.Context) string {
	if b.weather == nil {
		return WeatherUnavailable
	}

	weather, err := b.weather.Current(ctx, b.city)
	if err != nil {
		log.Warn().Err(err).Str("city", b.city).Msg("Weather lookup failed")
		return WeatherUnavailable
	}
	if weather == nil {
		return WeatherUnavailable
	}

	return weather.String()
}

func (b *PageBuilder) holidayLine(ctx context.Context) string {
	if b.holidays == nil {
		return HolidayUnavailable
	}

	holiday, err := b.holidays.Today(ctx, b.country)
	if err != nil {
		log.Warn().Err(err).Str("country", b.country).Msg("Holiday lookup failed")
		return HolidayUnavailable
	}
	if holiday == nil {
		return NoHolidayToday
	}

	return fmt.Sprintf("Today is %s!", holiday.Name)
}
