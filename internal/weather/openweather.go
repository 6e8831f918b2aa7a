package weather

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

const providerName = "openweather"

var (
	ErrNotConfigured = errors.New("openweather api key is not set")
	ErrEmptyCity     = errors.New("city is empty")
)

type OpenWeatherService struct {
	httpClient client.Interface
	apiKey     string
}

var _ models.WeatherProvider = (*OpenWeatherService)(nil)

func NewOpenWeatherService(httpClient client.Interface, apiKey string) *OpenWeatherService {
	return &OpenWeatherService{
		httpClient: httpClient,
		apiKey:     apiKey,
	}
}

type currentWeatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
}

// Current returns the current conditions for city in metric units.
func (s *OpenWeatherService) Current(ctx context.Context, city string) (*models.Weather, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(city) == "" {
		return nil, ErrEmptyCity
	}

	params := url.Values{}
	params.Set("q", city)
	params.Set("appid", s.apiKey)
	params.Set("units", "metric")

	var resp currentWeatherResponse
	if err := s.httpClient.GetJSON(ctx, "/data/2.5/weather?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	if resp.Main == nil {
		return nil, models.NewMalformedResponseError(providerName, "main.temp", nil)
	}
	if len(resp.Weather) == 0 {
		return nil, models.NewMalformedResponseError(providerName, "weather[0].description", nil)
	}

	weather := &models.Weather{
		City:         city,
		TemperatureC: resp.Main.Temp,
		Description:  resp.Weather[0].Description,
	}

	log.Debug().
		Str("city", city).
		Float64("temp_c", weather.TemperatureC).
		Str("description", weather.Description).
		Msg("Fetched weather")

	return weather, nil
}
