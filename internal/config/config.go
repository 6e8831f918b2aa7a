package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment string
	LogLevel    zerolog.Level
	HTTPTimeout time.Duration

	MapboxToken            string
	MBTAAPIKey             string
	OpenWeatherAPIKey      string
	AbstractHolidaysAPIKey string

	MapboxBaseURL      string
	MBTABaseURL        string
	OpenWeatherBaseURL string
	HolidaysBaseURL    string

	DefaultCity    string
	HolidayCountry string
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the per-call upstream timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithAPIKeys sets the credentials for the four upstream providers
func WithAPIKeys(mapboxToken, mbtaKey, openWeatherKey, holidaysKey string) Option {
	return func(c *Config) {
		c.MapboxToken = mapboxToken
		c.MBTAAPIKey = mbtaKey
		c.OpenWeatherAPIKey = openWeatherKey
		c.AbstractHolidaysAPIKey = holidaysKey
	}
}

// WithBaseURLs overrides provider endpoints. Empty values keep the default.
func WithBaseURLs(mapbox, mbta, openWeather, holidays string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.MapboxBaseURL, mapbox)
		setIfNotEmpty(&c.MBTABaseURL, mbta)
		setIfNotEmpty(&c.OpenWeatherBaseURL, openWeather)
		setIfNotEmpty(&c.HolidaysBaseURL, holidays)
	}
}

// WithLocale sets the city used for weather and the country used for holidays
func WithLocale(city, country string) Option {
	return func(c *Config) {
		setIfNotEmpty(&c.DefaultCity, city)
		setIfNotEmpty(&c.HolidayCountry, country)
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:        "production",
		LogLevel:           zerolog.InfoLevel,
		HTTPTimeout:        5 * time.Second,
		MapboxBaseURL:      "https://api.mapbox.com",
		MBTABaseURL:        "https://api-v3.mbta.com",
		OpenWeatherBaseURL: "https://api.openweathermap.org",
		HolidaysBaseURL:    "https://holidays.abstractapi.com",
		DefaultCity:        "Boston",
		HolidayCountry:     "US",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// Validate reports missing credentials the transit lookup cannot run without.
// Weather and holiday keys are optional; their pages degrade to fallback text.
func (c *Config) Validate() error {
	var errs []error
	if c.MapboxToken == "" {
		errs = append(errs, errors.New("MAPBOX_TOKEN is not set"))
	}
	if c.MBTAAPIKey == "" {
		errs = append(errs, errors.New("MBTA_API_KEY is not set"))
	}
	return errors.Join(errs...)
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	// Setup console logger for development environments
	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
}

// LoadFromEnv loads configuration from environment variables, reading an
// optional .env file first. Variables already set in the process win.
func LoadFromEnv() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("Ignoring unreadable .env file")
	}

	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 5*time.Second)),
		WithAPIKeys(
			os.Getenv("MAPBOX_TOKEN"),
			os.Getenv("MBTA_API_KEY"),
			os.Getenv("OPENWEATHER_API_KEY"),
			os.Getenv("ABSTRACT_HOLIDAYS_API_KEY"),
		),
		WithBaseURLs(
			os.Getenv("MAPBOX_BASE_URL"),
			os.Getenv("MBTA_BASE_URL"),
			os.Getenv("OPENWEATHER_BASE_URL"),
			os.Getenv("HOLIDAYS_BASE_URL"),
		),
		WithLocale(os.Getenv("DEFAULT_CITY"), os.Getenv("HOLIDAY_COUNTRY")),
	)
}

func setIfNotEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
