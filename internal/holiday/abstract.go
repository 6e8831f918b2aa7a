package holiday

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/clock"
	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

var ErrNotConfigured = errors.New("abstract holidays api key is not set")

// Abstract reports dates as MM/DD/YYYY
var dateLayouts = []string{"01/02/2006", "2006-01-02"}

type AbstractService struct {
	httpClient client.Interface
	apiKey     string
	clock      clock.Clock
}

var _ models.HolidayProvider = (*AbstractService)(nil)

func NewAbstractService(httpClient client.Interface, apiKey string, clk clock.Clock) *AbstractService {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &AbstractService{
		httpClient: httpClient,
		apiKey:     apiKey,
		clock:      clk,
	}
}

type holidayResource struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Type    string `json:"type"`
	Date    string `json:"date"`
}

// Today returns the public holiday falling on today's date in country, or nil
// when there is none. Entries whose date is not today are ignored.
func (s *AbstractService) Today(ctx context.Context, country string) (*models.Holiday, error) {
	if s.apiKey == "" {
		return nil, ErrNotConfigured
	}

	now := s.clock.Now()

	params := url.Values{}
	params.Set("api_key", s.apiKey)
	params.Set("country", country)
	params.Set("year", strconv.Itoa(now.Year()))
	params.Set("month", strconv.Itoa(int(now.Month())))
	params.Set("day", strconv.Itoa(now.Day()))

	var holidays []holidayResource
	if err := s.httpClient.GetJSON(ctx, "/v1/?"+params.Encode(), &holidays); err != nil {
		return nil, err
	}

	for _, h := range holidays {
		if !isSameDay(h.Date, now) {
			log.Debug().Str("holiday", h.Name).Str("date", h.Date).Msg("Skipping holiday not dated today")
			continue
		}
		return &models.Holiday{
			Name:    h.Name,
			Date:    h.Date,
			Country: h.Country,
			Type:    h.Type,
		}, nil
	}

	return nil, nil
}

func isSameDay(date string, now time.Time) bool {
	for _, layout := range dateLayouts {
		parsed, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		y, m, d := now.Date()
		return parsed.Year() == y && parsed.Month() == m && parsed.Day() == d
	}
	return false
}
