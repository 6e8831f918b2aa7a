package transit

import (
	"context"
	"math"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/clock"
	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

type ArrivalsFetcher struct {
	httpClient client.Interface
	apiKey     string
	clock      clock.Clock
}

var _ models.ArrivalsFetcher = (*ArrivalsFetcher)(nil)

func NewArrivalsFetcher(httpClient client.Interface, apiKey string, clk clock.Clock) *ArrivalsFetcher {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &ArrivalsFetcher{
		httpClient: httpClient,
		apiKey:     apiKey,
		clock:      clk,
	}
}

// UpcomingArrivals returns minutes until each predicted arrival at stopID, in
// the provider's arrival-time order. Predictions without an arrival time are
// skipped and arrivals at or before now are dropped.
func (f *ArrivalsFetcher) UpcomingArrivals(ctx context.Context, stopID string) ([]int, error) {
	params := url.Values{}
	params.Set("api_key", f.apiKey)
	params.Set("filter[stop]", stopID)
	params.Set("sort", "arrival_time")

	var resp predictionsResponse
	if err := f.httpClient.GetJSON(ctx, buildPath("/predictions", params), &resp); err != nil {
		return nil, err
	}

	// one reference time for the whole list
	now := f.clock.Now()

	arrivals := make([]int, 0, len(resp.Data))
	skipped := 0
	for _, p := range resp.Data {
		if p.Attributes.ArrivalTime == nil || *p.Attributes.ArrivalTime == "" {
			skipped++
			continue
		}

		arrivalTime, err := time.Parse(time.RFC3339, *p.Attributes.ArrivalTime)
		if err != nil {
			return nil, models.NewMalformedResponseError(providerName, "attributes.arrival_time", err)
		}

		minutes, ok := minutesUntil(now, arrivalTime)
		if !ok {
			skipped++
			continue
		}
		arrivals = append(arrivals, minutes)
	}

	log.Debug().
		Str("stop_id", stopID).
		Int("predictions", len(resp.Data)).
		Int("arrivals", len(arrivals)).
		Int("skipped", skipped).
		Msg("Fetched arrivals")

	return arrivals, nil
}

// minutesUntil rounds half to even. ok is false for arrivals at or before now.
func minutesUntil(now, arrival time.Time) (int, bool) {
	until := arrival.Sub(now)
	if until <= 0 {
		return 0, false
	}
	return int(math.RoundToEven(until.Minutes())), true
}
