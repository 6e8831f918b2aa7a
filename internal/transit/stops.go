package transit

import (
	"context"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

type StopLocator struct {
	httpClient client.Interface
	apiKey     string
}

var _ models.StopLocator = (*StopLocator)(nil)

func NewStopLocator(httpClient client.Interface, apiKey string) *StopLocator {
	return &StopLocator{
		httpClient: httpClient,
		apiKey:     apiKey,
	}
}

// NearestStop asks the MBTA for stops sorted by distance from coords and
// returns the first. A nil stop with a nil error means nothing is nearby.
// Ordering and tie-breaks are left to the provider.
func (l *StopLocator) NearestStop(ctx context.Context, coords models.Coordinates) (*models.Stop, error) {
	params := url.Values{}
	params.Set("api_key", l.apiKey)
	params.Set("filter[latitude]", coords.Latitude)
	params.Set("filter[longitude]", coords.Longitude)
	params.Set("sort", "distance")

	var resp stopsResponse
	if err := l.httpClient.GetJSON(ctx, buildPath("/stops", params), &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		log.Debug().
			Str("lat", coords.Latitude).
			Str("lon", coords.Longitude).
			Msg("No stop near coordinates")
		return nil, nil
	}

	nearest := resp.Data[0]
	if nearest.ID == "" {
		return nil, models.NewMalformedResponseError(providerName, "data[0].id", nil)
	}

	boarding := models.WheelchairBoardingUnknown
	if nearest.Attributes.WheelchairBoarding != nil {
		boarding = models.WheelchairBoarding(*nearest.Attributes.WheelchairBoarding)
	}

	stop := &models.Stop{
		ID:                 nearest.ID,
		Name:               nearest.Attributes.Name,
		WheelchairBoarding: boarding,
	}

	log.Debug().
		Str("stop_id", stop.ID).
		Str("name", stop.Name).
		Int("wheelchair_boarding", int(stop.WheelchairBoarding)).
		Msg("Found nearest stop")

	return stop, nil
}
