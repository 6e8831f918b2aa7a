package lookup

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/models"
)

// Observer is told the outcome of each lookup ("found", "no_station", "error").
type Observer interface {
	ObserveLookup(result string)
}

type Service struct {
	Geocoder        models.Geocoder
	StopLocator     models.StopLocator
	ArrivalsFetcher models.ArrivalsFetcher
	Observer        Observer
}

var _ models.StopFinder = (*Service)(nil)

func NewService(geocoder models.Geocoder, locator models.StopLocator, arrivals models.ArrivalsFetcher) *Service {
	return &Service{
		Geocoder:        geocoder,
		StopLocator:     locator,
		ArrivalsFetcher: arrivals,
	}
}

// FindNearestStop resolves placeName to the nearest stop and its upcoming
// arrivals. The stages run in order and each needs the previous result.
// Errors from any stage are returned as-is; a failed arrivals fetch fails the
// whole lookup even though the stop is known.
func (s *Service) FindNearestStop(ctx context.Context, placeName string) (*models.LookupResult, error) {
	result, err := s.findNearestStop(ctx, placeName)

	if s.Observer != nil {
		switch {
		case err != nil:
			s.Observer.ObserveLookup("error")
		case result.StationName == models.NoStationFoundName:
			s.Observer.ObserveLookup("no_station")
		default:
			s.Observer.ObserveLookup("found")
		}
	}

	return result, err
}

func (s *Service) findNearestStop(ctx context.Context, placeName string) (*models.LookupResult, error) {
	coords, err := s.Geocoder.Geocode(ctx, placeName)
	if err != nil {
		return nil, err
	}

	stop, err := s.StopLocator.NearestStop(ctx, *coords)
	if err != nil {
		return nil, err
	}

	if stop == nil {
		log.Info().Str("place", placeName).Msg("No stop near place")
		return models.NoStationResult(), nil
	}

	arrivals, err := s.ArrivalsFetcher.UpcomingArrivals(ctx, stop.ID)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("place", placeName).
		Str("stop_id", stop.ID).
		Str("station", stop.Name).
		Int("arrivals", len(arrivals)).
		Msg("Lookup complete")

	return models.NewLookupResult(*stop, arrivals), nil
}
