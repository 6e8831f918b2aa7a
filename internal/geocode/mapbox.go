package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bbernstein/nearstop/internal/models"
	"github.com/bbernstein/nearstop/pkg/http/client"
)

const providerName = "mapbox"

var ErrEmptyPlaceName = errors.New("place name is empty")

type MapboxGeocoder struct {
	httpClient client.Interface
	token      string
}

var _ models.Geocoder = (*MapboxGeocoder)(nil)

func NewMapboxGeocoder(httpClient client.Interface, token string) *MapboxGeocoder {
	return &MapboxGeocoder{
		httpClient: httpClient,
		token:      token,
	}
}

type mapboxResponse struct {
	Features []struct {
		PlaceName string `json:"place_name"`
		Geometry  *struct {
			Coordinates []json.Number `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves placeName to the coordinates of the first candidate Mapbox
// returns. Ambiguous names are not disambiguated.
func (g *MapboxGeocoder) Geocode(ctx context.Context, placeName string) (*models.Coordinates, error) {
	if strings.TrimSpace(placeName) == "" {
		return nil, ErrEmptyPlaceName
	}

	path := fmt.Sprintf("/geocoding/v5/mapbox.places/%s.json?access_token=%s",
		url.PathEscape(placeName), url.QueryEscape(g.token))

	var resp mapboxResponse
	if err := g.httpClient.GetJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	if len(resp.Features) == 0 {
		return nil, &models.NoMatchError{Query: placeName}
	}

	first := resp.Features[0]
	if first.Geometry == nil || len(first.Geometry.Coordinates) < 2 ||
		first.Geometry.Coordinates[0] == "" || first.Geometry.Coordinates[1] == "" {
		return nil, models.NewMalformedResponseError(providerName, "features[0].geometry.coordinates", nil)
	}

	// Mapbox orders the pair [longitude, latitude]
	coords := &models.Coordinates{
		Latitude:  first.Geometry.Coordinates[1].String(),
		Longitude: first.Geometry.Coordinates[0].String(),
	}

	log.Debug().
		Str("place", placeName).
		Str("match", first.PlaceName).
		Str("lat", coords.Latitude).
		Str("lon", coords.Longitude).
		Int("candidates", len(resp.Features)).
		Msg("Geocoded place")

	return coords, nil
}
