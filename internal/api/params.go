package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/bbernstein/nearstop/internal/models"
)

// Parameter parsing helpers

// ParseCoordinates reads lat and lon from query parameters. The values are
// validated as decimal degrees but passed on as the caller wrote them.
func ParseCoordinates(params map[string]string) (models.Coordinates, error) {
	latStr := strings.TrimSpace(params["lat"])
	lonStr := strings.TrimSpace(params["lon"])

	if latStr == "" || lonStr == "" {
		return models.Coordinates{}, InvalidRequestError{Message: "lat and lon are required"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Coordinates{}, InvalidCoordinatesError{}
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Coordinates{}, InvalidCoordinatesError{}
	}

	if math.IsNaN(lat) || math.IsNaN(lon) || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return models.Coordinates{}, InvalidCoordinatesError{}
	}

	return models.Coordinates{Latitude: latStr, Longitude: lonStr}, nil
}

type InvalidCoordinatesError struct{}

func (e InvalidCoordinatesError) Error() string {
	return "Invalid coordinates"
}

// ParsePlaceName reads the place_name parameter.
func ParsePlaceName(params map[string]string) (string, error) {
	placeName := strings.TrimSpace(params["place_name"])
	if placeName == "" {
		return "", InvalidRequestError{Message: "place_name is required"}
	}
	return placeName, nil
}
