// Package transit talks to the MBTA v3 API: nearest stop search and live
// arrival predictions.
package transit

import (
	"net/url"
)

const providerName = "mbta"

// stopResource is a JSON:API stop object from /stops.
type stopResource struct {
	ID         string `json:"id"`
	Attributes struct {
		Name               string `json:"name"`
		WheelchairBoarding *int   `json:"wheelchair_boarding"`
	} `json:"attributes"`
}

type stopsResponse struct {
	Data []stopResource `json:"data"`
}

// predictionResource is a JSON:API prediction object from /predictions.
type predictionResource struct {
	ID         string `json:"id"`
	Attributes struct {
		ArrivalTime   *string `json:"arrival_time"`
		DepartureTime *string `json:"departure_time"`
	} `json:"attributes"`
}

type predictionsResponse struct {
	Data []predictionResource `json:"data"`
}

// buildPath encodes params sorted by key; the JSON:API brackets are escaped,
// which the MBTA accepts.
func buildPath(resource string, params url.Values) string {
	return resource + "?" + params.Encode()
}
