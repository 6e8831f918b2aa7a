package models

// NoStationFoundName is reported as the station name when the stop search is empty.
const NoStationFoundName = "No nearby station found"

// LookupResult is the outcome of resolving a place name to its nearest stop.
// Arrivals are minutes from now in provider order.
type LookupResult struct {
	StationName          string `json:"stationName"`
	WheelchairAccessible bool   `json:"wheelchairAccessible"`
	Arrivals             []int  `json:"arrivals"`
}

// NewLookupResult builds a result for a found stop.
func NewLookupResult(stop Stop, arrivals []int) *LookupResult {
	if arrivals == nil {
		arrivals = []int{}
	}
	return &LookupResult{
		StationName:          stop.Name,
		WheelchairAccessible: stop.WheelchairAccessible(),
		Arrivals:             arrivals,
	}
}

// NoStationResult is returned when no stop is near the place.
func NoStationResult() *LookupResult {
	return &LookupResult{
		StationName:          NoStationFoundName,
		WheelchairAccessible: false,
		Arrivals:             []int{},
	}
}
