package models

// WheelchairBoarding is the provider's accessibility code for a stop.
type WheelchairBoarding int

const (
	WheelchairBoardingUnknown      WheelchairBoarding = 0
	WheelchairBoardingAccessible   WheelchairBoarding = 1
	WheelchairBoardingInaccessible WheelchairBoarding = 2
)

// Accessible collapses the tri-state code: only an explicit 1 counts, so
// "unknown" reads the same as "not accessible".
func (w WheelchairBoarding) Accessible() bool {
	return w == WheelchairBoardingAccessible
}

// Coordinates are kept as the decimal text the geocoder returned so they pass
// into the stop search unchanged.
type Coordinates struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type Stop struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	WheelchairBoarding WheelchairBoarding `json:"wheelchairBoarding"`
}

// WheelchairAccessible reports the collapsed accessibility flag.
func (s Stop) WheelchairAccessible() bool {
	return s.WheelchairBoarding.Accessible()
}
