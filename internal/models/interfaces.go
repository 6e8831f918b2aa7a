package models

import "context"

type Geocoder interface {
	Geocode(ctx context.Context, placeName string) (*Coordinates, error)
}

// StopLocator returns a nil stop and nil error when nothing is nearby.
type StopLocator interface {
	NearestStop(ctx context.Context, coords Coordinates) (*Stop, error)
}

type ArrivalsFetcher interface {
	UpcomingArrivals(ctx context.Context, stopID string) ([]int, error)
}

type StopFinder interface {
	FindNearestStop(ctx context.Context, placeName string) (*LookupResult, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, city string) (*Weather, error)
}

// HolidayProvider returns a nil holiday and nil error when today is not a holiday.
type HolidayProvider interface {
	Today(ctx context.Context, country string) (*Holiday, error)
}
