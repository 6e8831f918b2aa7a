package models

import "fmt"

// NoMatchError is returned when the geocoder has no candidate for a query.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no location found for %q", e.Query)
}

// MalformedResponseError is an otherwise well-formed response missing a field
// we depend on.
type MalformedResponseError struct {
	Provider string
	Field    string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s response malformed: %s: %v", e.Provider, e.Field, e.Err)
	}
	return fmt.Sprintf("%s response malformed: missing %s", e.Provider, e.Field)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// NewMalformedResponseError creates a new malformed response error
func NewMalformedResponseError(provider, field string, err error) *MalformedResponseError {
	return &MalformedResponseError{
		Provider: provider,
		Field:    field,
		Err:      err,
	}
}
