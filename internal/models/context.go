package models

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Weather is the current condition for a city, temperatures in Celsius.
type Weather struct {
	City         string  `json:"city"`
	TemperatureC float64 `json:"temperatureC"`
	Description  string  `json:"description"`
}

// String renders the weather the way every page shows it, e.g. "12.3°C, Clear sky".
func (w Weather) String() string {
	return fmt.Sprintf("%g°C, %s", w.TemperatureC, capitalize(w.Description))
}

type Holiday struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Country string `json:"country"`
	Type    string `json:"type"`
}

// PageContext holds the strings shown alongside every response.
type PageContext struct {
	Date    string `json:"date"`
	Weather string `json:"weather"`
	Holiday string `json:"holiday"`
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
