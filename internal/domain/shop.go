// Package domain contains core domain types for the shop finder bot.
package domain

import (
	"fmt"
	"strings"
)

// Shop is a registered service shop. Records are immutable once stored.
type Shop struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Street string  `json:"street"`
	City   string  `json:"city"`
	State  string  `json:"state"`
	Zip    string  `json:"zip"`
	Type   string  `json:"type"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// Address returns the street and city formatted for display.
func (s *Shop) Address() string {
	return s.Street + ", " + s.City
}

// Coordinate is a latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchHit is a shop paired with its distance from the query point.
type SearchHit struct {
	Shop          Shop
	DistanceMiles float64
}

// NormalizeShopType canonicalizes a user-entered shop type for storage
// and lookup. Matching is exact on the normalized string.
func NormalizeShopType(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// FormatMiles renders a distance rounded to one decimal for display.
// Filtering and sorting always use the unrounded value.
func FormatMiles(miles float64) string {
	return fmt.Sprintf("%.1f mi", miles)
}
