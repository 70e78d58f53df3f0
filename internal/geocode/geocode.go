// Package geocode resolves postal codes to coordinates through an external
// geocoding service, with a persistent cache in front of it.
package geocode

import (
	"context"

	"github.com/dkotenko/shopbot/internal/domain"
)

// Kind classifies the outcome of a resolution attempt.
type Kind int

const (
	// Found means the postal code resolved to a coordinate.
	Found Kind = iota + 1
	// NotFound means the service answered but had no location for the code.
	NotFound
	// TransportError means the call itself failed (network, HTTP, decode).
	// Callers treat it like NotFound; the distinction exists for logging.
	TransportError
)

// Result is the outcome of resolving a postal code. Coordinate is only
// meaningful when Kind is Found; Err is only set for TransportError.
type Result struct {
	Kind       Kind
	Coordinate domain.Coordinate
	Err        error
}

// Resolver resolves a postal code to a coordinate. Failures are reported
// through the result kind, never as a returned error.
type Resolver interface {
	Resolve(ctx context.Context, postalCode string) Result
}
