// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"github.com/dkotenko/shopbot/internal/domain"
)

// Repository defines the interface for persisting shops and geocode results.
type Repository interface {
	// InsertShop appends a new shop record. A unique ID is generated when
	// the record has none. Lat/lon must already be resolved.
	InsertShop(ctx context.Context, shop *domain.Shop) error

	// ShopsByType returns all shops whose type exactly matches shopType,
	// in insertion order. Distance ranking is the caller's concern.
	ShopsByType(ctx context.Context, shopType string) ([]domain.Shop, error)

	// ZipCoordinate retrieves the cached coordinate for a ZIP code.
	// Returns (nil, nil) when the ZIP has not been cached.
	ZipCoordinate(ctx context.Context, zip string) (*domain.Coordinate, error)

	// SaveZipCoordinate caches a coordinate for a ZIP code. The first write
	// for a given ZIP wins; later writes are ignored.
	SaveZipCoordinate(ctx context.Context, zip string, coord domain.Coordinate) error

	// Ping verifies database connectivity and returns an error if the database is unreachable.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
