package geocode

import (
	"context"
	"log/slog"

	"github.com/dkotenko/shopbot/internal/store"
)

// CachedResolver layers the persistent zip cache in front of another
// resolver. A zip that has been cached once is never looked up externally
// again.
type CachedResolver struct {
	repo store.Repository
	next Resolver
}

// NewCachedResolver creates a resolver backed by the zips table.
func NewCachedResolver(repo store.Repository, next Resolver) *CachedResolver {
	return &CachedResolver{repo: repo, next: next}
}

// Resolve returns the cached coordinate for postalCode when present,
// otherwise delegates to the external resolver and caches a successful
// result. Cache read failures fall through to the external lookup; cache
// write failures are logged and do not fail the resolution.
func (r *CachedResolver) Resolve(ctx context.Context, postalCode string) Result {
	coord, err := r.repo.ZipCoordinate(ctx, postalCode)
	if err != nil {
		slog.Warn("Zip cache read failed, falling back to lookup", "zip", postalCode, "error", err)
	} else if coord != nil {
		return Result{Kind: Found, Coordinate: *coord}
	}

	result := r.next.Resolve(ctx, postalCode)
	if result.Kind != Found {
		return result
	}

	if err := r.repo.SaveZipCoordinate(ctx, postalCode, result.Coordinate); err != nil {
		slog.Warn("Zip cache write failed", "zip", postalCode, "error", err)
	}
	return result
}
