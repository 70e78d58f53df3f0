package geocode

import (
	"context"
	"errors"
	"testing"

	"github.com/dkotenko/shopbot/internal/domain"
)

// fakeZipRepo implements the store.Repository methods the cache uses.
type fakeZipRepo struct {
	zips     map[string]domain.Coordinate
	readErr  error
	writeErr error
	saves    int
}

func newFakeZipRepo() *fakeZipRepo {
	return &fakeZipRepo{zips: make(map[string]domain.Coordinate)}
}

func (f *fakeZipRepo) InsertShop(ctx context.Context, shop *domain.Shop) error { return nil }
func (f *fakeZipRepo) ShopsByType(ctx context.Context, shopType string) ([]domain.Shop, error) {
	return nil, nil
}
func (f *fakeZipRepo) Ping(ctx context.Context) error { return nil }
func (f *fakeZipRepo) Close() error                   { return nil }

func (f *fakeZipRepo) ZipCoordinate(ctx context.Context, zip string) (*domain.Coordinate, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if coord, ok := f.zips[zip]; ok {
		return &coord, nil
	}
	return nil, nil
}

func (f *fakeZipRepo) SaveZipCoordinate(ctx context.Context, zip string, coord domain.Coordinate) error {
	f.saves++
	if f.writeErr != nil {
		return f.writeErr
	}
	if _, ok := f.zips[zip]; !ok {
		f.zips[zip] = coord
	}
	return nil
}

// countingResolver records how many external lookups were made.
type countingResolver struct {
	result Result
	calls  int
}

func (c *countingResolver) Resolve(ctx context.Context, postalCode string) Result {
	c.calls++
	return c.result
}

func TestCachedResolverLooksUpOnceThenHitsCache(t *testing.T) {
	repo := newFakeZipRepo()
	external := &countingResolver{result: Result{
		Kind:       Found,
		Coordinate: domain.Coordinate{Lat: 37.79, Lon: -122.40},
	}}
	resolver := NewCachedResolver(repo, external)
	ctx := context.Background()

	first := resolver.Resolve(ctx, "94105")
	if first.Kind != Found {
		t.Fatalf("Expected Found, got kind %d", first.Kind)
	}
	if external.calls != 1 {
		t.Errorf("Expected 1 external lookup, got %d", external.calls)
	}
	if repo.saves != 1 {
		t.Errorf("Expected 1 cache write, got %d", repo.saves)
	}

	for i := 0; i < 3; i++ {
		again := resolver.Resolve(ctx, "94105")
		if again.Kind != Found || again.Coordinate != first.Coordinate {
			t.Fatalf("Expected cached coordinate %+v, got %+v", first.Coordinate, again.Coordinate)
		}
	}
	if external.calls != 1 {
		t.Errorf("Expected no further external lookups, got %d", external.calls)
	}
	if repo.saves != 1 {
		t.Errorf("Expected no further cache writes, got %d", repo.saves)
	}
}

func TestCachedResolverDoesNotCacheFailures(t *testing.T) {
	repo := newFakeZipRepo()
	external := &countingResolver{result: Result{Kind: NotFound}}
	resolver := NewCachedResolver(repo, external)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if result := resolver.Resolve(ctx, "00000"); result.Kind != NotFound {
			t.Fatalf("Expected NotFound, got kind %d", result.Kind)
		}
	}
	if external.calls != 2 {
		t.Errorf("Expected 2 external lookups for uncacheable zip, got %d", external.calls)
	}
	if repo.saves != 0 {
		t.Errorf("Expected no cache writes, got %d", repo.saves)
	}
}

func TestCachedResolverReadErrorFallsBackToLookup(t *testing.T) {
	repo := newFakeZipRepo()
	repo.readErr = errors.New("db locked")
	external := &countingResolver{result: Result{
		Kind:       Found,
		Coordinate: domain.Coordinate{Lat: 40.71, Lon: -74.00},
	}}
	resolver := NewCachedResolver(repo, external)

	result := resolver.Resolve(context.Background(), "10001")
	if result.Kind != Found {
		t.Fatalf("Expected Found despite cache read failure, got kind %d", result.Kind)
	}
	if external.calls != 1 {
		t.Errorf("Expected external lookup on cache read failure, got %d calls", external.calls)
	}
}

func TestCachedResolverWriteErrorStillReturnsFound(t *testing.T) {
	repo := newFakeZipRepo()
	repo.writeErr = errors.New("disk full")
	external := &countingResolver{result: Result{
		Kind:       Found,
		Coordinate: domain.Coordinate{Lat: 40.71, Lon: -74.00},
	}}

	result := NewCachedResolver(repo, external).Resolve(context.Background(), "10001")
	if result.Kind != Found {
		t.Errorf("Expected Found despite cache write failure, got kind %d", result.Kind)
	}
}
