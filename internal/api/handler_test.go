package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkotenko/shopbot/internal/domain"
)

type pingRepo struct {
	err error
}

func (p *pingRepo) InsertShop(ctx context.Context, shop *domain.Shop) error { return nil }
func (p *pingRepo) ShopsByType(ctx context.Context, shopType string) ([]domain.Shop, error) {
	return nil, nil
}
func (p *pingRepo) ZipCoordinate(ctx context.Context, zip string) (*domain.Coordinate, error) {
	return nil, nil
}
func (p *pingRepo) SaveZipCoordinate(ctx context.Context, zip string, coord domain.Coordinate) error {
	return nil
}
func (p *pingRepo) Ping(ctx context.Context) error { return p.err }
func (p *pingRepo) Close() error                   { return nil }

func TestJSON(t *testing.T) {
	w := httptest.NewRecorder()
	data := map[string]string{"foo": "bar"}

	JSON(w, http.StatusOK, data)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if got["foo"] != "bar" {
		t.Errorf("Expected foo=bar, got %v", got["foo"])
	}
}

func TestHealthHealthy(t *testing.T) {
	h := NewHealthHandler(&pingRepo{})
	w := httptest.NewRecorder()

	h.Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

func TestHealthDegradedWhenDatabaseUnreachable(t *testing.T) {
	h := NewHealthHandler(&pingRepo{err: errors.New("connection refused")})
	w := httptest.NewRecorder()

	h.Health(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503, got %d", w.Code)
	}

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("Expected degraded status, got %q", body.Status)
	}
	if body.Checks["database"] != "unreachable" {
		t.Errorf("Expected database unreachable, got %q", body.Checks["database"])
	}
}
