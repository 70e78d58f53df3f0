package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dkotenko/shopbot/internal/domain"
)

const statusOK = "OK"

// Client calls the external geocoding HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a geocoding client for the given service base URL.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: http.DefaultClient,
	}
}

// geocodeResponse mirrors the service's wire format. Only the first result
// is used.
type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"results"`
}

// Resolve looks up a postal code with the external service. A non-OK status
// or an empty candidate list yields NotFound; any transport or decoding
// problem yields TransportError.
func (c *Client) Resolve(ctx context.Context, postalCode string) Result {
	reqURL := fmt.Sprintf("%s/geocode?postal_code=%s&api_key=%s",
		c.baseURL, url.QueryEscape(postalCode), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{Kind: TransportError, Err: fmt.Errorf("build geocode request: %w", err)}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{Kind: TransportError, Err: fmt.Errorf("call geocoding service: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{Kind: TransportError, Err: fmt.Errorf("geocoding service returned %d", resp.StatusCode)}
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{Kind: TransportError, Err: fmt.Errorf("decode geocode response: %w", err)}
	}

	if decoded.Status != statusOK || len(decoded.Results) == 0 {
		return Result{Kind: NotFound}
	}

	first := decoded.Results[0]
	return Result{
		Kind:       Found,
		Coordinate: domain.Coordinate{Lat: first.Lat, Lon: first.Lon},
	}
}
