// Package maps wraps the Google Maps Geocoding API reverse lookup used to
// turn a coordinate pair into address components.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"coordinate-converter/internal/models"
)

const geocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrNoResults is returned when the service answers ZERO_RESULTS for a
// coordinate. It is a per-row condition: the batch keeps going.
var ErrNoResults = errors.New("maps: no results for coordinate")

// APIError is a transport, credential or quota failure from the geocoding
// service. Unlike ErrNoResults it will recur for every subsequent lookup,
// so callers must treat it as fatal to the whole batch.
type APIError struct {
	Status  string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("maps: api error %s: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("maps: api error %s", e.Status)
}

// geocodeResponse is the JSON response from the Google Geocoding API.
type geocodeResponse struct {
	Results []struct {
		AddressComponents []models.AddressComponent `json:"address_components"`
		FormattedAddress  string                    `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// Client performs reverse geocoding lookups against the Google Maps
// Geocoding API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the geocoding endpoint, used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithRateLimit sets the requests-per-second limit for lookups.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a reverse geocoding client with the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    geocodeURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(50, 1), // Google geocoding default: 50 req/s
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ReverseGeocode resolves a coordinate pair to the address components of the
// first candidate, constrained to street-address precision with rooftop
// accuracy. It returns ErrNoResults when the service has no candidate and an
// *APIError on transport, credential or quota failures.
func (c *Client) ReverseGeocode(ctx context.Context, latitude, longitude float64) ([]models.AddressComponent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("maps: rate limit: %w", err)
	}

	params := url.Values{
		"latlng":        {fmt.Sprintf("%f,%f", latitude, longitude)},
		"result_type":   {"street_address"},
		"location_type": {"ROOFTOP"},
		"key":           {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("maps: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Status: "TRANSPORT_ERROR", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: "HTTP_ERROR", Message: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: "TRANSPORT_ERROR", Message: err.Error()}
	}

	var geocodeResp geocodeResponse
	if err := json.Unmarshal(body, &geocodeResp); err != nil {
		return nil, &APIError{Status: "INVALID_RESPONSE", Message: err.Error()}
	}

	switch geocodeResp.Status {
	case "OK":
		if len(geocodeResp.Results) == 0 {
			return nil, ErrNoResults
		}
		return geocodeResp.Results[0].AddressComponents, nil
	case "ZERO_RESULTS":
		return nil, ErrNoResults
	default:
		// REQUEST_DENIED, OVER_QUERY_LIMIT, OVER_DAILY_LIMIT,
		// INVALID_REQUEST, UNKNOWN_ERROR
		return nil, &APIError{Status: geocodeResp.Status, Message: geocodeResp.ErrorMessage}
	}
}

// VerifyKey probes the service with a fixed coordinate to confirm the API
// key is usable before a batch starts. A missing result is fine; only an
// *APIError means the key check failed.
func (c *Client) VerifyKey(ctx context.Context) error {
	// Porto Alegre, RS
	_, err := c.ReverseGeocode(ctx, 30.1084987, -51.3172284)
	if err != nil && !errors.Is(err, ErrNoResults) {
		return err
	}
	return nil
}
