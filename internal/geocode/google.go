package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Result - координаты, найденные по названию места
type Result struct {
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	FormattedAddress string  `json:"formatted_address"`
	Found            bool    `json:"found"`
	// Cached - результат взят из кеша, а не из API
	Cached bool `json:"-"`
}

// Geocoder превращает название места в координаты
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Result, error)
}

// GoogleClient реализует Geocoder через Google Maps Geocoding API
type GoogleClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewGoogleClient(apiKey string, timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
	}
}

func (c *GoogleClient) Geocode(ctx context.Context, address string) (Result, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Result{}, nil
	}

	params := url.Values{
		"address": {address},
		"key":     {c.apiKey},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Result{}, fmt.Errorf("google geocoding API error: status %d: %s", resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return Result{}, nil
	default:
		return Result{}, fmt.Errorf("google geocoding API status %s: %s", payload.Status, payload.ErrorMessage)
	}
	if len(payload.Results) == 0 {
		return Result{}, nil
	}

	r := payload.Results[0]
	return Result{
		Lat:              r.Geometry.Location.Lat,
		Lon:              r.Geometry.Location.Lng,
		FormattedAddress: r.FormattedAddress,
		Found:            true,
	}, nil
}

// Disabled используется без API ключа: всегда "не найдено"
type Disabled struct{}

func (Disabled) Geocode(context.Context, string) (Result, error) {
	return Result{}, nil
}

// Google Geocoding API response types.

type response struct {
	Status       string   `json:"status"`
	ErrorMessage string   `json:"error_message"`
	Results      []result `json:"results"`
}

type result struct {
	FormattedAddress string `json:"formatted_address"`
	Geometry         struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
