// Package geocode talks to a Nominatim-compatible reverse geocoding
// endpoint. Lookups are best effort: callers log and swallow failures,
// leaving the address fields of a location empty.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Result is the subset of the reverse geocoding response the address book
// stores. Any field may be empty.
type Result struct {
	Address string
	City    string
	Country string
}

// Client queries a reverse geocoding provider.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for a Nominatim-compatible base URL,
// e.g. https://nominatim.openstreetmap.org.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		Country string `json:"country"`
	} `json:"address"`
}

// Reverse resolves a coordinate pair to an address. The city falls back to
// town and then village, matching what Nominatim returns for smaller places.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (Result, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return Result{}, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("reverse geocode: unexpected status %d", resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Result{}, err
	}
	city := body.Address.City
	if city == "" {
		city = body.Address.Town
	}
	if city == "" {
		city = body.Address.Village
	}
	return Result{
		Address: body.DisplayName,
		City:    city,
		Country: body.Address.Country,
	}, nil
}
