// Package geo implements the location-search collaborator over the
// OpenStreetMap Nominatim API. It is used only to populate the create/edit
// form; search results never enter the destination store directly.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Place is a single location-search result.
type Place struct {
	Name        string  `json:"name"`
	Country     string  `json:"country"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	DisplayName string  `json:"display_name"`
}

// Client queries Nominatim for place matches.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

// NewClient constructs a Client. baseURL defaults to the public Nominatim
// endpoint when empty. Nominatim's usage policy requires an identifying
// User-Agent, so pass one naming your deployment.
func NewClient(baseURL, userAgent string) *Client {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	if userAgent == "" {
		userAgent = "travellog/1.0"
	}
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// nominatimResult mirrors the fields we consume from the search response.
// Nominatim returns lat/lon as strings.
type nominatimResult struct {
	Name        string `json:"name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		Country string `json:"country"`
	} `json:"address"`
}

// Search returns up to five place matches for the free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", query)
	q.Set("limit", "5")
	q.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geo.Client.Search: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geo.Client.Search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo.Client.Search: unexpected status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("geo.Client.Search: decode: %w", err)
	}

	places := make([]Place, 0, len(results))
	for _, r := range results {
		lat, err := strconv.ParseFloat(r.Lat, 64)
		if err != nil {
			continue
		}
		lng, err := strconv.ParseFloat(r.Lon, 64)
		if err != nil {
			continue
		}
		places = append(places, Place{
			Name:        r.Name,
			Country:     r.Address.Country,
			Lat:         lat,
			Lng:         lng,
			DisplayName: r.DisplayName,
		})
	}
	return places, nil
}
