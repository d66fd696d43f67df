// Package geocode resolves place names to coordinates and back through a
// mapbox-places-compatible endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/dnbonthebike/ridemap/internal/geo"
)

// DefaultBaseURL is the hosted mapbox places endpoint.
const DefaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

const defaultTimeout = 10 * time.Second

// ErrNoResults signals a lookup that matched nothing.
var ErrNoResults = errors.New("no geocoding results")

// Place is the useful subset of a geocoding feature.
type Place struct {
	// Name is the feature's short display name.
	Name string
	// City and Country are filled by Reverse when present among the
	// returned features.
	City    string
	Country string
	Point   geo.Point
}

// Config holds geocoder settings.
type Config struct {
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// AccessToken is appended to every request.
	AccessToken string
	// HTTPClient overrides the underlying client when set.
	HTTPClient *http.Client
}

// Client queries the geocoding endpoint.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a geocoding client.
func New(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      cfg.AccessToken,
		httpClient: httpClient,
	}
}

type feature struct {
	Text      string     `json:"text"`
	PlaceName string     `json:"place_name"`
	PlaceType []string   `json:"place_type"`
	Center    [2]float64 `json:"center"`
}

type response struct {
	Features []feature `json:"features"`
}

// Forward resolves a free-form query to its best match.
func (c *Client) Forward(ctx context.Context, query string) (*Place, error) {
	resp, err := c.lookup(ctx, url.PathEscape(query), url.Values{"limit": {"1"}})
	if err != nil {
		return nil, fmt.Errorf("forward geocode %q: %w", query, err)
	}
	if len(resp.Features) == 0 {
		return nil, ErrNoResults
	}
	f := resp.Features[0]
	return &Place{
		Name:  f.Text,
		Point: geo.Point{Lat: f.Center[1], Lng: f.Center[0]},
	}, nil
}

// Reverse resolves coordinates to a city and country for form auto-fill.
// Either field may come back empty when the endpoint has no feature of that
// type for the location.
func (c *Client) Reverse(ctx context.Context, p geo.Point) (*Place, error) {
	query := fmt.Sprintf("%f,%f", p.Lng, p.Lat)
	resp, err := c.lookup(ctx, query, url.Values{"types": {"place,country,locality"}})
	if err != nil {
		return nil, fmt.Errorf("reverse geocode %s: %w", query, err)
	}
	if len(resp.Features) == 0 {
		return nil, ErrNoResults
	}

	place := &Place{Name: resp.Features[0].Text, Point: p}
	for _, f := range resp.Features {
		switch {
		case slices.Contains(f.PlaceType, "place"), slices.Contains(f.PlaceType, "locality"):
			place.City = f.Text
		case slices.Contains(f.PlaceType, "country"):
			place.Country = f.Text
		}
	}
	return place, nil
}

func (c *Client) lookup(ctx context.Context, query string, params url.Values) (*response, error) {
	params.Set("access_token", c.token)
	endpoint := fmt.Sprintf("%s/%s.json?%s", c.baseURL, query, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
