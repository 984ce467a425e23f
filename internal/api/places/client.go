package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Chouhan705/DateMapz/internal/types"
)

// RawPlace is one venue as the search provider reports it, before
// classification.
type RawPlace struct {
	Name             string   `json:"name"`
	Vicinity         string   `json:"vicinity"`
	FormattedAddress string   `json:"formatted_address"`
	Location         types.GeoPoint
	Types            []string `json:"types"`
}

// Address returns the provider's best address field. Nearby search fills
// vicinity; text search fills formatted_address.
func (p RawPlace) Address() string {
	if p.Vicinity != "" {
		return p.Vicinity
	}
	return p.FormattedAddress
}

// NearbyAPI is the outbound search capability the adapter consumes.
type NearbyAPI interface {
	NearbySearch(ctx context.Context, loc types.GeoPoint, radiusMeters int, keyword string) ([]RawPlace, error)
}

// Client calls the Places nearby-search HTTP API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

var _ NearbyAPI = (*Client)(nil)

func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

type nearbySearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name             string `json:"name"`
		Vicinity         string `json:"vicinity"`
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types []string `json:"types"`
	} `json:"results"`
}

// NearbySearch performs one nearby-search call. A ZERO_RESULTS status is a
// valid empty response, any other non-OK status is an error.
func (c *Client) NearbySearch(ctx context.Context, loc types.GeoPoint, radiusMeters int, keyword string) ([]RawPlace, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", loc.Lat, loc.Lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("keyword", keyword)
	q.Set("key", c.apiKey)

	reqURL := fmt.Sprintf("%s/nearbysearch/json?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build nearby search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nearby search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nearby search returned HTTP %d", resp.StatusCode)
	}

	var body nearbySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode nearby search response: %w", err)
	}

	switch body.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("nearby search status %s: %s", body.Status, body.ErrorMessage)
	}

	places := make([]RawPlace, 0, len(body.Results))
	for _, res := range body.Results {
		places = append(places, RawPlace{
			Name:             res.Name,
			Vicinity:         res.Vicinity,
			FormattedAddress: res.FormattedAddress,
			Location:         types.GeoPoint{Lat: res.Geometry.Location.Lat, Lng: res.Geometry.Location.Lng},
			Types:            res.Types,
		})
	}
	return places, nil
}
