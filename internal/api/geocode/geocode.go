package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"

	"github.com/Chouhan705/DateMapz/app/observability/metrics"
	"github.com/Chouhan705/DateMapz/internal/types"
)

// FallbackAreaDescription is returned when reverse geocoding fails; area
// context is cosmetic prompt material, never worth failing a request over.
const FallbackAreaDescription = "the surrounding area"

// Resolver is the geocoding capability the planner consumes.
type Resolver interface {
	ResolveName(ctx context.Context, query string) (types.GeoPoint, error)
	DescribeArea(ctx context.Context, lat, lng float64) string
}

var _ Resolver = (*Service)(nil)

// Service resolves place names and coordinates against Nominatim.
type Service struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	cache      *cache.Cache
}

func NewService(baseURL string, timeout time.Duration, logger *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
		cache:      cache.New(1*time.Hour, 10*time.Minute),
	}
}

type forwardResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type reverseResult struct {
	Address struct {
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
		Quarter       string `json:"quarter"`
		Road          string `json:"road"`
		City          string `json:"city"`
		Town          string `json:"town"`
	} `json:"address"`
}

// ResolveName forward-geocodes a free-text place name. Zero matches or a
// provider error surface as ErrLocationNotFound: without a base location the
// whole request is meaningless.
func (s *Service) ResolveName(ctx context.Context, query string) (types.GeoPoint, error) {
	ctx, span := otel.Tracer("Geocode").Start(ctx, "ResolveName")
	defer span.End()

	cacheKey := "fwd:" + query
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(types.GeoPoint), nil
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	var results []forwardResult
	if err := s.getJSON(ctx, fmt.Sprintf("%s/search?%s", s.baseURL, q.Encode()), &results); err != nil {
		s.logger.ErrorContext(ctx, "Forward geocoding failed", slog.String("query", query), slog.Any("error", err))
		s.countError(ctx)
		return types.GeoPoint{}, fmt.Errorf("%w: %s", types.ErrLocationNotFound, query)
	}
	if len(results) == 0 {
		return types.GeoPoint{}, fmt.Errorf("%w: %s", types.ErrLocationNotFound, query)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return types.GeoPoint{}, fmt.Errorf("%w: %s", types.ErrLocationNotFound, query)
	}

	point := types.GeoPoint{Lat: lat, Lng: lon}
	s.cache.Set(cacheKey, point, cache.DefaultExpiration)
	return point, nil
}

// DescribeArea reverse-geocodes coordinates into a human-readable phrase,
// "the {area} area of {city}" or just "{area}". Degrades to a generic
// placeholder on provider failure.
func (s *Service) DescribeArea(ctx context.Context, lat, lng float64) string {
	ctx, span := otel.Tracer("Geocode").Start(ctx, "DescribeArea")
	defer span.End()

	// Round the cache key so nearby requests share an entry.
	cacheKey := fmt.Sprintf("rev:%.3f:%.3f", lat, lng)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(string)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("format", "json")

	var result reverseResult
	if err := s.getJSON(ctx, fmt.Sprintf("%s/reverse?%s", s.baseURL, q.Encode()), &result); err != nil {
		s.logger.WarnContext(ctx, "Reverse geocoding failed, using fallback area description",
			slog.Float64("lat", lat), slog.Float64("lng", lng), slog.Any("error", err))
		s.countError(ctx)
		return FallbackAreaDescription
	}

	desc := describeFromAddress(result)
	if desc == "" {
		return FallbackAreaDescription
	}
	s.cache.Set(cacheKey, desc, cache.DefaultExpiration)
	return desc
}

// describeFromAddress composes the area phrase from the most specific
// administrative unit available.
func describeFromAddress(result reverseResult) string {
	addr := result.Address

	area := addr.Suburb
	if area == "" {
		area = addr.Neighbourhood
	}
	if area == "" {
		area = addr.Quarter
	}
	if area == "" {
		area = addr.Road
	}

	city := addr.City
	if city == "" {
		city = addr.Town
	}

	switch {
	case area != "" && city != "":
		return fmt.Sprintf("the %s area of %s", area, city)
	case area != "":
		return area
	case city != "":
		return city
	default:
		return ""
	}
}

func (s *Service) getJSON(ctx context.Context, reqURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build geocoding request: %w", err)
	}
	// Nominatim usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "DateMapz/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("geocoding returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode geocoding response: %w", err)
	}
	return nil
}

func (s *Service) countError(ctx context.Context) {
	if m := metrics.Get(); m != nil {
		m.GeocodeErrorsTotal.Add(ctx, 1)
	}
}
