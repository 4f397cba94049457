package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/metrics"
)

// DefaultCountry scopes lookups when none is configured.
const DefaultCountry = "ES"

// Config holds the geocoding provider settings.
type Config struct {
	APIKey     string
	Country    string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Resolver turns zone and city names into coordinates via the Google
// Geocoding API.
type Resolver struct {
	client  *maps.Client
	country string
	logger  *zap.Logger
}

// NewResolver creates a geocoding resolver.
func NewResolver(cfg *Config) (*Resolver, error) {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	opts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(hc),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}

	country := cfg.Country
	if country == "" {
		country = DefaultCountry
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{client: client, country: country, logger: logger}, nil
}

// Resolve looks up "<name>, <city>" (or just the city when name is the city)
// within the configured country. Any failure yields false and a warning;
// it never returns an error.
func (r *Resolver) Resolve(ctx context.Context, name, city string) (geo.Place, bool) {
	address := Address(name, city)
	req := &maps.GeocodingRequest{
		Address:    address,
		Components: map[maps.Component]string{maps.ComponentCountry: r.country},
	}

	start := time.Now()
	results, err := r.client.Geocode(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.ObserveUpstream(metrics.ProviderGeocoding, duration.Seconds(), "api_error")
		r.logger.Warn("Geocoding failed",
			zap.String("address", address),
			zap.String("country", r.country),
			zap.Error(err),
		)
		return geo.Place{}, false
	}
	if len(results) == 0 {
		metrics.ObserveUpstream(metrics.ProviderGeocoding, duration.Seconds(), "zero_results")
		r.logger.Warn("Geocoding returned no results",
			zap.String("address", address),
			zap.String("country", r.country),
		)
		return geo.Place{}, false
	}
	metrics.ObserveUpstream(metrics.ProviderGeocoding, duration.Seconds(), "")

	g := results[0].Geometry
	place := geo.Place{
		Name:   name,
		Center: geo.Point{Lat: g.Location.Lat, Lon: g.Location.Lng},
	}
	if vp, ok := viewport(g.Viewport); ok {
		place.Viewport = &vp
	}
	if !geo.ValidCoordinates(place.Center.Lat, place.Center.Lon) {
		r.logger.Warn("Geocoding returned invalid coordinates",
			zap.String("address", address),
			zap.Float64("lat", place.Center.Lat),
			zap.Float64("lng", place.Center.Lon),
		)
		return geo.Place{}, false
	}
	return place, true
}

// Address builds the free-text lookup address.
func Address(name, city string) string {
	name = strings.TrimSpace(name)
	city = strings.TrimSpace(city)
	if name == "" || strings.EqualFold(name, city) {
		return city
	}
	if city == "" {
		return name
	}
	return name + ", " + city
}

func viewport(b maps.LatLngBounds) (geo.BoundingBox, bool) {
	box := geo.BoundingBox{
		LatMin: b.SouthWest.Lat,
		LatMax: b.NorthEast.Lat,
		LonMin: b.SouthWest.Lng,
		LonMax: b.NorthEast.Lng,
	}
	// Missing viewports decode as zeros; antimeridian-crossing ones are
	// not representable as a single box.
	if box.LatMin >= box.LatMax || box.LonMin >= box.LonMax {
		return geo.BoundingBox{}, false
	}
	return box, true
}
