package criteria

import (
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/mode"
)

// Criteria limits.
const (
	MaxZones      = 10
	MaxTokens     = 16
	MaxTokenLen   = 128
	MaxRadiusKm   = 50.0
	maxCityLength = 256
)

// Params is the raw caller intent before validation.
type Params struct {
	City            string
	Zones           []string
	Coordinates     *geo.Point
	PriceRange      []string
	Cuisine         []string
	Diet            []string
	Dish            []string
	OpenDay         string
	RadiusKm        float64
	SortByProximity bool
}

// Criteria is a validated restaurant search request.
type Criteria struct {
	city            string
	zones           []string
	coordinates     *geo.Point
	priceRange      []string
	cuisine         []string
	diet            []string
	dish            []string
	openDay         string
	radiusKm        float64
	sortByProximity bool
}

// New validates and normalizes search criteria.
// Token lists accept comma-separated entries; blanks are dropped and order is kept.
func New(p Params) (Criteria, error) {
	city := strings.TrimSpace(p.City)
	if city == "" {
		return Criteria{}, domain.InvalidInputf("city is required")
	}
	if len(city) > maxCityLength {
		return Criteria{}, domain.InvalidInputf("city too long (max %d chars)", maxCityLength)
	}

	zones := SplitTokens(p.Zones...)
	if len(zones) > MaxZones {
		return Criteria{}, domain.InvalidInputf("too many zones (max %d)", MaxZones)
	}

	if p.Coordinates != nil && !geo.ValidCoordinates(p.Coordinates.Lat, p.Coordinates.Lon) {
		return Criteria{}, domain.InvalidInputf("coordinates out of range")
	}
	if p.RadiusKm < 0 || p.RadiusKm > MaxRadiusKm {
		return Criteria{}, domain.InvalidInputf("radius_km must be between 0 and %g", MaxRadiusKm)
	}

	c := Criteria{
		city:            city,
		zones:           zones,
		openDay:         strings.TrimSpace(p.OpenDay),
		radiusKm:        p.RadiusKm,
		sortByProximity: p.SortByProximity,
	}
	if p.Coordinates != nil {
		pt := *p.Coordinates
		c.coordinates = &pt
	}

	lists := []struct {
		name string
		in   []string
		out  *[]string
	}{
		{"price_range", p.PriceRange, &c.priceRange},
		{"cuisine", p.Cuisine, &c.cuisine},
		{"diet", p.Diet, &c.diet},
		{"dish", p.Dish, &c.dish},
	}
	for _, l := range lists {
		tokens := SplitTokens(l.in...)
		if len(tokens) > MaxTokens {
			return Criteria{}, domain.InvalidInputf("too many %s values (max %d)", l.name, MaxTokens)
		}
		for _, t := range tokens {
			if len(t) > MaxTokenLen {
				return Criteria{}, domain.InvalidInputf("%s value too long (max %d chars)", l.name, MaxTokenLen)
			}
		}
		*l.out = tokens
	}

	return c, nil
}

// SplitTokens splits every value on commas, trims whitespace and drops
// empty entries. Order is preserved.
func SplitTokens(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Mode returns the anchor strategy. Zones take precedence over coordinates.
func (c Criteria) Mode() mode.Mode {
	switch {
	case len(c.zones) > 0:
		return mode.Zones
	case c.coordinates != nil:
		return mode.Coordinates
	default:
		return mode.City
	}
}

// City returns the city name.
func (c Criteria) City() string { return c.city }

// Zones returns the zone names in caller order.
func (c Criteria) Zones() []string { return c.zones }

// Coordinates returns the explicit anchor, if any.
func (c Criteria) Coordinates() *geo.Point { return c.coordinates }

// PriceRange returns the price tier tokens.
func (c Criteria) PriceRange() []string { return c.priceRange }

// Cuisine returns the cuisine tokens.
func (c Criteria) Cuisine() []string { return c.cuisine }

// Diet returns the dietary tokens.
func (c Criteria) Diet() []string { return c.diet }

// Dish returns the dish tokens.
func (c Criteria) Dish() []string { return c.dish }

// OpenDay returns the weekday token, empty when not constrained.
func (c Criteria) OpenDay() string { return c.openDay }

// RadiusKm returns the initial radius override (0 = configured default).
func (c Criteria) RadiusKm() float64 { return c.radiusKm }

// SortByProximity reports whether results are ordered by distance.
func (c Criteria) SortByProximity() bool { return c.sortByProximity }
