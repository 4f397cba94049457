package chi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
	"github.com/kailas-cloud/bistrohunter/internal/domain/weekday"
)

// searchRequestFromQuery decodes GET query parameters. Repeated parameters
// accumulate; comma separation is handled later by criteria.New.
func searchRequestFromQuery(q url.Values) (SearchRequest, error) {
	req := SearchRequest{
		City:        q.Get("city"),
		Zone:        q["zone"],
		Zona:        q["zona"],
		Coordinates: q.Get("coordinates"),
		Coordenadas: q.Get("coordenadas"),
		PriceRange:  q["price_range"],
		Cuisine:     q["cuisine"],
		Cocina:      q["cocina"],
		Diet:        q["diet"],
		Dish:        q["dish"],
		Date:        q.Get("date"),
		Day:         q.Get("day"),
	}

	if v := strings.TrimSpace(q.Get("radius_km")); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return SearchRequest{}, domain.InvalidInputf("radius_km must be a number, got %q", v)
		}
		req.RadiusKm = &r
	}
	if v := strings.TrimSpace(q.Get("sort_by_proximity")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return SearchRequest{}, domain.InvalidInputf("sort_by_proximity must be a boolean, got %q", v)
		}
		req.SortByProximity = &b
	}
	return req, nil
}

// criteriaParams merges aliases and parses coordinates and the visit day.
// An explicit day wins over a date.
func (req SearchRequest) criteriaParams() (criteria.Params, error) {
	p := criteria.Params{
		City:            req.City,
		Zones:           append(append([]string(nil), req.Zone...), req.Zona...),
		PriceRange:      req.PriceRange,
		Cuisine:         append(append([]string(nil), req.Cuisine...), req.Cocina...),
		Diet:            req.Diet,
		Dish:            req.Dish,
		SortByProximity: true,
	}
	if req.SortByProximity != nil {
		p.SortByProximity = *req.SortByProximity
	}
	if req.RadiusKm != nil {
		p.RadiusKm = *req.RadiusKm
	}

	coords := strings.TrimSpace(req.Coordinates)
	if coords == "" {
		coords = strings.TrimSpace(req.Coordenadas)
	}
	if coords != "" {
		pt, err := geo.ParsePoint(coords)
		if err != nil {
			return criteria.Params{}, err
		}
		p.Coordinates = &pt
	}

	switch {
	case strings.TrimSpace(req.Day) != "":
		day, err := weekday.Normalize(req.Day)
		if err != nil {
			return criteria.Params{}, err
		}
		p.OpenDay = day
	case strings.TrimSpace(req.Date) != "":
		day, err := weekday.ParseDate(req.Date)
		if err != nil {
			return criteria.Params{}, err
		}
		p.OpenDay = day
	}
	return p, nil
}

// variablesFromCriteria echoes validated criteria back to the caller.
func variablesFromCriteria(c criteria.Criteria) Variables {
	v := Variables{
		City:            c.City(),
		Zones:           c.Zones(),
		PriceRange:      c.PriceRange(),
		CuisineType:     c.Cuisine(),
		Diet:            c.Diet(),
		Dish:            c.Dish(),
		SortByProximity: c.SortByProximity(),
	}
	if pt := c.Coordinates(); pt != nil {
		s := pt.String()
		v.Coordinates = &s
	}
	if d := c.OpenDay(); d != "" {
		v.Day = &d
	}
	if r := c.RadiusKm(); r > 0 {
		v.RadiusKm = &r
	}
	return v
}
