package search

import "fmt"

// Config holds the search tunables.
type Config struct {
	PerZoneTarget             int
	CityTarget                int
	MaxRadiusKm               float64
	RadiusStepKm              float64
	ZoneInitialRadiusKm       float64
	CoordinateInitialRadiusKm float64
	CityInitialRadiusKm       float64
	PageSize                  int
	// UseViewport widens each query box to the geocoder viewport.
	UseViewport bool
}

// DefaultConfig returns the production tunables.
func DefaultConfig() Config {
	return Config{
		PerZoneTarget:             10,
		CityTarget:                10,
		MaxRadiusKm:               8,
		RadiusStepKm:              1,
		ZoneInitialRadiusKm:       1,
		CoordinateInitialRadiusKm: 2,
		CityInitialRadiusKm:       1,
		PageSize:                  10,
	}
}

// Validate checks the tunables are usable.
func (c Config) Validate() error {
	if c.PerZoneTarget <= 0 || c.CityTarget <= 0 {
		return fmt.Errorf("targets must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive")
	}
	if c.MaxRadiusKm <= 0 {
		return fmt.Errorf("max_radius_km must be positive")
	}
	for name, v := range map[string]float64{
		"zone_initial_radius_km":       c.ZoneInitialRadiusKm,
		"coordinate_initial_radius_km": c.CoordinateInitialRadiusKm,
		"city_initial_radius_km":       c.CityInitialRadiusKm,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}
