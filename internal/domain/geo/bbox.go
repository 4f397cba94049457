package geo

import "math"

// KmPerDegreeLat approximates the length of one degree of latitude.
const KmPerDegreeLat = 111.32

// BoundingBox is an axis-aligned latitude/longitude rectangle.
type BoundingBox struct {
	LatMin float64 `json:"lat_min"`
	LatMax float64 `json:"lat_max"`
	LonMin float64 `json:"lon_min"`
	LonMax float64 `json:"lon_max"`
}

// NewBoundingBox returns the box centered on center that spans radiusKm in
// every direction. Longitude degrees are widened by 1/cos(lat).
// A non-positive radius yields a zero-area box at the center.
func NewBoundingBox(center Point, radiusKm float64) BoundingBox {
	if radiusKm <= 0 {
		return BoundingBox{LatMin: center.Lat, LatMax: center.Lat, LonMin: center.Lon, LonMax: center.Lon}
	}

	dLat := radiusKm / KmPerDegreeLat
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	// Clamp near the poles so the longitude span stays finite.
	if cosLat < 1e-6 {
		cosLat = 1e-6
	}
	dLon := radiusKm / (KmPerDegreeLat * cosLat)

	return BoundingBox{
		LatMin: center.Lat - dLat,
		LatMax: center.Lat + dLat,
		LonMin: center.Lon - dLon,
		LonMax: center.Lon + dLon,
	}
}

// Contains reports whether p lies inside the box (edges included).
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.LatMin && p.Lat <= b.LatMax && p.Lon >= b.LonMin && p.Lon <= b.LonMax
}

// Union returns the smallest box covering both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		LatMin: math.Min(b.LatMin, other.LatMin),
		LatMax: math.Max(b.LatMax, other.LatMax),
		LonMin: math.Min(b.LonMin, other.LonMin),
		LonMax: math.Max(b.LonMax, other.LonMax),
	}
}

// IsZero reports whether the box has no area.
func (b BoundingBox) IsZero() bool {
	return b.LatMin == b.LatMax || b.LonMin == b.LonMax
}

// Place is a geocoded name: its center and, when the provider supplies one,
// its viewport.
type Place struct {
	Name     string       `json:"name"`
	Center   Point        `json:"center"`
	Viewport *BoundingBox `json:"viewport,omitempty"`
}
