package geo

import (
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
)

// EarthRadiusKm is the Earth radius used for great-circle distances.
const EarthRadiusKm = 6367.0

// Point is a WGS 84 coordinate in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lng"`
}

// ParsePoint parses a "lat,lng" pair. Exactly two numeric components within
// coordinate bounds are required.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, domain.InvalidInputf("coordinates must be in 'lat,lng' format, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, domain.InvalidInputf("invalid latitude %q", parts[0])
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, domain.InvalidInputf("invalid longitude %q", parts[1])
	}
	if !ValidCoordinates(lat, lon) {
		return Point{}, domain.InvalidInputf("coordinates out of range: %f,%f", lat, lon)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

// String renders the point as "lat,lng".
func (p Point) String() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lon, 'f', -1, 64)
}

// ValidCoordinates checks that latitude is in [-90,90] and longitude in [-180,180].
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// HaversineKm returns the great-circle distance in kilometers between two points.
func HaversineKm(a, b Point) float64 {
	lat1r := a.Lat * math.Pi / 180
	lat2r := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h marginally above 1 for antipodal points.
	h = math.Min(1, h)
	c := 2 * math.Asin(math.Sqrt(h))

	return EarthRadiusKm * c
}
