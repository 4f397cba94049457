package filter

import "github.com/kailas-cloud/bistrohunter/internal/domain/geo"

func geoBox() geo.BoundingBox {
	return geo.NewBoundingBox(geo.Point{Lat: 40.4168, Lon: -3.7038}, 1)
}
