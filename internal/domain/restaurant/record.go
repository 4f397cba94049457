package restaurant

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
)

// Record is a restaurant row as returned by the record store.
// Records are never mutated after retrieval.
type Record struct {
	ID          string     `json:"id"`
	CID         string     `json:"cid,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	PriceRange  any        `json:"price_range,omitempty"`
	Score       any        `json:"score,omitempty"`
	Location    *geo.Point `json:"location,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
}

// Key identifies the record for deduplication: cid when present,
// otherwise the store row id.
func (r Record) Key() string {
	if r.CID != "" {
		return r.CID
	}
	return r.ID
}

// NumericScore returns the relevance score when it is a finite number.
func (r Record) NumericScore() (float64, bool) {
	var f float64
	switch v := r.Score.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// DistanceKm returns the distance from p, or false when the record has no location.
func (r Record) DistanceKm(p geo.Point) (float64, bool) {
	if r.Location == nil {
		return 0, false
	}
	return geo.HaversineKm(p, *r.Location), true
}
