package result

import (
	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/mode"
)

// Item is a ranked record with its distance to the nearest search anchor.
type Item struct {
	record     restaurant.Record
	distanceKm float64
	hasDist    bool
}

// NewItem creates a ranked item. hasDist is false when the record has no
// coordinate or the search had no anchor.
func NewItem(r restaurant.Record, distanceKm float64, hasDist bool) Item {
	return Item{record: r, distanceKm: distanceKm, hasDist: hasDist}
}

// Record returns the underlying store record.
func (i *Item) Record() restaurant.Record { return i.record }

// DistanceKm returns the distance to the nearest anchor.
func (i *Item) DistanceKm() (float64, bool) { return i.distanceKm, i.hasDist }

// Anchor is one resolved search center.
type Anchor struct {
	Name     string    `json:"name,omitempty"`
	Point    geo.Point `json:"point"`
	RadiusKm float64   `json:"radius_km"`
	Found    int       `json:"found"`
}

// Outcome is the ordered, deduplicated result of one search.
type Outcome struct {
	Items   []Item
	Formula string
	Anchors []Anchor
	Mode    mode.Mode
}

// Anchor returns the first resolved anchor, nil when none resolved.
func (o *Outcome) Anchor() *geo.Point {
	if len(o.Anchors) == 0 {
		return nil
	}
	p := o.Anchors[0].Point
	return &p
}

// Len returns the number of items.
func (o *Outcome) Len() int { return len(o.Items) }

// IsEmpty reports whether the search found nothing.
func (o *Outcome) IsEmpty() bool { return len(o.Items) == 0 }
