package search

import (
	"cmp"
	"math"
	"slices"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
)

// rank orders records once, after merge and truncation. Proximity sorts by
// distance to the nearest anchor, records without a coordinate last.
// Otherwise it sorts by score descending, missing or non-numeric scores
// last. Both sorts are stable, so ties keep store order.
func rank(recs []restaurant.Record, anchors []result.Anchor, byProximity bool) []result.Item {
	items := make([]result.Item, len(recs))
	for i, r := range recs {
		d, ok := nearestDistance(r, anchors)
		items[i] = result.NewItem(r, d, ok)
	}

	if byProximity {
		slices.SortStableFunc(items, func(a, b result.Item) int {
			da, oka := a.DistanceKm()
			db, okb := b.DistanceKm()
			return cmp.Compare(distanceKey(da, oka), distanceKey(db, okb))
		})
		return items
	}

	slices.SortStableFunc(items, func(a, b result.Item) int {
		sa := scoreKey(a.Record())
		sb := scoreKey(b.Record())
		return cmp.Compare(sb, sa)
	})
	return items
}

func nearestDistance(r restaurant.Record, anchors []result.Anchor) (float64, bool) {
	if r.Location == nil || len(anchors) == 0 {
		return 0, false
	}
	best := math.Inf(1)
	for _, a := range anchors {
		if d := geo.HaversineKm(a.Point, *r.Location); d < best {
			best = d
		}
	}
	return best, true
}

func distanceKey(d float64, ok bool) float64 {
	if !ok {
		return math.Inf(1)
	}
	return d
}

func scoreKey(r restaurant.Record) float64 {
	if s, ok := r.NumericScore(); ok {
		return s
	}
	return math.Inf(-1)
}
