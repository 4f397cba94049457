package result

import (
	"testing"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
)

func TestNewItem(t *testing.T) {
	it := NewItem(restaurant.Record{ID: "rec1", CID: "c1"}, 1.5, true)
	if it.Record().Key() != "c1" {
		t.Errorf("Record().Key() = %q", it.Record().Key())
	}
	d, ok := it.DistanceKm()
	if !ok || d != 1.5 {
		t.Errorf("DistanceKm() = (%f, %v)", d, ok)
	}

	none := NewItem(restaurant.Record{ID: "rec2"}, 0, false)
	if _, ok := none.DistanceKm(); ok {
		t.Error("expected no distance")
	}
}

func TestOutcome_Anchor(t *testing.T) {
	var o Outcome
	if o.Anchor() != nil {
		t.Fatal("empty outcome must have no anchor")
	}
	if !o.IsEmpty() || o.Len() != 0 {
		t.Error("empty outcome must be empty")
	}

	o.Anchors = []Anchor{
		{Name: "Chueca", Point: geo.Point{Lat: 40.42, Lon: -3.70}},
		{Name: "Retiro", Point: geo.Point{Lat: 40.41, Lon: -3.68}},
	}
	a := o.Anchor()
	if a == nil || a.Lat != 40.42 {
		t.Fatalf("Anchor() = %+v, want first anchor", a)
	}
	a.Lat = 0
	if o.Anchors[0].Point.Lat != 40.42 {
		t.Error("Anchor() must return a copy")
	}
}
