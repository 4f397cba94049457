package filter

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
)

// --- Range tests ---

func TestNewRangeFilter_Valid(t *testing.T) {
	r, err := NewRangeFilter(40.1, 40.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.GTE() != 40.1 || r.LTE() != 40.5 {
		t.Errorf("got [%f, %f]", r.GTE(), r.LTE())
	}
}

func TestNewRangeFilter_Degenerate(t *testing.T) {
	if _, err := NewRangeFilter(1, 1); err != nil {
		t.Fatalf("zero-width range should be valid: %v", err)
	}
}

func TestNewRangeFilter_Inverted(t *testing.T) {
	_, err := NewRangeFilter(2, 1)
	if err == nil {
		t.Fatal("expected error for inverted range")
	}
	if !strings.Contains(err.Error(), "exceeds") {
		t.Errorf("error = %q", err)
	}
}

// --- Condition tests ---

func TestNewMembership(t *testing.T) {
	c, err := NewMembership("price_range", "€€")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != Membership || c.Key() != "price_range" || c.Token() != "€€" {
		t.Errorf("got %+v", c)
	}
	if _, err := NewMembership("", "€€"); err == nil {
		t.Error("expected error for empty key")
	}
	if _, err := NewMembership("price_range", ""); err == nil {
		t.Error("expected error for empty token")
	}
}

func TestNewContains(t *testing.T) {
	c, err := NewContains("reviews", "paella", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != Contains || !c.MultiValue() {
		t.Errorf("got %+v", c)
	}
	if _, err := NewContains("", "x", false); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestNewRange(t *testing.T) {
	r, _ := NewRangeFilter(0, 1)
	c, err := NewRange("location/lat", r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Kind() != InRange || c.Range() == nil {
		t.Errorf("got %+v", c)
	}
	if _, err := NewRange("", r); err == nil {
		t.Error("expected error for empty key")
	}
}

// --- Group / Expression tests ---

func TestNewGroup_Limits(t *testing.T) {
	if _, err := NewGroup(); err == nil {
		t.Error("expected error for empty group")
	}
	c, _ := NewMembership("k", "v")
	conds := make([]Condition, MaxConditionsPerGroup+1)
	for i := range conds {
		conds[i] = c
	}
	if _, err := NewGroup(conds...); err == nil {
		t.Error("expected error for oversized group")
	}
	g, err := NewGroup(c, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.IsOr() {
		t.Error("two-condition group should be an OR")
	}
}

func TestNew_RejectsEmptyGroup(t *testing.T) {
	if _, err := New(DefaultSchema(), Group{}); err == nil {
		t.Fatal("expected error for empty group")
	}
}

func TestWithBounds_AppendsLatThenLon(t *testing.T) {
	c, _ := NewMembership("day_opened", "lunes")
	g, _ := NewGroup(c)
	e, err := New(DefaultSchema(), g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	box := geo.NewBoundingBox(geo.Point{Lat: 40.4, Lon: -3.7}, 1)

	bounded := e.WithBounds(box)
	groups := bounded.Groups()
	if len(groups) != 3 {
		t.Fatalf("want 3 groups, got %d", len(groups))
	}
	lat := groups[1].Conditions()[0]
	lon := groups[2].Conditions()[0]
	if lat.Key() != "location/lat" || lat.Range().GTE() != box.LatMin || lat.Range().LTE() != box.LatMax {
		t.Errorf("lat group = %+v", lat)
	}
	if lon.Key() != "location/lng" || lon.Range().GTE() != box.LonMin || lon.Range().LTE() != box.LonMax {
		t.Errorf("lon group = %+v", lon)
	}
	if len(e.Groups()) != 1 {
		t.Error("WithBounds must not mutate the receiver")
	}
}
