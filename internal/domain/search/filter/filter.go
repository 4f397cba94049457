package filter

import (
	"fmt"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
)

// MaxConditionsPerGroup is the maximum number of conditions per OR-group.
const MaxConditionsPerGroup = 32

// Kind is the shape of a single condition.
type Kind int

// Condition kinds.
const (
	// Membership tests that a token appears in a multi-value field.
	Membership Kind = iota + 1
	// Contains is a case-insensitive substring test.
	Contains
	// InRange is an inclusive numeric range.
	InRange
)

// Expression is an immutable AND of OR-groups.
type Expression struct {
	groups   []Group
	latField string
	lonField string
}

// New validates and creates an expression whose bounds use the schema's
// coordinate fields.
func New(schema Schema, groups ...Group) (Expression, error) {
	for i, g := range groups {
		if len(g.conds) == 0 {
			return Expression{}, fmt.Errorf("group %d is empty", i)
		}
	}
	return Expression{groups: groups, latField: schema.Lat, lonField: schema.Lon}, nil
}

// Groups returns the AND-ed groups in order.
func (e Expression) Groups() []Group { return e.groups }

// IsEmpty reports whether the expression has no groups.
func (e Expression) IsEmpty() bool { return len(e.groups) == 0 }

// WithBounds returns a copy with a latitude range and a longitude range
// appended, in that order.
func (e Expression) WithBounds(b geo.BoundingBox) Expression {
	groups := make([]Group, 0, len(e.groups)+2)
	groups = append(groups, e.groups...)
	groups = append(groups,
		Group{conds: []Condition{{kind: InRange, key: e.latField, rangeExpr: &Range{gte: b.LatMin, lte: b.LatMax}}}},
		Group{conds: []Condition{{kind: InRange, key: e.lonField, rangeExpr: &Range{gte: b.LonMin, lte: b.LonMax}}}},
	)
	return Expression{groups: groups, latField: e.latField, lonField: e.lonField}
}

// Group is a disjunction of conditions. A single-condition group is a bare condition.
type Group struct {
	conds []Condition
}

// NewGroup validates and creates an OR-group.
func NewGroup(conds ...Condition) (Group, error) {
	if len(conds) == 0 {
		return Group{}, fmt.Errorf("group requires at least one condition")
	}
	if len(conds) > MaxConditionsPerGroup {
		return Group{}, fmt.Errorf("too many conditions in group (max %d)", MaxConditionsPerGroup)
	}
	return Group{conds: conds}, nil
}

// Conditions returns the OR-ed conditions.
func (g Group) Conditions() []Condition { return g.conds }

// IsOr reports whether the group holds more than one condition.
func (g Group) IsOr() bool { return len(g.conds) > 1 }

// Condition is a single clause on one field.
type Condition struct {
	kind       Kind
	key        string
	token      string
	multiValue bool
	rangeExpr  *Range
}

// NewMembership creates a condition matching token inside a multi-value field.
func NewMembership(key, token string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if token == "" {
		return Condition{}, fmt.Errorf("token is required for key %q", key)
	}
	return Condition{kind: Membership, key: key, token: token}, nil
}

// NewContains creates a case-insensitive substring condition. multiValue
// marks fields that hold a list and must be joined before matching.
func NewContains(key, token string, multiValue bool) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if token == "" {
		return Condition{}, fmt.Errorf("token is required for key %q", key)
	}
	return Condition{kind: Contains, key: key, token: token, multiValue: multiValue}, nil
}

// NewRange creates an inclusive numeric range condition.
func NewRange(key string, r Range) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{kind: InRange, key: key, rangeExpr: &r}, nil
}

// Kind returns the condition shape.
func (c Condition) Kind() Kind { return c.kind }

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Token returns the matched token.
func (c Condition) Token() string { return c.token }

// MultiValue reports whether the field is a list.
func (c Condition) MultiValue() bool { return c.multiValue }

// Range returns the numeric range expression.
func (c Condition) Range() *Range { return c.rangeExpr }

// Range is an inclusive [gte, lte] interval.
type Range struct {
	gte float64
	lte float64
}

// NewRangeFilter validates and creates a Range.
func NewRangeFilter(gte, lte float64) (Range, error) {
	if gte > lte {
		return Range{}, fmt.Errorf("range lower bound %g exceeds upper bound %g", gte, lte)
	}
	return Range{gte: gte, lte: lte}, nil
}

// GTE returns the lower inclusive bound.
func (r Range) GTE() float64 { return r.gte }

// LTE returns the upper inclusive bound.
func (r Range) LTE() float64 { return r.lte }
