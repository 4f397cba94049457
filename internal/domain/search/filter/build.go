package filter

import (
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
)

// Build translates criteria into an expression. Groups are emitted in a fixed
// order: opening day, price, cuisine, diet, dish. Absent criteria add nothing.
//
// Diet is never OR-expanded: its tokens are joined back with ", ", the
// separator the store uses when rendering multi-select fields, and matched as
// one substring.
func Build(c criteria.Criteria, s Schema) Expression {
	var groups []Group

	if day := c.OpenDay(); day != "" {
		groups = append(groups, Group{conds: []Condition{{kind: Membership, key: s.Day, token: day}}})
	}
	if g, ok := orGroup(c.PriceRange(), func(t string) Condition {
		return Condition{kind: Membership, key: s.Price, token: t}
	}); ok {
		groups = append(groups, g)
	}
	if g, ok := orGroup(c.Cuisine(), func(t string) Condition {
		return Condition{kind: Contains, key: s.Categories, token: t}
	}); ok {
		groups = append(groups, g)
	}
	if diet := c.Diet(); len(diet) > 0 {
		groups = append(groups, Group{conds: []Condition{
			{kind: Contains, key: s.Categories, token: strings.Join(diet, ", ")},
		}})
	}
	if g, ok := orGroup(c.Dish(), func(t string) Condition {
		return Condition{kind: Contains, key: s.Reviews, token: t, multiValue: true}
	}); ok {
		groups = append(groups, g)
	}

	return Expression{groups: groups, latField: s.Lat, lonField: s.Lon}
}

func orGroup(tokens []string, cond func(string) Condition) (Group, bool) {
	if len(tokens) == 0 {
		return Group{}, false
	}
	if len(tokens) > MaxConditionsPerGroup {
		tokens = tokens[:MaxConditionsPerGroup]
	}
	conds := make([]Condition, len(tokens))
	for i, t := range tokens {
		conds[i] = cond(t)
	}
	return Group{conds: conds}, true
}
