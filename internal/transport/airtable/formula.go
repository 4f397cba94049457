package airtable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
)

var tokenEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// Formula renders filter expressions in the Airtable formula language.
type Formula struct{}

// Render implements the repository's formula renderer.
func (Formula) Render(e filter.Expression) string { return Render(e) }

// Render returns AND(g1, g2, ...). A single-condition group renders bare,
// a larger one as OR(...). An empty expression renders as "".
func Render(e filter.Expression) string {
	groups := e.Groups()
	if len(groups) == 0 {
		return ""
	}
	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		parts = append(parts, renderGroup(g))
	}
	return "AND(" + strings.Join(parts, ", ") + ")"
}

func renderGroup(g filter.Group) string {
	conds := g.Conditions()
	if len(conds) == 1 {
		return renderCondition(conds[0])
	}
	parts := make([]string, 0, len(conds))
	for _, c := range conds {
		parts = append(parts, renderCondition(c))
	}
	return "OR(" + strings.Join(parts, ", ") + ")"
}

func renderCondition(c filter.Condition) string {
	switch c.Kind() {
	case filter.Membership:
		return fmt.Sprintf("FIND('%s', ARRAYJOIN({%s}, ', ')) > 0", escape(c.Token()), c.Key())
	case filter.Contains:
		if c.MultiValue() {
			return fmt.Sprintf("FIND(LOWER('%s'), LOWER(ARRAYJOIN({%s}, ', '))) > 0", escape(c.Token()), c.Key())
		}
		return fmt.Sprintf("FIND(LOWER('%s'), LOWER({%s})) > 0", escape(c.Token()), c.Key())
	case filter.InRange:
		r := c.Range()
		return fmt.Sprintf("AND({%s} >= %s, {%s} <= %s)",
			c.Key(), formatFloat(r.GTE()), c.Key(), formatFloat(r.LTE()))
	default:
		return "TRUE()"
	}
}

func escape(token string) string { return tokenEscaper.Replace(token) }

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
