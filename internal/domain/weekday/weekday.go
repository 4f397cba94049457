// Package weekday maps visit dates and day names to the tokens stored in the
// restaurant opening-days field.
package weekday

import (
	"strings"
	"time"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
)

// Date layouts accepted by Parse.
const (
	LayoutISO     = "2006-01-02"
	LayoutSpanish = "02/01/2006"
)

var names = [7]string{
	time.Sunday:    "domingo",
	time.Monday:    "lunes",
	time.Tuesday:   "martes",
	time.Wednesday: "miércoles",
	time.Thursday:  "jueves",
	time.Friday:    "viernes",
	time.Saturday:  "sábado",
}

var aliases = map[string]time.Weekday{
	"miercoles": time.Wednesday,
	"sabado":    time.Saturday,
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func init() {
	for d, n := range names {
		aliases[n] = time.Weekday(d)
	}
}

// Token returns the stored day name for d.
func Token(d time.Weekday) string { return names[d] }

// FromDate returns the day token for a calendar date.
func FromDate(t time.Time) string { return Token(t.Weekday()) }

// ParseDate accepts YYYY-MM-DD or DD/MM/YYYY and returns the day token.
func ParseDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{LayoutISO, LayoutSpanish} {
		if t, err := time.Parse(layout, s); err == nil {
			return FromDate(t), nil
		}
	}
	return "", domain.InvalidInputf("date must be YYYY-MM-DD or DD/MM/YYYY, got %q", s)
}

// Normalize maps a Spanish or English day name, with or without accents,
// to its stored token.
func Normalize(s string) (string, error) {
	d, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", domain.InvalidInputf("unknown weekday %q", s)
	}
	return Token(d), nil
}
