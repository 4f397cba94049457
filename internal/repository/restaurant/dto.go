package restaurant

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	domrest "github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
)

// Fields names the store columns read into a record.
type Fields struct {
	CID         string `yaml:"cid"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
	PriceRange  string `yaml:"price_range"`
	Score       string `yaml:"score"`
	Lat         string `yaml:"lat"`
	Lon         string `yaml:"lng"`
	Categories  string `yaml:"categories"`
}

// DefaultFields returns the column names of the restaurant table.
func DefaultFields() Fields {
	return Fields{
		CID:         "cid",
		Title:       "title",
		Description: "bh_message",
		URL:         "url",
		PriceRange:  "price_range",
		Score:       "NBH2",
		Lat:         "location/lat",
		Lon:         "location/lng",
		Categories:  "comida_[TESTING]",
	}
}

// toRecord converts a raw store row into a domain record. Price tier and
// score are passed through untouched.
func toRecord(raw domrest.RawRecord, f Fields) domrest.Record {
	rec := domrest.Record{
		ID:          raw.ID,
		CID:         stringField(raw.Fields[f.CID]),
		Title:       stringField(raw.Fields[f.Title]),
		Description: stringField(raw.Fields[f.Description]),
		URL:         stringField(raw.Fields[f.URL]),
		PriceRange:  raw.Fields[f.PriceRange],
		Score:       raw.Fields[f.Score],
		Categories:  listField(raw.Fields[f.Categories]),
	}

	lat, okLat := numberField(raw.Fields[f.Lat])
	lon, okLon := numberField(raw.Fields[f.Lon])
	if okLat && okLon && geo.ValidCoordinates(lat, lon) {
		rec.Location = &geo.Point{Lat: lat, Lon: lon}
	}
	return rec
}

// stringField renders scalars as text; single-element lookup arrays are unwrapped.
func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		if len(t) == 1 {
			return stringField(t[0])
		}
		parts := make([]string, 0, len(t))
		for _, e := range t {
			if s := stringField(e); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(t)
	}
}

func numberField(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	case []any:
		if len(t) == 1 {
			return numberField(t[0])
		}
	}
	return 0, false
}

// listField accepts a multi-select array or a comma-separated string.
func listField(v any) []string {
	var parts []string
	switch t := v.(type) {
	case string:
		parts = strings.Split(t, ",")
	case []any:
		for _, e := range t {
			parts = append(parts, stringField(e))
		}
	default:
		return nil
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
