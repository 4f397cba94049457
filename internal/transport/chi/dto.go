package chi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
)

// ErrorCode is a machine-readable error classifier.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeNotFound         ErrorCode = "not_found"
	ErrorCodeMethodNotAllowed ErrorCode = "method_not_allowed"
	ErrorCodeUpstreamError    ErrorCode = "upstream_error"
	ErrorCodeNotImplemented   ErrorCode = "not_implemented"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// MessageResponse carries a plain informational message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// SearchRequest is the body of POST /api/v1/restaurants/search. GET query
// parameters are decoded into the same shape. Spanish aliases are merged
// into their English counterparts.
type SearchRequest struct {
	City            string    `json:"city"`
	Zone            tokenList `json:"zone"`
	Zona            tokenList `json:"zona"`
	Coordinates     string    `json:"coordinates"`
	Coordenadas     string    `json:"coordenadas"`
	PriceRange      tokenList `json:"price_range"`
	Cuisine         tokenList `json:"cuisine"`
	Cocina          tokenList `json:"cocina"`
	Diet            tokenList `json:"diet"`
	Dish            tokenList `json:"dish"`
	Date            string    `json:"date"`
	Day             string    `json:"day"`
	RadiusKm        *float64  `json:"radius_km"`
	SortByProximity *bool     `json:"sort_by_proximity"`
}

// tokenList accepts either a JSON string or an array of strings.
type tokenList []string

func (t *tokenList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("token list: %w", err)
		}
		*t = tokenList{s}
		return nil
	}
	var ss []string
	if err := json.Unmarshal(data, &ss); err != nil {
		return fmt.Errorf("token list must be a string or an array of strings: %w", err)
	}
	*t = ss
	return nil
}

// Variables echoes the search as interpreted by the server.
type Variables struct {
	City            string   `json:"city"`
	Zones           []string `json:"zones"`
	Coordinates     *string  `json:"coordinates"`
	PriceRange      []string `json:"price_range"`
	CuisineType     []string `json:"cuisine_type"`
	Diet            []string `json:"diet"`
	Dish            []string `json:"dish"`
	Day             *string  `json:"day"`
	RadiusKm        *float64 `json:"radius_km"`
	SortByProximity bool     `json:"sort_by_proximity"`
}

// RestaurantResponse is one restaurant in a search response. Price tier
// and score are passed through as stored.
type RestaurantResponse struct {
	CID         string   `json:"cid,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PriceRange  any      `json:"price_range"`
	URL         string   `json:"url"`
	Score       any      `json:"score"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	DistanceKm  *float64 `json:"distance_km,omitempty"`
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Restaurants   []RestaurantResponse `json:"restaurants"`
	Total         int                  `json:"total"`
	Mode          string               `json:"mode"`
	Anchor        *geo.Point           `json:"anchor"`
	Anchors       []result.Anchor      `json:"anchors"`
	FilterFormula string               `json:"filter_formula"`
	Variables     Variables            `json:"variables"`
	APICall       string               `json:"api_call"`
	Message       string               `json:"message,omitempty"`
}
