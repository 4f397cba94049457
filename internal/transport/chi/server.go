package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/bistrohunter/internal/logger"
	healthuc "github.com/kailas-cloud/bistrohunter/internal/usecase/health"
)

const (
	welcomeMessage = "Bienvenido a la API de búsqueda de restaurantes"
	noResults      = "No se encontraron restaurantes con los filtros aplicados."
	maxBodyBytes   = 1 << 20
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the restaurant search HTTP API.
type Server struct {
	search        Searcher
	health        HealthChecker
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		search: search,
		health: health,
		logger: logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrUpstream, http.StatusBadGateway, ErrorCodeUpstreamError),
		sentinelHandler(domain.ErrNotImplemented, http.StatusNotImplemented, ErrorCodeNotImplemented),
	}
	return s
}

// Routes registers the API on r.
func (s *Server) Routes(r chirouter.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeMethodNotAllowed, "method not allowed")
	})

	r.Get("/", s.Root)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Get("/api/v1/restaurants", s.ListRestaurants)
	r.Post("/api/v1/restaurants/search", s.SearchRestaurants)
}

// Root handles GET /.
func (s *Server) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: welcomeMessage})
}

// ListRestaurants handles GET /api/v1/restaurants.
func (s *Server) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	req, err := searchRequestFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}
	s.runSearch(w, r, req)
}

// SearchRestaurants handles POST /api/v1/restaurants/search.
func (s *Server) SearchRestaurants(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	s.runSearch(w, r, req)
}

func (s *Server) runSearch(w http.ResponseWriter, r *http.Request, req SearchRequest) {
	params, err := req.criteriaParams()
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}
	c, err := criteria.New(params)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, err.Error())
		return
	}

	out, err := s.search.Search(r.Context(), c)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	resp := SearchResponse{
		Restaurants:   make([]RestaurantResponse, 0, len(out.Items)),
		Total:         out.Len(),
		Mode:          string(out.Mode),
		Anchor:        out.Anchor(),
		Anchors:       out.Anchors,
		FilterFormula: out.Formula,
		Variables:     variablesFromCriteria(c),
		APICall:       apiCall(r),
	}
	for i := range out.Items {
		resp.Restaurants = append(resp.Restaurants, restaurantToResponse(&out.Items[i]))
	}
	if out.IsEmpty() {
		resp.Message = noResults
	}
	writeJSON(w, http.StatusOK, resp)
}

// HealthCheck handles GET /health. A degraded service still answers 200.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func restaurantToResponse(it *result.Item) RestaurantResponse {
	rec := it.Record()
	resp := RestaurantResponse{
		CID:         rec.CID,
		Title:       rec.Title,
		Description: rec.Description,
		PriceRange:  rec.PriceRange,
		URL:         rec.URL,
		Score:       rec.Score,
		Categories:  rec.Categories,
	}
	if rec.Location != nil {
		lat, lng := rec.Location.Lat, rec.Location.Lon
		resp.Lat, resp.Lng = &lat, &lng
	}
	if d, ok := it.DistanceKm(); ok {
		resp.DistanceKm = &d
	}
	return resp
}

// apiCall renders the request line as "METHOD absolute-url".
func apiCall(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = p
	}
	return r.Method + " " + scheme + "://" + r.Host + r.URL.RequestURI()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a client-safe message. Validation and lookup
// errors carry caller-facing detail; everything else collapses to the
// sentinel text.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidInput) || errors.Is(err, domain.ErrNotFound) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrUpstream,
		domain.ErrNotImplemented,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContext(r.Context(), s.logger)
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
