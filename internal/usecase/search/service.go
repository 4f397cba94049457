package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/criteria"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/mode"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/result"
	"github.com/kailas-cloud/bistrohunter/internal/logger"
	"github.com/kailas-cloud/bistrohunter/internal/metrics"
)

// Service runs geo-constrained restaurant searches over one or more anchors.
type Service struct {
	store  RecordStore
	places PlaceResolver
	schema filter.Schema
	cfg    Config
	logger *zap.Logger
}

// New creates a search service.
func New(store RecordStore, places PlaceResolver, schema filter.Schema, cfg Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, places: places, schema: schema, cfg: cfg, logger: logger}
}

// Search resolves the anchors for c, runs the radius search around each,
// merges and ranks the records.
//
// Only an unresolvable city (no zones, no coordinates) is an error
// (domain.ErrNotFound). Failed zones and store errors shrink the result.
func (s *Service) Search(ctx context.Context, c criteria.Criteria) (result.Outcome, error) {
	expr := filter.Build(c, s.schema)

	var (
		out result.Outcome
		err error
	)
	switch c.Mode() {
	case mode.Zones:
		out, err = s.searchZones(ctx, c, expr)
	case mode.Coordinates:
		place := geo.Place{Name: c.Coordinates().String(), Center: *c.Coordinates()}
		out, err = s.searchSingle(ctx, c, expr, place, s.initialRadius(c, s.cfg.CoordinateInitialRadiusKm))
	default:
		place, ok := s.places.Resolve(ctx, c.City(), c.City())
		if !ok {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result.Outcome{}, fmt.Errorf("resolve city: %w", ctxErr)
			}
			return result.Outcome{}, fmt.Errorf("%w: city %q could not be located", domain.ErrNotFound, c.City())
		}
		out, err = s.searchSingle(ctx, c, expr, place, s.initialRadius(c, s.cfg.CityInitialRadiusKm))
	}
	if err != nil {
		return result.Outcome{}, err
	}
	out.Mode = c.Mode()

	logger.FromContext(ctx, s.logger).Info("Restaurant search completed",
		zap.String("mode", string(out.Mode)),
		zap.String("city", c.City()),
		zap.Int("anchors", len(out.Anchors)),
		zap.Int("results", out.Len()),
	)
	return out, nil
}

func (s *Service) initialRadius(c criteria.Criteria, modeDefault float64) float64 {
	if r := c.RadiusKm(); r > 0 {
		return r
	}
	return modeDefault
}

func (s *Service) searchSingle(
	ctx context.Context, c criteria.Criteria, expr filter.Expression, place geo.Place, initialKm float64,
) (result.Outcome, error) {
	res, err := s.searchAnchor(ctx, expr, place, initialKm, s.cfg.CityTarget, c.Mode())
	if err != nil {
		return result.Outcome{}, err
	}
	anchors := []result.Anchor{{Name: place.Name, Point: res.anchor, RadiusKm: res.radiusKm, Found: len(res.records)}}
	return result.Outcome{
		Items:   rank(res.records, anchors, c.SortByProximity()),
		Formula: res.formula,
		Anchors: anchors,
	}, nil
}

// searchZones processes zones in order, appending unseen records. The cap is
// len(zones) * PerZoneTarget whether or not every zone resolves.
func (s *Service) searchZones(ctx context.Context, c criteria.Criteria, expr filter.Expression) (result.Outcome, error) {
	log := logger.FromContext(ctx, s.logger)
	zones := c.Zones()
	limit := len(zones) * s.cfg.PerZoneTarget
	initialKm := s.initialRadius(c, s.cfg.ZoneInitialRadiusKm)

	out := result.Outcome{Formula: s.store.Formula(expr)}
	seen := make(map[string]struct{})
	var merged []restaurant.Record

	for _, zone := range zones {
		place, ok := s.places.Resolve(ctx, zone, c.City())
		if !ok {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result.Outcome{}, fmt.Errorf("resolve zone: %w", ctxErr)
			}
			metrics.ZoneResolutionFailuresTotal.Inc()
			log.Warn("Zone not found, skipping", zap.String("zone", zone), zap.String("city", c.City()))
			continue
		}

		res, err := s.searchAnchor(ctx, expr, place, initialKm, s.cfg.PerZoneTarget, mode.Zones)
		if err != nil {
			return result.Outcome{}, err
		}
		out.Formula = res.formula
		out.Anchors = append(out.Anchors, result.Anchor{
			Name: zone, Point: res.anchor, RadiusKm: res.radiusKm, Found: len(res.records),
		})

		for _, r := range res.records {
			k := r.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			merged = append(merged, r)
		}
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}
	out.Items = rank(merged, out.Anchors, c.SortByProximity())
	return out, nil
}
