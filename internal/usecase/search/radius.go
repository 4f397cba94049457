package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/bistrohunter/internal/domain/geo"
	"github.com/kailas-cloud/bistrohunter/internal/domain/restaurant"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/filter"
	"github.com/kailas-cloud/bistrohunter/internal/domain/search/mode"
	"github.com/kailas-cloud/bistrohunter/internal/logger"
	"github.com/kailas-cloud/bistrohunter/internal/metrics"
)

// radiusEpsilon absorbs float drift when stepping towards the max radius.
const radiusEpsilon = 1e-9

// anchorResult is what the radius search found around one anchor.
type anchorResult struct {
	records  []restaurant.Record
	formula  string
	anchor   geo.Point
	radiusKm float64
	steps    int
}

// searchAnchor queries growing boxes around place until target records are
// collected or the next radius would exceed the max. Store failures count as
// an empty step; only context cancellation is returned as an error.
func (s *Service) searchAnchor(
	ctx context.Context,
	expr filter.Expression,
	place geo.Place,
	initialKm float64,
	target int,
	m mode.Mode,
) (anchorResult, error) {
	log := logger.FromContext(ctx, s.logger)

	res := anchorResult{anchor: place.Center, radiusKm: initialKm}
	seen := make(map[string]struct{})
	radius := initialKm

	for {
		if err := ctx.Err(); err != nil {
			return anchorResult{}, fmt.Errorf("radius search: %w", err)
		}

		box := geo.NewBoundingBox(place.Center, radius)
		if s.cfg.UseViewport && place.Viewport != nil {
			box = box.Union(*place.Viewport)
		}
		bounded := expr.WithBounds(box)
		res.formula = s.store.Formula(bounded)
		res.radiusKm = radius
		res.steps++

		recs, err := s.store.Find(ctx, restaurant.Query{Filter: bounded, Limit: s.cfg.PageSize})
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return anchorResult{}, fmt.Errorf("radius search: %w", ctxErr)
			}
			log.Warn("Record store query failed, treating step as empty",
				zap.String("anchor", place.Name),
				zap.Float64("radius_km", radius),
				zap.Error(err),
			)
			recs = nil
		}

		added := 0
		for _, r := range recs {
			k := r.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			res.records = append(res.records, r)
			added++
		}
		log.Debug("Radius step",
			zap.String("anchor", place.Name),
			zap.Float64("radius_km", radius),
			zap.Int("fetched", len(recs)),
			zap.Int("added", added),
			zap.Int("total", len(res.records)),
		)

		if len(res.records) >= target || s.cfg.RadiusStepKm <= 0 {
			break
		}
		next := radius + s.cfg.RadiusStepKm
		if next > s.cfg.MaxRadiusKm+radiusEpsilon {
			break
		}
		radius = next
	}

	if len(res.records) > target {
		res.records = res.records[:target]
	}
	metrics.RadiusSteps.WithLabelValues(string(m)).Observe(float64(res.steps))
	return res, nil
}
