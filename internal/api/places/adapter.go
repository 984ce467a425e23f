package places

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/Chouhan705/DateMapz/app/observability/metrics"
	"github.com/Chouhan705/DateMapz/internal/types"
)

// Searcher is the failure-contained search capability the finder consumes.
type Searcher interface {
	Search(ctx context.Context, spec types.SearchSpec) []types.PlaceRecord
}

var _ Searcher = (*Adapter)(nil)

// Adapter wraps one provider search call with classification and failure
// containment. A provider failure is never fatal to the planning flow: the
// adapter logs it and returns an empty slice.
type Adapter struct {
	api    NearbyAPI
	logger *slog.Logger
}

func NewAdapter(api NearbyAPI, logger *slog.Logger) *Adapter {
	return &Adapter{api: api, logger: logger}
}

func (a *Adapter) Search(ctx context.Context, spec types.SearchSpec) []types.PlaceRecord {
	raw, err := a.api.NearbySearch(ctx, spec.Location, spec.RadiusMeters, spec.Keyword)
	if err != nil {
		a.logger.WarnContext(ctx, "Nearby search failed, continuing with empty result",
			slog.String("keyword", spec.Keyword),
			slog.Int("radius_m", spec.RadiusMeters),
			slog.Any("error", err),
		)
		if m := metrics.Get(); m != nil {
			m.PlaceSearchErrorsTotal.Add(ctx, 1)
		}
		return nil
	}

	return lo.FilterMap(raw, func(p RawPlace, _ int) (types.PlaceRecord, bool) {
		addr := p.Address()
		if addr == "" {
			return types.PlaceRecord{}, false
		}
		return types.PlaceRecord{
			Name:     p.Name,
			Address:  addr,
			Lat:      p.Location.Lat,
			Lng:      p.Location.Lng,
			Category: ClassifyTags(p.Types),
		}, true
	})
}
