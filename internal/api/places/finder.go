package places

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/Chouhan705/DateMapz/app/observability/metrics"
	"github.com/Chouhan705/DateMapz/internal/types"
)

// Finder orchestrates the vibe-first candidate search: one primary search,
// then parallel supplemental searches only when the primary under-delivers.
type Finder struct {
	searcher             Searcher
	logger               *slog.Logger
	maxCandidates        int
	sufficiencyThreshold int
}

func NewFinder(searcher Searcher, logger *slog.Logger, maxCandidates, sufficiencyThreshold int) *Finder {
	if maxCandidates <= 0 {
		maxCandidates = 20
	}
	if sufficiencyThreshold <= 0 {
		sufficiencyThreshold = 6
	}
	return &Finder{
		searcher:             searcher,
		logger:               logger,
		maxCandidates:        maxCandidates,
		sufficiencyThreshold: sufficiencyThreshold,
	}
}

// Find returns up to maxCandidates venues near (lat, lng). Primary results
// are merged before the sufficiency gate runs, so they always survive
// truncation ahead of supplemental ones. A sparse or empty set is a valid
// degraded outcome; the caller decides whether it is enough to plan with.
func (f *Finder) Find(ctx context.Context, lat, lng float64, vibe, transportMode string, isAdult bool) *types.CandidateSet {
	ctx, span := otel.Tracer("Finder").Start(ctx, "Find")
	defer span.End()

	loc := types.GeoPoint{Lat: lat, Lng: lng}
	radius := RadiusForTransport(transportMode)
	primary := types.SearchSpec{Location: loc, RadiusMeters: radius, Keyword: KeywordForVibe(vibe, isAdult)}

	l := f.logger.With(slog.String("vibe", vibe), slog.Int("radius_m", radius))

	set := types.NewCandidateSet()
	set.AddAll(f.searcher.Search(ctx, primary))
	span.SetAttributes(attribute.Int("candidates.primary", set.Len()))

	if set.Len() >= f.sufficiencyThreshold {
		l.DebugContext(ctx, "Primary search sufficient, skipping supplemental searches",
			slog.Int("candidates", set.Len()))
		f.record(ctx, set)
		set.Truncate(f.maxCandidates)
		return set
	}

	// A foodie primary search already covers food intent; a second food
	// query would only return near-duplicates.
	runFood := !strings.EqualFold(strings.TrimSpace(vibe), "foodie")

	var foodResults, ambianceResults []types.PlaceRecord
	g, gctx := errgroup.WithContext(ctx)
	if runFood {
		g.Go(func() error {
			spec := types.SearchSpec{Location: loc, RadiusMeters: radius, Keyword: FoodKeyword(isAdult)}
			foodResults = f.searcher.Search(gctx, spec)
			return nil
		})
	}
	g.Go(func() error {
		spec := types.SearchSpec{Location: loc, RadiusMeters: radius, Keyword: AmbianceKeyword(isAdult)}
		ambianceResults = f.searcher.Search(gctx, spec)
		return nil
	})
	_ = g.Wait() // searches contain their own failures

	// Deterministic merge order after the join: food first, then ambiance.
	set.AddAll(foodResults)
	set.AddAll(ambianceResults)
	span.SetAttributes(attribute.Int("candidates.total", set.Len()))

	l.DebugContext(ctx, "Candidate search complete",
		slog.Int("candidates", set.Len()),
		slog.Bool("food_search", runFood),
	)
	f.record(ctx, set)
	set.Truncate(f.maxCandidates)
	return set
}

func (f *Finder) record(ctx context.Context, set *types.CandidateSet) {
	if m := metrics.Get(); m != nil {
		m.CandidatesFound.Record(ctx, int64(set.Len()))
	}
}
