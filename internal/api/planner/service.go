package planner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/Chouhan705/DateMapz/app/observability/metrics"
	"github.com/Chouhan705/DateMapz/internal/api/geocode"
	generativeAI "github.com/Chouhan705/DateMapz/internal/api/generative_ai"
	"github.com/Chouhan705/DateMapz/internal/types"
)

// CandidateFinder is the candidate-search capability the planner consumes.
type CandidateFinder interface {
	Find(ctx context.Context, lat, lng float64, vibe, transportMode string, isAdult bool) *types.CandidateSet
}

// PolicyConfig holds the per-mode planning knobs.
type PolicyConfig struct {
	MinCandidates   int
	MinStopsCurated int
	MinStopsArea    int
	MinStopsSimple  int
}

// DefaultPolicy is used for any knob left at zero.
var DefaultPolicy = PolicyConfig{
	MinCandidates:   2,
	MinStopsCurated: 2,
	MinStopsArea:    2,
	MinStopsSimple:  1,
}

var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for plan generation.
type Service interface {
	GeneratePlan(ctx context.Context, req types.DatePlanRequest) (*types.Itinerary, error)
}

type ServiceImpl struct {
	logger    *slog.Logger
	finder    CandidateFinder
	resolver  geocode.Resolver
	ai        generativeAI.Generator
	assembler *Assembler
	policy    PolicyConfig
}

func NewService(finder CandidateFinder, resolver geocode.Resolver, ai generativeAI.Generator, logger *slog.Logger, policy PolicyConfig) *ServiceImpl {
	if policy.MinCandidates <= 0 {
		policy.MinCandidates = DefaultPolicy.MinCandidates
	}
	if policy.MinStopsCurated <= 0 {
		policy.MinStopsCurated = DefaultPolicy.MinStopsCurated
	}
	if policy.MinStopsArea <= 0 {
		policy.MinStopsArea = DefaultPolicy.MinStopsArea
	}
	if policy.MinStopsSimple <= 0 {
		policy.MinStopsSimple = DefaultPolicy.MinStopsSimple
	}
	return &ServiceImpl{
		logger:    logger,
		finder:    finder,
		resolver:  resolver,
		ai:        ai,
		assembler: NewAssembler(logger),
		policy:    policy,
	}
}

// Mode derives the plan mode from which input field is present. Validation
// that exactly one is present happens at the handler boundary.
func Mode(req types.DatePlanRequest) types.PlanMode {
	switch {
	case req.Location != nil:
		return types.PlanModeCurated
	case req.LocationName != "":
		return types.PlanModeArea
	default:
		return types.PlanModeSimple
	}
}

func (s *ServiceImpl) GeneratePlan(ctx context.Context, req types.DatePlanRequest) (*types.Itinerary, error) {
	mode := Mode(req)
	ctx, span := otel.Tracer("PlannerService").Start(ctx, "GeneratePlan")
	span.SetAttributes(attribute.String("plan.mode", string(mode)))
	defer span.End()

	start := time.Now()
	defer func() {
		if m := metrics.Get(); m != nil {
			m.PlanRequestsTotal.Add(ctx, 1)
			m.PlanDurationSeconds.Record(ctx, time.Since(start).Seconds())
		}
	}()

	l := s.logger.With(slog.String("mode", string(mode)), slog.String("vibe", req.DateVibe))

	var itinerary *types.Itinerary
	var err error
	switch mode {
	case types.PlanModeCurated:
		itinerary, err = s.generateCurated(ctx, l, req)
	case types.PlanModeArea:
		itinerary, err = s.generateArea(ctx, l, req)
	default:
		itinerary, err = s.generateSimple(ctx, l, req)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "plan generation failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("plan.stops", len(itinerary.Stops)))
	span.SetStatus(codes.Ok, "plan generated")
	l.InfoContext(ctx, "Plan generated", slog.Int("stops", len(itinerary.Stops)), slog.String("title", itinerary.PlanTitle))
	return itinerary, nil
}

func (s *ServiceImpl) generateCurated(ctx context.Context, l *slog.Logger, req types.DatePlanRequest) (*types.Itinerary, error) {
	candidates := s.finder.Find(ctx, req.Location.Lat, req.Location.Lng, req.DateVibe, req.TransportMode, req.IsAdult)
	if candidates.Len() < s.policy.MinCandidates {
		l.WarnContext(ctx, "Not enough candidate venues to plan with", slog.Int("candidates", candidates.Len()))
		return nil, fmt.Errorf("%w: found %d", types.ErrInsufficientCandidates, candidates.Len())
	}

	sys, msg := BuildInstruction(PromptInput{
		Mode:          types.PlanModeCurated,
		Vibe:          req.DateVibe,
		TransportMode: req.TransportMode,
		IsAdult:       req.IsAdult,
		Candidates:    candidates,
	})
	result, err := s.generate(ctx, l, sys, msg)
	if err != nil {
		return nil, err
	}
	return s.assembleCalls(ctx, result, req.DateVibe, s.policy.MinStopsCurated)
}

func (s *ServiceImpl) generateArea(ctx context.Context, l *slog.Logger, req types.DatePlanRequest) (*types.Itinerary, error) {
	point, err := s.resolver.ResolveName(ctx, req.LocationName)
	if err != nil {
		return nil, err
	}
	area := s.resolver.DescribeArea(ctx, point.Lat, point.Lng)

	sys, msg := BuildInstruction(PromptInput{
		Mode:            types.PlanModeArea,
		Vibe:            req.DateVibe,
		TransportMode:   req.TransportMode,
		IsAdult:         req.IsAdult,
		AreaDescription: area,
	})
	result, err := s.generate(ctx, l, sys, msg)
	if err != nil {
		return nil, err
	}
	return s.assembleCalls(ctx, result, req.DateVibe, s.policy.MinStopsArea)
}

func (s *ServiceImpl) generateSimple(ctx context.Context, l *slog.Logger, req types.DatePlanRequest) (*types.Itinerary, error) {
	sys, msg := BuildInstruction(PromptInput{
		Mode:   types.PlanModeSimple,
		Prompt: req.Prompt,
	})
	result, err := s.generate(ctx, l, sys, msg)
	if err != nil {
		return nil, err
	}

	// Simple mode accepts tool calls or one inline JSON object.
	if len(result.Calls) > 0 {
		itinerary, err := s.assembleCalls(ctx, result, req.DateVibe, s.policy.MinStopsSimple)
		if err == nil {
			return itinerary, nil
		}
		l.WarnContext(ctx, "Tool calls did not yield a valid plan, trying inline JSON", slog.Any("error", err))
	}
	itinerary, err := s.assembler.AssembleFromJSON(ctx, result.Text, req.DateVibe)
	if err != nil {
		s.countAIError(ctx)
		return nil, err
	}
	return itinerary, nil
}

func (s *ServiceImpl) generate(ctx context.Context, l *slog.Logger, systemInstruction, userMessage string) (*generativeAI.GenResult, error) {
	result, err := s.ai.Generate(ctx, systemInstruction, userMessage, PlanTools())
	if err != nil {
		l.ErrorContext(ctx, "AI generation failed", slog.Any("error", err))
		s.countAIError(ctx)
		return nil, fmt.Errorf("%w: %s", types.ErrNoValidPlan, err)
	}
	return result, nil
}

func (s *ServiceImpl) assembleCalls(ctx context.Context, result *generativeAI.GenResult, vibe string, minStops int) (*types.Itinerary, error) {
	itinerary, err := s.assembler.AssembleFromCalls(ctx, result.Calls, result.Text, vibe, minStops)
	if err != nil {
		if errors.Is(err, types.ErrNoValidPlan) {
			s.countAIError(ctx)
		}
		return nil, err
	}
	return itinerary, nil
}

func (s *ServiceImpl) countAIError(ctx context.Context) {
	if m := metrics.Get(); m != nil {
		m.AIErrorsTotal.Add(ctx, 1)
	}
}
