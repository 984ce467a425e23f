package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	generativeAI "github.com/Chouhan705/DateMapz/internal/api/generative_ai"
	"github.com/Chouhan705/DateMapz/internal/types"
)

// Assembler reconciles the AI's raw output into an ordered, validated
// itinerary. Pure transformation, no side effects beyond logging.
type Assembler struct {
	logger *slog.Logger
}

func NewAssembler(logger *slog.Logger) *Assembler {
	return &Assembler{logger: logger}
}

// AssembleFromCalls builds an itinerary from tagged tool calls. Calls are
// partitioned by tag, malformed payloads dropped, stops sorted by
// stopNumber, and each stop gets the travel leg whose fromStop matches its
// stopNumber (absence tolerated). Fails when fewer than minStops valid
// stops remain.
func (a *Assembler) AssembleFromCalls(ctx context.Context, calls []generativeAI.ToolCall, freeText, vibe string, minStops int) (*types.Itinerary, error) {
	var stops []types.StopDraft
	var legs []types.TravelLegDraft

	for _, call := range calls {
		switch call.Name {
		case ToolCreateDateStop:
			stop, err := parseStopDraft(call.Args)
			if err != nil {
				a.logger.WarnContext(ctx, "Dropping malformed stop call", slog.Any("error", err))
				continue
			}
			stops = append(stops, stop)
		case ToolCreateTravelLeg:
			leg, err := parseTravelLeg(call.Args)
			if err != nil {
				a.logger.WarnContext(ctx, "Dropping malformed travel leg call", slog.Any("error", err))
				continue
			}
			legs = append(legs, leg)
		default:
			a.logger.WarnContext(ctx, "Ignoring unknown tool call", slog.String("name", call.Name))
		}
	}

	if len(stops) < minStops {
		return nil, fmt.Errorf("%w: got %d valid stops, need at least %d", types.ErrNoValidPlan, len(stops), minStops)
	}

	// Order purely by numeric stopNumber; gaps and ties tolerated.
	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].StopNumber < stops[j].StopNumber
	})

	// First leg per fromStop wins.
	legByFrom := make(map[int]types.TravelLegDraft, len(legs))
	for _, leg := range legs {
		if _, exists := legByFrom[leg.FromStop]; !exists {
			legByFrom[leg.FromStop] = leg
		}
	}
	for i := range stops {
		if leg, ok := legByFrom[stops[i].StopNumber]; ok {
			l := leg
			stops[i].TravelToNext = &l
		}
	}

	return &types.Itinerary{
		PlanID:    uuid.New(),
		PlanTitle: planTitle(freeText, vibe),
		Stops:     stops,
	}, nil
}

// AssembleFromJSON builds an itinerary from a text blob carrying one
// embedded JSON object. Stops with unparseable coordinates are silently
// filtered; the result only fails when no stop survives.
func (a *Assembler) AssembleFromJSON(ctx context.Context, text, vibe string) (*types.Itinerary, error) {
	blob, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var plan struct {
		PlanTitle string           `json:"planTitle"`
		Stops     []map[string]any `json:"stops"`
	}
	if err := json.Unmarshal([]byte(blob), &plan); err != nil {
		return nil, fmt.Errorf("failed to parse embedded plan JSON: %w", err)
	}

	stops := lo.FilterMap(plan.Stops, func(raw map[string]any, i int) (types.StopDraft, bool) {
		lat, latOK := toFloat(raw["lat"])
		lng, lngOK := toFloat(raw["lng"])
		if !latOK || !lngOK {
			a.logger.WarnContext(ctx, "Dropping stop with unparseable coordinates", slog.Int("index", i))
			return types.StopDraft{}, false
		}
		num, ok := toInt(raw["stopNumber"])
		if !ok || num <= 0 {
			num = i + 1
		}
		return types.StopDraft{
			StopNumber:  num,
			Name:        toString(raw["name"]),
			Description: toString(raw["description"]),
			Address:     toString(raw["address"]),
			Lat:         lat,
			Lng:         lng,
			Category:    categoryOrDefault(toString(raw["category"])),
			StartTime:   toString(raw["startTime"]),
			Duration:    toString(raw["duration"]),
		}, true
	})

	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: every stop was dropped", types.ErrNoValidPlan)
	}

	sort.SliceStable(stops, func(i, j int) bool {
		return stops[i].StopNumber < stops[j].StopNumber
	})

	title := strings.TrimSpace(plan.PlanTitle)
	if title == "" {
		title = planTitle("", vibe)
	}
	return &types.Itinerary{
		PlanID:    uuid.New(),
		PlanTitle: title,
		Stops:     stops,
	}, nil
}

// extractJSONObject returns the substring between the first '{' and the
// last '}' of text, inclusive.
func extractJSONObject(text string) (string, error) {
	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first == -1 || last == -1 || last <= first {
		return "", types.ErrNoJSONFound
	}
	return text[first : last+1], nil
}

// planTitle takes the first non-empty line of the AI's free text; the title
// convention is prompt-enforced only, so missing text falls back to a
// generated default.
func planTitle(freeText, vibe string) string {
	for _, line := range strings.Split(freeText, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "*#"))
		if line != "" {
			return line
		}
	}
	if strings.TrimSpace(vibe) == "" {
		return "A Great Date"
	}
	return fmt.Sprintf("A Great %s Date", strings.TrimSpace(vibe))
}

func parseStopDraft(args map[string]any) (types.StopDraft, error) {
	num, ok := toInt(args["stopNumber"])
	if !ok || num <= 0 {
		return types.StopDraft{}, fmt.Errorf("stopNumber must be a positive integer")
	}
	lat, latOK := toFloat(args["lat"])
	lng, lngOK := toFloat(args["lng"])
	if !latOK || !lngOK {
		return types.StopDraft{}, fmt.Errorf("lat/lng must be finite numbers")
	}

	stop := types.StopDraft{
		StopNumber:  num,
		Name:        toString(args["name"]),
		Description: toString(args["description"]),
		Address:     toString(args["address"]),
		Lat:         lat,
		Lng:         lng,
		Category:    categoryOrDefault(toString(args["category"])),
		StartTime:   toString(args["startTime"]),
		Duration:    toString(args["duration"]),
	}
	for field, val := range map[string]string{
		"name":        stop.Name,
		"description": stop.Description,
		"address":     stop.Address,
		"startTime":   stop.StartTime,
		"duration":    stop.Duration,
	} {
		if strings.TrimSpace(val) == "" {
			return types.StopDraft{}, fmt.Errorf("missing required field %q", field)
		}
	}
	return stop, nil
}

func parseTravelLeg(args map[string]any) (types.TravelLegDraft, error) {
	from, fromOK := toInt(args["fromStop"])
	to, toOK := toInt(args["toStop"])
	if !fromOK || !toOK || from <= 0 || to <= 0 {
		return types.TravelLegDraft{}, fmt.Errorf("fromStop/toStop must be positive integers")
	}
	leg := types.TravelLegDraft{
		FromStop:      from,
		ToStop:        to,
		TransportMode: toString(args["transportMode"]),
		TravelTime:    toString(args["travelTime"]),
	}
	if leg.TransportMode == "" || leg.TravelTime == "" {
		return types.TravelLegDraft{}, fmt.Errorf("missing transportMode or travelTime")
	}
	return leg, nil
}

var validCategories = map[types.Category]struct{}{
	types.CategoryFood:     {},
	types.CategoryCafe:     {},
	types.CategoryBar:      {},
	types.CategoryActivity: {},
	types.CategoryPark:     {},
	types.CategoryShop:     {},
}

func categoryOrDefault(raw string) types.Category {
	c := types.Category(strings.TrimSpace(raw))
	if _, ok := validCategories[c]; ok {
		return c
	}
	return types.CategoryActivity
}

// toFloat coerces model-emitted values (JSON numbers arrive as float64,
// but string-typed coordinates are common) to a finite float64.
func toFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, !math.IsNaN(val) && !math.IsInf(val, 0)
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return 0, false
	}
}

func toInt(v any) (int, bool) {
	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func toString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
