package planner

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Chouhan705/DateMapz/internal/api"
	"github.com/Chouhan705/DateMapz/internal/types"
)

type Handler struct {
	planService Service
	logger      *slog.Logger
}

func NewHandler(planService Service, logger *slog.Logger) *Handler {
	return &Handler{
		planService: planService,
		logger:      logger,
	}
}

// GenerateDatePlan handles the single planning endpoint. Exactly one of
// location, locationName or prompt must be present; which one selects the
// plan mode. Input problems are rejected before any upstream call is made.
func (h *Handler) GenerateDatePlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GenerateDatePlan").Start(r.Context(), "GenerateDatePlan", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/date-plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateDatePlan"))
	l.DebugContext(ctx, "Generate date plan handler invoked")

	var req types.DatePlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if msg := validateRequest(req); msg != "" {
		l.ErrorContext(ctx, "Invalid plan request", slog.String("reason", msg))
		api.ErrorResponse(w, r, http.StatusBadRequest, msg)
		return
	}

	itinerary, err := h.planService.GeneratePlan(ctx, req)
	if err != nil {
		status := statusForError(err)
		l.ErrorContext(ctx, "Failed to generate plan", slog.Any("error", err), slog.Int("status", status))
		api.ErrorResponse(w, r, status, err.Error())
		return
	}

	l.InfoContext(ctx, "Plan generated successfully", slog.String("planID", itinerary.PlanID.String()))
	span.SetAttributes(semconv.HTTPResponseStatusCodeKey.Int(http.StatusOK))
	api.WriteJSONResponse(w, r, http.StatusOK, itinerary)
}

func validateRequest(req types.DatePlanRequest) string {
	inputs := 0
	if req.Location != nil {
		inputs++
	}
	if req.LocationName != "" {
		inputs++
	}
	if req.Prompt != "" {
		inputs++
	}
	switch {
	case inputs == 0:
		return "one of location, locationName or prompt is required"
	case inputs > 1:
		return "location, locationName and prompt are mutually exclusive"
	}
	if req.Location != nil {
		if req.Location.Lat < -90 || req.Location.Lat > 90 || req.Location.Lng < -180 || req.Location.Lng > 180 {
			return "location coordinates out of range"
		}
	}
	return ""
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, types.ErrLocationNotFound):
		return http.StatusNotFound
	case errors.Is(err, types.ErrInsufficientCandidates):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
