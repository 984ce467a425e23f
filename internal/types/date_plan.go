package types

import "github.com/google/uuid"

// PlanMode selects which prompt variant the composer builds.
type PlanMode string

const (
	// PlanModeCurated constrains the AI to a pre-searched candidate list.
	PlanModeCurated PlanMode = "curated"
	// PlanModeArea lets the AI invent real venues for a described area.
	PlanModeArea PlanMode = "area"
	// PlanModeSimple is a free-text day plan with no location context.
	PlanModeSimple PlanMode = "simple"
)

// DatePlanRequest is the inbound payload for the single planning endpoint.
// Exactly one of Location, LocationName or Prompt must be set; which one is
// present selects the plan mode.
type DatePlanRequest struct {
	Location      *GeoPoint `json:"location,omitempty"`
	LocationName  string    `json:"locationName,omitempty"`
	Prompt        string    `json:"prompt,omitempty"`
	DateVibe      string    `json:"dateVibe,omitempty"`
	TransportMode string    `json:"transportMode,omitempty"`
	IsAdult       bool      `json:"isAdult,omitempty"`
}

// TravelLegDraft is the structured payload of one create_travel_leg call.
// It associates to exactly one StopDraft by FromStop.
type TravelLegDraft struct {
	FromStop      int    `json:"fromStop"`
	ToStop        int    `json:"toStop"`
	TransportMode string `json:"transportMode"`
	TravelTime    string `json:"travelTime"`
}

// StopDraft is the structured payload of one create_date_stop call.
// StopNumber is the AI-assigned sequence position; ordering is purely by its
// numeric value, gaps and ties tolerated.
type StopDraft struct {
	StopNumber   int             `json:"stopNumber"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Address      string          `json:"address"`
	Lat          float64         `json:"lat"`
	Lng          float64         `json:"lng"`
	Category     Category        `json:"category"`
	StartTime    string          `json:"startTime"`
	Duration     string          `json:"duration"`
	TravelToNext *TravelLegDraft `json:"travelToNext,omitempty"`
}

// Itinerary is the assembled plan returned to the caller. Built once per
// request, never persisted.
type Itinerary struct {
	PlanID    uuid.UUID   `json:"planId"`
	PlanTitle string      `json:"planTitle"`
	Stops     []StopDraft `json:"stops"`
}
