package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Chouhan705/DateMapz/internal/types"
)

// PromptInput carries everything the composer needs to build one
// instruction payload. Which fields are set depends on the mode.
type PromptInput struct {
	Mode            types.PlanMode
	Vibe            string
	TransportMode   string
	IsAdult         bool
	Candidates      *types.CandidateSet // curated mode
	AreaDescription string              // area mode
	Prompt          string              // simple mode
}

const baseSystemInstruction = `You are a thoughtful date planner. You design multi-stop itineraries of real-world places.
Your first sentence must be a short, catchy title for the plan, on its own line.
Emit every stop with one create_date_stop call and every transit segment between consecutive stops with one create_travel_leg call.
Number stops from 1 in visit order. The last stop has no outgoing travel leg.`

// BuildInstruction returns the system instruction and user message for the
// given mode.
func BuildInstruction(in PromptInput) (systemInstruction, userMessage string) {
	switch in.Mode {
	case types.PlanModeCurated:
		return baseSystemInstruction, curatedMessage(in)
	case types.PlanModeArea:
		return baseSystemInstruction, areaMessage(in)
	default:
		return simpleSystemInstruction, in.Prompt
	}
}

func curatedMessage(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a %s for two people.\n", describeDate(in.Vibe, in.IsAdult))
	fmt.Fprintf(&b, "They are travelling by %s, so keep stops close together.\n\n", transportOrDefault(in.TransportMode))

	b.WriteString("Choose 3 to 5 stops ONLY from the candidate venues below. ")
	b.WriteString("Every stop's name, address, lat and lng MUST be copied exactly from this list; do not invent venues.\n\n")
	b.WriteString("Candidate venues:\n")

	for _, rec := range in.Candidates.Records() {
		line, _ := json.Marshal(rec)
		b.Write(line)
		b.WriteByte('\n')
	}

	b.WriteString("\nGive each stop a start time, a duration, and a description of what to do there.")
	return b.String()
}

func areaMessage(in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Plan a %s for two people in %s.\n", describeDate(in.Vibe, in.IsAdult), in.AreaDescription)
	fmt.Fprintf(&b, "They are travelling by %s, so keep stops close together.\n\n", transportOrDefault(in.TransportMode))

	b.WriteString("Choose 3 to 5 real, well-known venues appropriate to that area. ")
	b.WriteString("Use each venue's real street address and coordinates.\n")
	b.WriteString("Give each stop a start time, a duration, and a description of what to do there.")
	return b.String()
}

const simpleSystemInstruction = `You are a helpful day planner. Produce a general-purpose multi-stop plan (4-6 stops) for the user's request.
Your first sentence must be a short, catchy title for the plan, on its own line.
Prefer emitting stops via create_date_stop calls (and legs via create_travel_leg).
If you cannot use the tools, respond instead with a single JSON object of the shape
{"planTitle": string, "stops": [{"stopNumber": int, "name": string, "description": string, "address": string, "lat": number, "lng": number, "category": string, "startTime": string, "duration": string}]}.`

func describeDate(vibe string, isAdult bool) string {
	audience := "all-ages"
	if isAdult {
		audience = "adults-only"
	}
	if strings.TrimSpace(vibe) == "" {
		return fmt.Sprintf("%s date", audience)
	}
	return fmt.Sprintf("%s %s date", audience, strings.ToLower(strings.TrimSpace(vibe)))
}

func transportOrDefault(mode string) string {
	if strings.TrimSpace(mode) == "" {
		return "any available transport"
	}
	return strings.ToLower(strings.TrimSpace(mode))
}
