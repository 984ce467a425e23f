package planner

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	generativeAI "github.com/Chouhan705/DateMapz/internal/api/generative_ai"
	"github.com/Chouhan705/DateMapz/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func stopCall(num float64, name string) generativeAI.ToolCall {
	return generativeAI.ToolCall{
		Name: ToolCreateDateStop,
		Args: map[string]any{
			"stopNumber":  num,
			"name":        name,
			"description": "A lovely place to linger.",
			"address":     name + " Street 1",
			"lat":         19.2,
			"lng":         72.9,
			"category":    "Cafe",
			"startTime":   "7:00 PM",
			"duration":    "1 hour",
		},
	}
}

func legCall(from, to float64) generativeAI.ToolCall {
	return generativeAI.ToolCall{
		Name: ToolCreateTravelLeg,
		Args: map[string]any{
			"fromStop":      from,
			"toStop":        to,
			"transportMode": "Walking",
			"travelTime":    "10 minutes",
		},
	}
}

func TestAssembleFromCalls_SortsByStopNumber(t *testing.T) {
	a := NewAssembler(testLogger())
	calls := []generativeAI.ToolCall{
		stopCall(3, "Third"),
		stopCall(1, "First"),
		stopCall(2, "Second"),
	}

	itinerary, err := a.AssembleFromCalls(context.Background(), calls, "A Night Out\nEnjoy!", "romantic", 2)
	require.NoError(t, err)

	require.Len(t, itinerary.Stops, 3)
	assert.Equal(t, "First", itinerary.Stops[0].Name)
	assert.Equal(t, "Second", itinerary.Stops[1].Name)
	assert.Equal(t, "Third", itinerary.Stops[2].Name)
}

func TestAssembleFromCalls_AttachesLegsByFromStop(t *testing.T) {
	a := NewAssembler(testLogger())
	// Legs arrive out of order relative to stops.
	calls := []generativeAI.ToolCall{
		legCall(2, 3),
		stopCall(1, "First"),
		stopCall(3, "Third"),
		legCall(1, 2),
		stopCall(2, "Second"),
	}

	itinerary, err := a.AssembleFromCalls(context.Background(), calls, "Title", "casual", 2)
	require.NoError(t, err)

	require.Len(t, itinerary.Stops, 3)
	require.NotNil(t, itinerary.Stops[0].TravelToNext)
	assert.Equal(t, 2, itinerary.Stops[0].TravelToNext.ToStop)
	require.NotNil(t, itinerary.Stops[1].TravelToNext)
	assert.Equal(t, 3, itinerary.Stops[1].TravelToNext.ToStop)
	assert.Nil(t, itinerary.Stops[2].TravelToNext, "last stop has no outgoing leg")
}

func TestAssembleFromCalls_MissingLegTolerated(t *testing.T) {
	a := NewAssembler(testLogger())
	calls := []generativeAI.ToolCall{stopCall(1, "First"), stopCall(2, "Second")}

	itinerary, err := a.AssembleFromCalls(context.Background(), calls, "Title", "casual", 2)
	require.NoError(t, err)
	assert.Nil(t, itinerary.Stops[0].TravelToNext)
}

func TestAssembleFromCalls_TooFewStops(t *testing.T) {
	a := NewAssembler(testLogger())
	calls := []generativeAI.ToolCall{stopCall(1, "Lonely")}

	_, err := a.AssembleFromCalls(context.Background(), calls, "Title", "casual", 2)
	assert.ErrorIs(t, err, types.ErrNoValidPlan)
}

func TestAssembleFromCalls_DropsMalformedStop(t *testing.T) {
	a := NewAssembler(testLogger())
	bad := generativeAI.ToolCall{
		Name: ToolCreateDateStop,
		Args: map[string]any{"stopNumber": 2.0, "name": "No Coordinates"},
	}
	calls := []generativeAI.ToolCall{stopCall(1, "First"), bad, stopCall(3, "Third")}

	itinerary, err := a.AssembleFromCalls(context.Background(), calls, "Title", "casual", 2)
	require.NoError(t, err)
	assert.Len(t, itinerary.Stops, 2)
}

func TestAssembleFromCalls_TitleFromFirstLine(t *testing.T) {
	a := NewAssembler(testLogger())
	calls := []generativeAI.ToolCall{stopCall(1, "First"), stopCall(2, "Second")}

	itinerary, err := a.AssembleFromCalls(context.Background(), calls, "\n\n  **Sunset & Snacks**  \nHave fun.", "casual", 2)
	require.NoError(t, err)
	assert.Equal(t, "Sunset & Snacks", itinerary.PlanTitle)
}

func TestAssembleFromCalls_TitleFallback(t *testing.T) {
	a := NewAssembler(testLogger())
	calls := []generativeAI.ToolCall{stopCall(1, "First"), stopCall(2, "Second")}

	itinerary, err := a.AssembleFromCalls(context.Background(), calls, "   ", "Foodie", 2)
	require.NoError(t, err)
	assert.Equal(t, "A Great Foodie Date", itinerary.PlanTitle)
}

func TestAssembleFromJSON_ExtractsEmbeddedObject(t *testing.T) {
	a := NewAssembler(testLogger())
	text := `blah {"planTitle":"X","stops":[{"lat":"12.3","lng":"45.6"}]} trailing`

	itinerary, err := a.AssembleFromJSON(context.Background(), text, "")
	require.NoError(t, err)

	assert.Equal(t, "X", itinerary.PlanTitle)
	require.Len(t, itinerary.Stops, 1)
	assert.InDelta(t, 12.3, itinerary.Stops[0].Lat, 1e-9, "string coordinates coerced to numbers")
	assert.InDelta(t, 45.6, itinerary.Stops[0].Lng, 1e-9)
	assert.Equal(t, types.CategoryActivity, itinerary.Stops[0].Category, "missing category defaults")
}

func TestAssembleFromJSON_NoJSONObject(t *testing.T) {
	a := NewAssembler(testLogger())

	_, err := a.AssembleFromJSON(context.Background(), "sorry, I cannot help with that", "")
	assert.ErrorIs(t, err, types.ErrNoJSONFound)
}

func TestAssembleFromJSON_MalformedJSON(t *testing.T) {
	a := NewAssembler(testLogger())

	_, err := a.AssembleFromJSON(context.Background(), `{"planTitle": "broken`, "")
	assert.Error(t, err)
}

func TestAssembleFromJSON_FiltersBadCoordinates(t *testing.T) {
	a := NewAssembler(testLogger())
	text := `{"planTitle":"Mixed","stops":[
		{"name":"Bad","lat":"not-a-number","lng":"45.6"},
		{"name":"Good","lat":1.5,"lng":2.5}
	]}`

	itinerary, err := a.AssembleFromJSON(context.Background(), text, "")
	require.NoError(t, err)
	require.Len(t, itinerary.Stops, 1)
	assert.Equal(t, "Good", itinerary.Stops[0].Name)
}

func TestAssembleFromJSON_AllStopsDroppedFails(t *testing.T) {
	a := NewAssembler(testLogger())
	text := `{"planTitle":"Empty","stops":[{"name":"Bad","lat":"not-a-number","lng":"x"}]}`

	_, err := a.AssembleFromJSON(context.Background(), text, "")
	assert.ErrorIs(t, err, types.ErrNoValidPlan)
}

func TestAssembleFromJSON_OrdersByStopNumber(t *testing.T) {
	a := NewAssembler(testLogger())
	text := `{"planTitle":"Ordered","stops":[
		{"name":"B","stopNumber":2,"lat":1,"lng":1},
		{"name":"A","stopNumber":1,"lat":1,"lng":1}
	]}`

	itinerary, err := a.AssembleFromJSON(context.Background(), text, "")
	require.NoError(t, err)
	assert.Equal(t, "A", itinerary.Stops[0].Name)
	assert.Equal(t, "B", itinerary.Stops[1].Name)
}
