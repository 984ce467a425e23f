package planner

import "google.golang.org/genai"

// Tags of the structured calls the model is asked to emit, one call per
// stop or travel leg.
const (
	ToolCreateDateStop  = "create_date_stop"
	ToolCreateTravelLeg = "create_travel_leg"
)

// PlanTools declares the callable schemas offered to the model. The model's
// adherence is validated again at the assembler boundary; these schemas are
// guidance, not a guarantee.
func PlanTools() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name:        ToolCreateDateStop,
			Description: "Create one stop of the date itinerary. Call once per stop, numbering stops from 1 in visit order.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"stopNumber":  {Type: genai.TypeInteger, Description: "1-based position of this stop in the itinerary"},
					"name":        {Type: genai.TypeString, Description: "Venue name"},
					"description": {Type: genai.TypeString, Description: "2-3 sentences on what to do here and why it fits the date"},
					"address":     {Type: genai.TypeString, Description: "Street address of the venue"},
					"lat":         {Type: genai.TypeNumber, Description: "Latitude in decimal degrees"},
					"lng":         {Type: genai.TypeNumber, Description: "Longitude in decimal degrees"},
					"category":    {Type: genai.TypeString, Description: "One of: Food, Cafe, Bar, Activity, Park, Shop"},
					"startTime":   {Type: genai.TypeString, Description: "Suggested arrival time, e.g. '7:00 PM'"},
					"duration":    {Type: genai.TypeString, Description: "Suggested time to spend, e.g. '1 hour'"},
				},
				Required: []string{"stopNumber", "name", "description", "address", "lat", "lng", "category", "startTime", "duration"},
			},
		},
		{
			Name:        ToolCreateTravelLeg,
			Description: "Create the travel segment between two consecutive stops. Call once per leg; the last stop has no outgoing leg.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"fromStop":      {Type: genai.TypeInteger, Description: "stopNumber of the departure stop"},
					"toStop":        {Type: genai.TypeInteger, Description: "stopNumber of the arrival stop"},
					"transportMode": {Type: genai.TypeString, Description: "How to travel this leg, e.g. 'Walking'"},
					"travelTime":    {Type: genai.TypeString, Description: "Estimated travel time, e.g. '10 minutes'"},
				},
				Required: []string{"fromStop", "toStop", "transportMode", "travelTime"},
			},
		},
	}
}
