package types

import "errors"

var (
	// ErrLocationNotFound means forward geocoding produced no usable match.
	ErrLocationNotFound = errors.New("location not found")
	// ErrInsufficientCandidates means the nearby search returned too few
	// venues to build a plan from; surfaced before any AI call is made.
	ErrInsufficientCandidates = errors.New("insufficient candidate locations")
	// ErrNoValidPlan means the AI returned fewer valid stops than the mode
	// requires.
	ErrNoValidPlan = errors.New("AI failed to generate a valid plan")
	// ErrNoJSONFound means the AI's text response carried no parseable JSON
	// object.
	ErrNoJSONFound = errors.New("no JSON object found in AI response")
)
