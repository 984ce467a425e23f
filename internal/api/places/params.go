package places

import "strings"

// DefaultRadiusMeters is used for unrecognized transport modes.
const DefaultRadiusMeters = 3000

var transportRadius = map[string]int{
	"walking": 2000,
	"transit": 5000,
	"driving": 10000,
}

// RadiusForTransport maps a transport mode to a search radius in meters.
// Unrecognized modes yield the default; this never fails.
func RadiusForTransport(mode string) int {
	if radius, ok := transportRadius[strings.ToLower(strings.TrimSpace(mode))]; ok {
		return radius
	}
	return DefaultRadiusMeters
}

// Vibe keyword tables. Each entry is a disjunctive set of provider search
// terms reflecting that vibe's character, pipe-joined the way the search
// provider expects. Extend by adding rows, not code.
var adultVibeKeywords = map[string]string{
	"romantic":    "wine bar|cocktail lounge|rooftop bar|fine dining",
	"adventurous": "escape room|climbing gym|arcade bar|karaoke",
	"artsy":       "art gallery|live music venue|jazz bar|museum",
	"foodie":      "gastropub|brewery|food market|tapas",
	"casual":      "pub|board game cafe|bowling alley|beer garden",
}

var allAgesVibeKeywords = map[string]string{
	"romantic":    "scenic viewpoint|botanical garden|dessert cafe|waterfront",
	"adventurous": "hiking trail|adventure park|arcade|mini golf",
	"artsy":       "art gallery|museum|street art|craft workshop",
	"foodie":      "street food|famous restaurant|dessert shop|food court",
	"casual":      "cafe|park|ice cream shop|promenade",
}

const (
	adultFallbackKeyword   = "point of interest|bar|restaurant"
	allAgesFallbackKeyword = "point of interest|cafe|park"

	adultFoodKeyword   = "highly rated restaurant|gastropub"
	allAgesFoodKeyword = "highly rated restaurant|street food"

	adultAmbianceKeyword   = "scenic spot|rooftop view|landmark"
	allAgesAmbianceKeyword = "scenic spot|landmark|viewpoint"
)

// KeywordForVibe returns the primary search keyword for a vibe, picking the
// adult or all-ages table. Unrecognized vibes fall back to a generic keyword
// for that age bucket.
func KeywordForVibe(vibe string, isAdult bool) string {
	table := allAgesVibeKeywords
	fallback := allAgesFallbackKeyword
	if isAdult {
		table = adultVibeKeywords
		fallback = adultFallbackKeyword
	}
	if kw, ok := table[strings.ToLower(strings.TrimSpace(vibe))]; ok {
		return kw
	}
	return fallback
}

// FoodKeyword returns the supplemental food-search keyword for an age bucket.
func FoodKeyword(isAdult bool) string {
	if isAdult {
		return adultFoodKeyword
	}
	return allAgesFoodKeyword
}

// AmbianceKeyword returns the supplemental ambiance-search keyword for an
// age bucket.
func AmbianceKeyword(isAdult bool) string {
	if isAdult {
		return adultAmbianceKeyword
	}
	return allAgesAmbianceKeyword
}
