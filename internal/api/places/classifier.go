package places

import "github.com/Chouhan705/DateMapz/internal/types"

// classifierRule maps a set of provider tags to one application category.
// Rules are evaluated in order; a venue often carries several overlapping
// tags and only the first matching rule governs.
type classifierRule struct {
	category types.Category
	tags     map[string]struct{}
}

func tagSet(tags ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}

// Priority: bar/nightlife > cafe > restaurant > park/attraction > retail >
// cultural/entertainment > default.
var classifierRules = []classifierRule{
	{types.CategoryBar, tagSet("bar", "night_club", "pub")},
	{types.CategoryCafe, tagSet("cafe", "bakery", "coffee_shop")},
	{types.CategoryFood, tagSet("restaurant", "food", "meal_takeaway", "meal_delivery")},
	{types.CategoryPark, tagSet("park", "tourist_attraction", "natural_feature", "amusement_park", "zoo", "aquarium")},
	{types.CategoryShop, tagSet("store", "shopping_mall", "clothing_store", "book_store", "department_store")},
	{types.CategoryActivity, tagSet("museum", "art_gallery", "movie_theater", "bowling_alley", "stadium", "spa")},
}

// ClassifyTags maps a provider's raw tags to one application category.
// Total: an unmatched tag list falls through to the Activity catch-all.
func ClassifyTags(providerTags []string) types.Category {
	for _, rule := range classifierRules {
		for _, tag := range providerTags {
			if _, ok := rule.tags[tag]; ok {
				return rule.category
			}
		}
	}
	return types.CategoryActivity
}
