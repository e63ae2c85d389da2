package search

import (
	"strings"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
)

// Filter returns the recipes matching every active criterion, in input order.
// With no active criteria the input slice itself is returned.
func Filter(recipes []*recipe.Recipe, c Criteria) []*recipe.Recipe {
	if c.IsEmpty() {
		return recipes
	}

	name := strings.ToLower(c.Name)
	terms := make([]string, len(c.Terms))
	for i, t := range c.Terms {
		terms[i] = strings.ToLower(t)
	}

	matched := make([]*recipe.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if name != "" && !strings.Contains(strings.ToLower(r.Name()), name) {
			continue
		}
		if len(terms) > 0 && !containsAny(strings.ToLower(r.Ingredients()), terms) {
			continue
		}
		if c.MinCookingTime != nil && r.CookingTime() < *c.MinCookingTime {
			continue
		}
		if c.MaxCookingTime != nil && r.CookingTime() > *c.MaxCookingTime {
			continue
		}
		if c.Difficulty != "" && r.Difficulty() != c.Difficulty {
			continue
		}
		matched = append(matched, r)
	}
	return matched
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}
