// Package search validates raw search parameters and narrows a recipe
// collection with them. It keeps no state between calls.
package search

import (
	"strconv"
	"strings"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
)

// Raw parameter names accepted by Validate
const (
	ParamRecipeName     = "recipe_name"
	ParamIngredients    = "ingredients"
	ParamCookingTimeMin = "cooking_time_min"
	ParamCookingTimeMax = "cooking_time_max"
	ParamDifficulty     = "difficulty"
)

// AnyDifficulty disables the difficulty filter
const AnyDifficulty = "any"

// Criteria is the validated, typed form of the search parameters
type Criteria struct {
	Name           string
	Ingredients    string
	Terms          []string
	MinCookingTime *int
	MaxCookingTime *int
	Difficulty     recipe.Difficulty

	// Warnings are non-fatal notes about the input, such as over-length text
	Warnings []Warning
}

// Warning describes input that was accepted but is worth pointing out
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IsEmpty reports whether no criterion is active
func (c Criteria) IsEmpty() bool {
	return c.Name == "" &&
		len(c.Terms) == 0 &&
		c.MinCookingTime == nil &&
		c.MaxCookingTime == nil &&
		c.Difficulty == ""
}

// Values converts the criteria back into raw parameters, omitting inactive ones
func (c Criteria) Values() map[string]string {
	values := make(map[string]string)
	if c.Name != "" {
		values[ParamRecipeName] = c.Name
	}
	if len(c.Terms) > 0 {
		values[ParamIngredients] = c.Ingredients
	}
	if c.MinCookingTime != nil {
		values[ParamCookingTimeMin] = strconv.Itoa(*c.MinCookingTime)
	}
	if c.MaxCookingTime != nil {
		values[ParamCookingTimeMax] = strconv.Itoa(*c.MaxCookingTime)
	}
	if c.Difficulty != "" {
		values[ParamDifficulty] = string(c.Difficulty)
	}
	return values
}

// SplitTerms splits ingredient text on commas, dropping blank terms
func SplitTerms(ingredients string) []string {
	var terms []string
	for _, term := range strings.Split(ingredients, ",") {
		if t := strings.TrimSpace(term); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
