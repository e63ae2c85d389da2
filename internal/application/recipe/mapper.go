package recipe

import (
	"time"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
)

var timeNow = func() time.Time { return time.Now().UTC() }

func toDTO(r *recipe.Recipe) *inbound.RecipeDTO {
	return &inbound.RecipeDTO{
		ID:             r.ID(),
		Name:           r.Name(),
		Ingredients:    r.Ingredients(),
		IngredientList: r.IngredientList(),
		CookingTime:    r.CookingTime(),
		Difficulty:     r.Difficulty().String(),
		Picture:        r.Picture(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

func toDTOs(recipes []*recipe.Recipe) []*inbound.RecipeDTO {
	dtos := make([]*inbound.RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		dtos = append(dtos, toDTO(r))
	}
	return dtos
}
