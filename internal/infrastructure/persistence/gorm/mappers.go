package gorm

import (
	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/user"
)

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:          r.ID(),
		Name:        r.Name(),
		Ingredients: r.Ingredients(),
		CookingTime: r.CookingTime(),
		Difficulty:  r.Difficulty().String(),
		Picture:     r.Picture(),
		CreatedAt:   r.CreatedAt(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model back to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Restore(m.ID, recipe.Attributes{
		Name:        m.Name,
		Ingredients: m.Ingredients,
		CookingTime: m.CookingTime,
		Difficulty:  recipe.Difficulty(m.Difficulty),
		Picture:     m.Picture,
	}, m.CreatedAt, m.UpdatedAt)
}

// UserToModel converts a domain user to its GORM model
func UserToModel(u *user.User) *UserModel {
	return &UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		PasswordHash: u.PasswordHash(),
		IsActive:     u.IsActive(),
		LastLoginAt:  u.LastLoginAt(),
		CreatedAt:    u.CreatedAt(),
	}
}

// ModelToUser converts a GORM model back to a domain user
func ModelToUser(m *UserModel) *user.User {
	return user.Restore(m.ID, m.Username, m.PasswordHash, m.IsActive, m.CreatedAt, m.LastLoginAt)
}
