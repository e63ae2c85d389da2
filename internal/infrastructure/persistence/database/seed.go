package database

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/user"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// SampleRecipes are inserted by Seed into an empty catalog. Difficulty is
// left blank so each one is classified on creation.
var SampleRecipes = []recipe.Attributes{
	{Name: "Tea", Ingredients: "Tea Leaves, Sugar, Water", CookingTime: 5},
	{Name: "Pasta al Pomodoro", Ingredients: "pasta, tomato sauce, cheese, basil", CookingTime: 20},
	{Name: "Margherita Pizza", Ingredients: "flour, water, yeast, salt, tomato, mozzarella, basil", CookingTime: 45},
	{Name: "Beef Stew", Ingredients: "beef, potatoes, carrots, onion, celery, stock, thyme", CookingTime: 180},
	{Name: "Omelette", Ingredients: "eggs, butter, salt, pepper", CookingTime: 10},
	{Name: "Risotto", Ingredients: "arborio rice, stock, onion, parmesan, butter, white wine", CookingTime: 35},
}

// Seed inserts the sample recipes when the catalog is empty and creates the
// default user when one is configured and missing
func Seed(ctx context.Context, recipes outbound.RecipeRepository, users outbound.UserRepository,
	username, password string, bcryptCost int, log *zap.Logger) error {
	count, err := recipes.Count(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		for _, attrs := range SampleRecipes {
			r, err := recipe.NewRecipe(attrs)
			if err != nil {
				return fmt.Errorf("sample recipe %q: %w", attrs.Name, err)
			}
			if err := recipes.Create(ctx, r); err != nil {
				return err
			}
		}
		log.Info("Seeded sample recipes", zap.Int("count", len(SampleRecipes)))
	}

	if username == "" || password == "" {
		return nil
	}

	_, err = users.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, user.ErrUserNotFound):
		return err
	}

	u, err := user.NewUser(username, password, bcryptCost)
	if err != nil {
		return fmt.Errorf("default user: %w", err)
	}
	if err := users.Create(ctx, u); err != nil {
		return err
	}
	log.Info("Created default user", zap.String("username", username))
	return nil
}
