package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrNameRequired        = errors.New("recipe name is required")
	ErrIngredientsRequired = errors.New("recipe ingredients are required")
	ErrInvalidDifficulty   = errors.New("difficulty must be one of Easy, Medium or Hard")
	ErrNegativeCookingTime = errors.New("cooking time must be greater than or equal to 0")
	ErrCookingTimeTooLong  = errors.New("cooking time must be at most 100000 minutes")

	// Lookup errors
	ErrRecipeNotFound = errors.New("recipe not found")
)
