package recipe

import (
	"time"
)

// RecipeCreatedEvent is raised when a new recipe is created
type RecipeCreatedEvent struct {
	Name       string
	Difficulty Difficulty
	// Classified is true when the difficulty was derived rather than supplied
	Classified bool
	CreatedAt  time.Time
}

func (e RecipeCreatedEvent) EventName() string {
	return "recipe.created"
}

func (e RecipeCreatedEvent) OccurredAt() time.Time {
	return e.CreatedAt
}

// RecipeUpdatedEvent is raised when a recipe's fields are replaced
type RecipeUpdatedEvent struct {
	RecipeID           uint
	PreviousDifficulty Difficulty
	Difficulty         Difficulty
	UpdatedAt          time.Time
}

func (e RecipeUpdatedEvent) EventName() string {
	return "recipe.updated"
}

func (e RecipeUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// RecipeDeletedEvent is raised by the application layer after a delete succeeds
type RecipeDeletedEvent struct {
	RecipeID  uint
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string {
	return "recipe.deleted"
}

func (e RecipeDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
