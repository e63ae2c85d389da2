// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/user"
)

// RecipeRepository is the recipe record store
type RecipeRepository interface {
	// FindAll returns every recipe in identifier order
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	FindByID(ctx context.Context, id uint) (*recipe.Recipe, error)
	// Create stores a new recipe and assigns its identifier
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// UserRepository stores the accounts used by the authentication adapter
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uint) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

// TokenStore remembers revoked session tokens until they would have expired
type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
