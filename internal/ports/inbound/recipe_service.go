// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/search"
)

// RecipeService defines the use cases for the recipe catalog
type RecipeService interface {
	// Commands
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, id uint) error

	// Queries
	GetRecipe(ctx context.Context, id uint) (*RecipeDTO, error)
	ListRecipes(ctx context.Context) ([]*RecipeDTO, error)
	SearchRecipes(ctx context.Context, query SearchQuery) (*SearchResult, error)
}

// ChartSummarizer buckets a result set and renders one chart per kind.
// An empty collection yields an empty map without rendering anything.
type ChartSummarizer interface {
	Summarize(ctx context.Context, recipes []*recipe.Recipe) (map[chart.Kind]chart.Summary, error)
}

// CreateRecipeCommand contains data for creating a new recipe.
// A blank Difficulty asks for automatic classification.
type CreateRecipeCommand struct {
	Name        string `json:"name" binding:"required,max=120"`
	Ingredients string `json:"ingredients" binding:"required"`
	CookingTime int    `json:"cooking_time" binding:"lte=100000"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard easy medium hard"`
	Picture     string `json:"pic"`
}

// UpdateRecipeCommand replaces a recipe's fields. A blank Difficulty keeps the stored one.
type UpdateRecipeCommand struct {
	ID          uint   `json:"-"`
	Name        string `json:"name" binding:"required,max=120"`
	Ingredients string `json:"ingredients" binding:"required"`
	CookingTime int    `json:"cooking_time" binding:"lte=100000"`
	Difficulty  string `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard easy medium hard"`
	Picture     string `json:"pic"`
}

// SearchQuery carries the raw search parameters as submitted
type SearchQuery struct {
	Params map[string]string
}

// RecipeDTO is the transport representation of a recipe
type RecipeDTO struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Ingredients    string    `json:"ingredients"`
	IngredientList []string  `json:"ingredient_list"`
	CookingTime    int       `json:"cooking_time"`
	Difficulty     string    `json:"difficulty"`
	Picture        string    `json:"pic"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ChartDTO is one rendered summary chart
type ChartDTO struct {
	Kind   string   `json:"kind"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	// Image is the base64 encoded PNG, empty when rendering failed
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// DataURI returns the image as an inline data URI for templates
func (c ChartDTO) DataURI() string {
	if c.Image == "" {
		return ""
	}
	return "data:image/png;base64," + c.Image
}

// NewChartDTO converts a computed summary
func NewChartDTO(s chart.Summary) ChartDTO {
	dto := ChartDTO{
		Kind:   string(s.Kind),
		Title:  chart.StyleFor(s.Kind).Title,
		Labels: s.Series.Labels,
		Values: s.Series.Values,
	}
	if s.Err != nil {
		dto.Error = s.Err.Error()
	} else if len(s.Image) > 0 {
		dto.Image = base64.StdEncoding.EncodeToString(s.Image)
	}
	return dto
}

// SearchResult is what the search page and API render
type SearchResult struct {
	// Form echoes the submitted parameters for re-populating the form
	Form     map[string]string `json:"form"`
	Errors   map[string]string `json:"errors,omitempty"`
	Warnings []search.Warning  `json:"warnings,omitempty"`
	Recipes  []*RecipeDTO      `json:"recipes"`
	Total    int               `json:"total"`
	Charts   []ChartDTO        `json:"charts"`
}

// NoResults reports whether the search matched nothing
func (r *SearchResult) NoResults() bool {
	return r.Total == 0
}

// HasErrors reports whether validation failed
func (r *SearchResult) HasErrors() bool {
	return len(r.Errors) > 0
}
