// Package recipe contains the catalog's recipe aggregate and the
// difficulty classifier that runs when a recipe is first created.
package recipe

import (
	"strings"
	"time"

	"github.com/alchemorsel/catalog/internal/domain/shared"
)

// DefaultPicture is stored when a recipe is created without a picture
const DefaultPicture = "no_picture.jpeg"

// MaxCookingTime is the longest cooking time in minutes a recipe may be saved with
const MaxCookingTime = 100000

// Attributes carries the user supplied fields of a recipe
type Attributes struct {
	Name        string
	Ingredients string
	CookingTime int
	Difficulty  Difficulty
	Picture     string
}

// Recipe is the catalog's aggregate root.
// The identifier is assigned by the record store on first save.
type Recipe struct {
	shared.AggregateRoot

	id          uint
	name        string
	ingredients string
	cookingTime int
	difficulty  Difficulty
	picture     string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewRecipe validates attrs and builds a recipe. When no difficulty is
// supplied it is classified here, once, and never recomputed afterwards.
func NewRecipe(attrs Attributes) (*Recipe, error) {
	attrs.Name = strings.TrimSpace(attrs.Name)
	if err := validate(attrs); err != nil {
		return nil, err
	}

	classified := false
	if attrs.Difficulty == "" {
		attrs.Difficulty = Classify(attrs.CookingTime, attrs.Ingredients)
		classified = true
	}
	if strings.TrimSpace(attrs.Picture) == "" {
		attrs.Picture = DefaultPicture
	}

	now := time.Now().UTC()
	r := &Recipe{
		name:        attrs.Name,
		ingredients: attrs.Ingredients,
		cookingTime: attrs.CookingTime,
		difficulty:  attrs.Difficulty,
		picture:     attrs.Picture,
		createdAt:   now,
		updatedAt:   now,
	}

	r.AddEvent(RecipeCreatedEvent{
		Name:       r.name,
		Difficulty: r.difficulty,
		Classified: classified,
		CreatedAt:  now,
	})

	return r, nil
}

// Restore rebuilds a recipe from stored state without validation or classification
func Restore(id uint, attrs Attributes, createdAt, updatedAt time.Time) *Recipe {
	return &Recipe{
		id:          id,
		name:        attrs.Name,
		ingredients: attrs.Ingredients,
		cookingTime: attrs.CookingTime,
		difficulty:  attrs.Difficulty,
		picture:     attrs.Picture,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Update replaces the editable fields. A blank difficulty keeps the stored
// label; classification is never rerun on update.
func (r *Recipe) Update(attrs Attributes) error {
	attrs.Name = strings.TrimSpace(attrs.Name)
	if err := validate(attrs); err != nil {
		return err
	}

	old := r.difficulty
	r.name = attrs.Name
	r.ingredients = attrs.Ingredients
	r.cookingTime = attrs.CookingTime
	if attrs.Difficulty != "" {
		r.difficulty = attrs.Difficulty
	}
	if strings.TrimSpace(attrs.Picture) != "" {
		r.picture = attrs.Picture
	}
	r.updatedAt = time.Now().UTC()

	r.AddEvent(RecipeUpdatedEvent{
		RecipeID:           r.id,
		PreviousDifficulty: old,
		Difficulty:         r.difficulty,
		UpdatedAt:          r.updatedAt,
	})

	return nil
}

// AssignID records the identifier chosen by the record store
func (r *Recipe) AssignID(id uint) {
	r.id = id
}

// ValidateCookingTime rejects negative minutes. Whether it is applied is a
// deployment decision, so entities do not call it themselves.
func ValidateCookingTime(minutes int) error {
	if minutes < 0 {
		return ErrNegativeCookingTime
	}
	return nil
}

func validate(attrs Attributes) error {
	if attrs.Name == "" {
		return ErrNameRequired
	}
	if strings.TrimSpace(attrs.Ingredients) == "" {
		return ErrIngredientsRequired
	}
	if attrs.CookingTime > MaxCookingTime {
		return ErrCookingTimeTooLong
	}
	if attrs.Difficulty != "" && !attrs.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	return nil
}

// Getters

func (r *Recipe) ID() uint               { return r.id }
func (r *Recipe) Name() string           { return r.name }
func (r *Recipe) Ingredients() string    { return r.ingredients }
func (r *Recipe) CookingTime() int       { return r.cookingTime }
func (r *Recipe) Difficulty() Difficulty { return r.difficulty }
func (r *Recipe) Picture() string        { return r.picture }
func (r *Recipe) CreatedAt() time.Time   { return r.createdAt }
func (r *Recipe) UpdatedAt() time.Time   { return r.updatedAt }

// IngredientList returns the trimmed, non-empty ingredient terms
func (r *Recipe) IngredientList() []string {
	var terms []string
	for _, term := range strings.Split(r.ingredients, ",") {
		if t := strings.TrimSpace(term); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// Attributes returns a copy of the recipe's editable fields
func (r *Recipe) Attributes() Attributes {
	return Attributes{
		Name:        r.name,
		Ingredients: r.ingredients,
		CookingTime: r.cookingTime,
		Difficulty:  r.difficulty,
		Picture:     r.picture,
	}
}
