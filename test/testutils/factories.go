// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/user"
)

// TestPassword is the password every factory user is created with
const TestPassword = "correct-horse-battery"

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker  *gofakeit.Faker
	nextID uint
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// Ingredients returns n comma separated fake ingredient names
func (f *RecipeFactory) Ingredients(n int) string {
	terms := make([]string, n)
	for i := range terms {
		terms[i] = strings.ToLower(f.faker.Vegetable())
	}
	return strings.Join(terms, ", ")
}

// Attributes returns random but valid recipe attributes
func (f *RecipeFactory) Attributes() recipe.Attributes {
	return recipe.Attributes{
		Name:        f.faker.Dessert(),
		Ingredients: f.Ingredients(f.faker.Number(1, 12)),
		CookingTime: f.faker.Number(1, 180),
	}
}

// CreateRecipe creates a classified recipe with a sequential ID
func (f *RecipeFactory) CreateRecipe() *recipe.Recipe {
	return f.build(f.Attributes())
}

// CreateRecipes creates count recipes with sequential IDs
func (f *RecipeFactory) CreateRecipes(count int) []*recipe.Recipe {
	recipes := make([]*recipe.Recipe, count)
	for i := range recipes {
		recipes[i] = f.CreateRecipe()
	}
	return recipes
}

func (f *RecipeFactory) build(attrs recipe.Attributes) *recipe.Recipe {
	r, err := recipe.NewRecipe(attrs)
	if err != nil {
		panic(err)
	}
	f.nextID++
	r.AssignID(f.nextID)
	r.Events()
	return r
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	id    uint
	attrs recipe.Attributes
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &RecipeBuilder{
		attrs: recipe.Attributes{
			Name:        faker.Dessert(),
			Ingredients: "flour, sugar, eggs",
			CookingTime: 20,
		},
	}
}

// WithID sets the stored ID
func (rb *RecipeBuilder) WithID(id uint) *RecipeBuilder {
	rb.id = id
	return rb
}

// WithName sets the recipe name
func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.attrs.Name = name
	return rb
}

// WithIngredients sets the ingredients text
func (rb *RecipeBuilder) WithIngredients(ingredients string) *RecipeBuilder {
	rb.attrs.Ingredients = ingredients
	return rb
}

// WithCookingTime sets the cooking time in minutes
func (rb *RecipeBuilder) WithCookingTime(minutes int) *RecipeBuilder {
	rb.attrs.CookingTime = minutes
	return rb
}

// WithDifficulty sets an explicit difficulty
func (rb *RecipeBuilder) WithDifficulty(d recipe.Difficulty) *RecipeBuilder {
	rb.attrs.Difficulty = d
	return rb
}

// Build creates the recipe, panicking on invalid attributes
func (rb *RecipeBuilder) Build() *recipe.Recipe {
	r, err := recipe.NewRecipe(rb.attrs)
	if err != nil {
		panic(err)
	}
	if rb.id != 0 {
		r.AssignID(rb.id)
	}
	r.Events()
	return r
}

// UserFactory provides methods to create test users
type UserFactory struct {
	faker *gofakeit.Faker
}

// NewUserFactory creates a new user factory with seeded faker
func NewUserFactory(seed int64) *UserFactory {
	return &UserFactory{faker: gofakeit.New(seed)}
}

// CreateUser creates a user with TestPassword at the minimum bcrypt cost
func (f *UserFactory) CreateUser() *user.User {
	u, err := user.NewUser(f.faker.Username(), TestPassword, 4)
	if err != nil {
		panic(err)
	}
	return u
}
