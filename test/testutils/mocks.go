// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/user"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

var (
	_ outbound.RecipeRepository = (*MockRecipeRepository)(nil)
	_ outbound.UserRepository   = (*MockUserRepository)(nil)
	_ outbound.ChartRenderer    = (*MockChartRenderer)(nil)
	_ outbound.TokenStore       = (*MockTokenStore)(nil)
	_ inbound.ChartSummarizer   = (*MockChartSummarizer)(nil)
	_ inbound.RecipeService     = (*MockRecipeService)(nil)
	_ inbound.UserService       = (*MockUserService)(nil)
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

// NewMockRecipeRepository creates a new mock recipe repository
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{}
}

// FindAll returns every recipe
func (m *MockRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	args := m.Called(ctx)
	recipes, _ := args.Get(0).([]*recipe.Recipe)
	return recipes, args.Error(1)
}

// FindByID finds a recipe by ID
func (m *MockRecipeRepository) FindByID(ctx context.Context, id uint) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*recipe.Recipe)
	return r, args.Error(1)
}

// Create stores a recipe. When the expectation succeeds and the recipe has
// no ID yet, the next sequential ID is assigned like a real store would.
func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	if args.Error(0) == nil && r.ID() == 0 {
		r.AssignID(uint(len(m.Calls)))
	}
	return args.Error(0)
}

// Update updates a recipe
func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// Delete deletes a recipe
func (m *MockRecipeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Count counts recipes
func (m *MockRecipeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository provides a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

// NewMockUserRepository creates a new mock user repository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create stores a user
func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// Update updates a user
func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// FindByUsername finds a user by username
func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

// MockChartRenderer provides a mock implementation of ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

// NewMockChartRenderer creates a new mock renderer
func NewMockChartRenderer() *MockChartRenderer {
	return &MockChartRenderer{}
}

// Render renders a chart
func (m *MockChartRenderer) Render(ctx context.Context, spec outbound.ChartSpec) ([]byte, error) {
	args := m.Called(ctx, spec)
	image, _ := args.Get(0).([]byte)
	return image, args.Error(1)
}

// MockTokenStore provides a mock implementation of TokenStore
type MockTokenStore struct {
	mock.Mock
}

// NewMockTokenStore creates a new mock token store
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// Revoke revokes a token
func (m *MockTokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

// IsRevoked checks a token
func (m *MockTokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

// MockChartSummarizer provides a mock implementation of ChartSummarizer
type MockChartSummarizer struct {
	mock.Mock
}

// NewMockChartSummarizer creates a new mock summarizer
func NewMockChartSummarizer() *MockChartSummarizer {
	return &MockChartSummarizer{}
}

// Summarize summarizes recipes
func (m *MockChartSummarizer) Summarize(ctx context.Context, recipes []*recipe.Recipe) (map[chart.Kind]chart.Summary, error) {
	args := m.Called(ctx, recipes)
	summaries, _ := args.Get(0).(map[chart.Kind]chart.Summary)
	return summaries, args.Error(1)
}

// MockRecipeService provides a mock implementation of the recipe use cases
type MockRecipeService struct {
	mock.Mock
}

// NewMockRecipeService creates a new mock recipe service
func NewMockRecipeService() *MockRecipeService {
	return &MockRecipeService{}
}

// CreateRecipe creates a recipe
func (m *MockRecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.RecipeDTO)
	return dto, args.Error(1)
}

// UpdateRecipe updates a recipe
func (m *MockRecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.RecipeDTO)
	return dto, args.Error(1)
}

// DeleteRecipe deletes a recipe
func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GetRecipe gets a recipe
func (m *MockRecipeService) GetRecipe(ctx context.Context, id uint) (*inbound.RecipeDTO, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*inbound.RecipeDTO)
	return dto, args.Error(1)
}

// ListRecipes lists recipes
func (m *MockRecipeService) ListRecipes(ctx context.Context) ([]*inbound.RecipeDTO, error) {
	args := m.Called(ctx)
	dtos, _ := args.Get(0).([]*inbound.RecipeDTO)
	return dtos, args.Error(1)
}

// SearchRecipes searches recipes
func (m *MockRecipeService) SearchRecipes(ctx context.Context, query inbound.SearchQuery) (*inbound.SearchResult, error) {
	args := m.Called(ctx, query)
	result, _ := args.Get(0).(*inbound.SearchResult)
	return result, args.Error(1)
}

// MockUserService provides a mock implementation of the account use cases
type MockUserService struct {
	mock.Mock
}

// NewMockUserService creates a new mock user service
func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

// Register registers a user
func (m *MockUserService) Register(ctx context.Context, cmd inbound.RegisterCommand) (*inbound.UserDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.UserDTO)
	return dto, args.Error(1)
}

// Authenticate checks credentials
func (m *MockUserService) Authenticate(ctx context.Context, cmd inbound.LoginCommand) (*inbound.UserDTO, error) {
	args := m.Called(ctx, cmd)
	dto, _ := args.Get(0).(*inbound.UserDTO)
	return dto, args.Error(1)
}

// GetUser gets a user
func (m *MockUserService) GetUser(ctx context.Context, id uint) (*inbound.UserDTO, error) {
	args := m.Called(ctx, id)
	dto, _ := args.Get(0).(*inbound.UserDTO)
	return dto, args.Error(1)
}
