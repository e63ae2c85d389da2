package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/catalog/internal/infrastructure/http/templates"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/catalog/internal/infrastructure/security"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/pkg/errors"
	"github.com/alchemorsel/catalog/test/testutils"
)

type HandlersTestSuite struct {
	suite.Suite
	recipes     *testutils.MockRecipeService
	users       *testutils.MockUserService
	tokens      *memory.TokenStore
	authService *security.AuthService
	router      *gin.Engine
	http        *testutils.HTTPAssertions
	token       string
}

func (s *HandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (s *HandlersTestSuite) SetupTest() {
	s.recipes = testutils.NewMockRecipeService()
	s.users = testutils.NewMockUserService()
	s.tokens = memory.NewTokenStore(time.Minute)
	s.authService = security.NewAuthService(config.AuthConfig{
		JWTSecret:     "handlers-test-secret",
		JWTExpiration: time.Hour,
		CookieName:    "catalog_session",
		LoginPath:     "/login",
	}, s.users, s.tokens, zap.NewNop())

	tmpl, err := templates.Parse()
	s.Require().NoError(err)

	mw := middleware.New(&config.Config{}, middleware.NewMetrics(prometheus.NewRegistry()), zap.NewNop())
	s.router = gin.New()
	s.router.SetHTMLTemplate(tmpl)
	s.router.Use(mw.RequestID(), mw.ErrorHandler())
	RegisterRoutes(s.router,
		NewRecipeHandlers(s.recipes, zap.NewNop()),
		NewAuthHandlers(s.authService, zap.NewNop()),
		s.authService,
	)

	s.token, _, err = s.authService.IssueToken(&inbound.UserDTO{ID: 1, Username: "chef"})
	s.Require().NoError(err)
	s.http = testutils.NewHTTPAssertions(s.T())
}

func (s *HandlersTestSuite) TearDownTest() {
	s.NoError(s.tokens.Close())
	s.recipes.AssertExpectations(s.T())
	s.users.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) do(req *http.Request, withCookie bool) *httptest.ResponseRecorder {
	if withCookie {
		req.AddCookie(&http.Cookie{Name: "catalog_session", Value: s.token})
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlersTestSuite) api(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	return s.do(req, false)
}

func sampleResult() *inbound.SearchResult {
	return &inbound.SearchResult{
		Form: map[string]string{"recipe_name": "pasta"},
		Recipes: []*inbound.RecipeDTO{
			{ID: 1, Name: "Pasta al Pomodoro", Difficulty: "Easy", CookingTime: 20},
		},
		Total: 1,
		Charts: []inbound.ChartDTO{
			{Kind: "time-distribution", Title: "Recipes by Cooking Time", Image: "iVBORw0KGgo="},
			{Kind: "time-histogram", Title: "Cooking Time Distribution", Error: "boom"},
		},
	}
}

func (s *HandlersTestSuite) TestSearchPage_RequiresLogin() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/recipes?recipe_name=pasta", nil), false)

	s.http.Redirect(rec, "/login?next=")
	s.recipes.AssertNotCalled(s.T(), "SearchRecipes", mock.Anything, mock.Anything)
}

func (s *HandlersTestSuite) TestSearchPage() {
	s.recipes.On("SearchRecipes", mock.Anything, inbound.SearchQuery{Params: map[string]string{
		"recipe_name": "pasta",
		"difficulty":  "any",
	}}).Return(sampleResult(), nil).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/recipes?recipe_name=pasta&difficulty=any&page=2", nil), true)

	s.Equal(http.StatusOK, rec.Code)
	body := rec.Body.String()
	s.Contains(body, "1 recipe(s) found")
	s.Contains(body, `href="/recipes/1"`)
	s.Contains(body, `value="pasta"`)
	s.Contains(body, `src="data:image/png;base64,iVBORw0KGgo="`)
	s.Contains(body, "Cooking Time Distribution is unavailable.")
	s.Contains(body, "chef")
}

func (s *HandlersTestSuite) TestSearchPage_ValidationErrorsAndNoResults() {
	result := &inbound.SearchResult{
		Form:    map[string]string{"cooking_time_min": "-5"},
		Errors:  map[string]string{"cooking_time_min": "Ensure this value is greater than or equal to 0."},
		Recipes: []*inbound.RecipeDTO{},
		Charts:  []inbound.ChartDTO{},
	}
	s.recipes.On("SearchRecipes", mock.Anything, mock.Anything).Return(result, nil).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/recipes?cooking_time_min=-5", nil), true)

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Ensure this value is greater than or equal to 0.")
	s.Contains(rec.Body.String(), "No recipes match your search.")
}

func (s *HandlersTestSuite) TestDetailPage() {
	s.recipes.On("GetRecipe", mock.Anything, uint(1)).Return(&inbound.RecipeDTO{
		ID: 1, Name: "Tea", IngredientList: []string{"Tea Leaves", "Water"}, Difficulty: "Easy",
	}, nil).Once()
	s.recipes.On("GetRecipe", mock.Anything, uint(9)).Return(nil, errors.NewRecipeNotFoundError(9)).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/recipes/1", nil), true)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "<li>Tea Leaves</li>")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/recipes/9", nil), true)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(httptest.NewRequest(http.MethodGet, "/recipes/abc", nil), true)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlersTestSuite) TestLoginFlow() {
	cmd := inbound.LoginCommand{Username: "chef", Password: testutils.TestPassword}
	s.users.On("Authenticate", mock.Anything, cmd).Return(&inbound.UserDTO{ID: 1, Username: "chef"}, nil).Once()

	rec := s.do(httptest.NewRequest(http.MethodGet, "/login?next=/recipes%3Fdifficulty%3DEasy", nil), false)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `value="/recipes?difficulty=Easy"`)

	form := url.Values{"username": {"chef"}, "password": {testutils.TestPassword}, "next": {"/recipes?difficulty=Easy"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = s.do(req, false)

	s.Equal(http.StatusFound, rec.Code)
	s.Equal("/recipes?difficulty=Easy", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	s.Require().Len(cookies, 1)
	s.Equal("catalog_session", cookies[0].Name)
	s.NotEmpty(cookies[0].Value)
}

func (s *HandlersTestSuite) TestLogin_BadCredentials() {
	cmd := inbound.LoginCommand{Username: "chef", Password: "wrong"}
	s.users.On("Authenticate", mock.Anything, cmd).Return(nil, errors.NewInvalidCredentialsError()).Once()

	form := url.Values{"username": {"chef"}, "password": {"wrong"}, "next": {"https://evil.example"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := s.do(req, false)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.Contains(rec.Body.String(), "Please enter a correct username and password.")
	s.Contains(rec.Body.String(), `value="/recipes"`)
}

func (s *HandlersTestSuite) TestLogout() {
	rec := s.do(httptest.NewRequest(http.MethodPost, "/logout", nil), true)
	s.http.Redirect(rec, "/login")

	rec = s.do(httptest.NewRequest(http.MethodGet, "/recipes", nil), true)
	s.http.Redirect(rec, "/login")
}

func (s *HandlersTestSuite) TestAPISearch() {
	s.recipes.On("SearchRecipes", mock.Anything, inbound.SearchQuery{Params: map[string]string{"ingredients": "tomato"}}).
		Return(sampleResult(), nil).Once()

	rec := s.api(http.MethodGet, "/api/v1/recipes/search?ingredients=tomato", "")

	var result inbound.SearchResult
	s.http.JSONResponse(rec, &result)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal(1, result.Total)
	s.Len(result.Charts, 2)
}

func (s *HandlersTestSuite) TestAPIRequiresToken() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil), false)

	s.Equal(http.StatusUnauthorized, rec.Code)
	s.http.ErrorResponse(rec, errors.CodeUnauthorized)
}

func (s *HandlersTestSuite) TestAPICreate() {
	cmd := inbound.CreateRecipeCommand{Name: "Tea", Ingredients: "tea, water", CookingTime: 5}
	s.recipes.On("CreateRecipe", mock.Anything, cmd).
		Return(&inbound.RecipeDTO{ID: 12, Name: "Tea", Difficulty: "Easy"}, nil).Once()

	rec := s.api(http.MethodPost, "/api/v1/recipes", `{"name":"Tea","ingredients":"tea, water","cooking_time":5}`)

	s.Equal(http.StatusCreated, rec.Code)
	s.Equal("/api/v1/recipes/12", rec.Header().Get("Location"))
	s.Contains(rec.Body.String(), `"difficulty":"Easy"`)
}

func (s *HandlersTestSuite) TestAPICreate_BindingErrors() {
	rec := s.api(http.MethodPost, "/api/v1/recipes", `{"cooking_time":5}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.http.ErrorResponse(rec, errors.CodeValidationFailed)

	rec = s.api(http.MethodPost, "/api/v1/recipes", `{"name":"Tea","ingredients":"tea","difficulty":"Extreme"}`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.api(http.MethodPost, "/api/v1/recipes", `{"name":"Tea","ingredients":"tea","cooking_time":9223372036854775807}`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.http.ErrorResponse(rec, errors.CodeValidationFailed)
	s.recipes.AssertNotCalled(s.T(), "CreateRecipe", mock.Anything, mock.Anything)

	rec = s.api(http.MethodPost, "/api/v1/recipes", `not json`)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.http.ErrorResponse(rec, errors.CodeBadRequest)
}

func (s *HandlersTestSuite) TestAPIUpdateAndDelete() {
	s.recipes.On("UpdateRecipe", mock.Anything, inbound.UpdateRecipeCommand{
		ID: 3, Name: "Tea", Ingredients: "tea", CookingTime: 90,
	}).Return(&inbound.RecipeDTO{ID: 3, Name: "Tea", CookingTime: 90, Difficulty: "Easy"}, nil).Once()
	s.recipes.On("DeleteRecipe", mock.Anything, uint(3)).Return(nil).Once()
	s.recipes.On("DeleteRecipe", mock.Anything, uint(4)).Return(errors.NewRecipeNotFoundError(4)).Once()

	rec := s.api(http.MethodPut, "/api/v1/recipes/3", `{"name":"Tea","ingredients":"tea","cooking_time":90}`)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.api(http.MethodDelete, "/api/v1/recipes/3", "")
	s.Equal(http.StatusNoContent, rec.Code)

	rec = s.api(http.MethodDelete, "/api/v1/recipes/4", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.http.ErrorResponse(rec, errors.CodeRecipeNotFound)
}

func (s *HandlersTestSuite) TestAPILogin() {
	cmd := inbound.LoginCommand{Username: "chef", Password: testutils.TestPassword}
	s.users.On("Authenticate", mock.Anything, cmd).Return(&inbound.UserDTO{ID: 1, Username: "chef"}, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		bytes.NewBufferString(`{"username":"chef","password":"`+testutils.TestPassword+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(req, false)

	var session security.Session
	s.http.JSONResponse(rec, &session)
	s.Equal(http.StatusOK, rec.Code)
	s.NotEmpty(session.Token)
	s.Equal("chef", session.User.Username)
}

func (s *HandlersTestSuite) TestRootRedirect() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/", nil), false)
	s.http.Redirect(rec, "/recipes")
}

func (s *HandlersTestSuite) TestNotFound() {
	rec := s.do(httptest.NewRequest(http.MethodGet, "/pantry", nil), false)
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "page not found")

	rec = s.api(http.MethodGet, "/api/v1/pantry", "")
	s.Equal(http.StatusNotFound, rec.Code)
	s.http.ErrorResponse(rec, errors.CodeNotFound)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
