package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/pkg/errors"
)

// RecipeAssertions provides recipe-specific assertion methods
type RecipeAssertions struct {
	t *testing.T
}

// NewRecipeAssertions creates a new recipe assertions helper
func NewRecipeAssertions(t *testing.T) *RecipeAssertions {
	return &RecipeAssertions{t: t}
}

// ValidRecipe asserts that a recipe satisfies the entity invariants
func (ra *RecipeAssertions) ValidRecipe(r *recipe.Recipe, msgAndArgs ...interface{}) {
	require.NotNil(ra.t, r, "Recipe should not be nil")
	assert.NotEmpty(ra.t, r.Name(), msgAndArgs...)
	assert.NotEmpty(ra.t, r.Ingredients(), msgAndArgs...)
	assert.True(ra.t, r.Difficulty().IsValid(), "difficulty %q should be valid", r.Difficulty())
	assert.NotEmpty(ra.t, r.Picture(), msgAndArgs...)
}

// IDs asserts the recipe identifiers in order
func (ra *RecipeAssertions) IDs(recipes []*recipe.Recipe, expected ...uint) {
	ids := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		ids = append(ids, r.ID())
	}
	assert.Equal(ra.t, expected, ids)
}

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(rec *httptest.ResponseRecorder, expectedCode int, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, rec, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, rec.Code, msgAndArgs...)
}

// JSONResponse asserts that the response is valid JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(rec *httptest.ResponseRecorder, target interface{}) {
	require.NotNil(ha.t, rec, "Response should not be nil")

	contentType := rec.Header().Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)

	require.NoError(ha.t, json.Unmarshal(rec.Body.Bytes(), target), "Response should be valid JSON")
}

// ErrorResponse asserts that the response is an API error with the given code
func (ha *HTTPAssertions) ErrorResponse(rec *httptest.ResponseRecorder, expectedCode errors.ErrorCode) {
	var resp errors.ErrorResponse
	ha.JSONResponse(rec, &resp)
	assert.Equal(ha.t, expectedCode, resp.Error.Code)
}

// Redirect asserts a redirect to a location starting with prefix
func (ha *HTTPAssertions) Redirect(rec *httptest.ResponseRecorder, prefix string) {
	assert.Equal(ha.t, http.StatusFound, rec.Code)
	assert.True(ha.t, strings.HasPrefix(rec.Header().Get("Location"), prefix),
		"Location %q should start with %q", rec.Header().Get("Location"), prefix)
}

// SecurityHeaders asserts that security headers are present
func (ha *HTTPAssertions) SecurityHeaders(rec *httptest.ResponseRecorder) {
	securityHeaders := []string{
		"X-Content-Type-Options",
		"X-Frame-Options",
		"Referrer-Policy",
		"Content-Security-Policy",
	}

	for _, header := range securityHeaders {
		assert.NotEmpty(ha.t, rec.Header().Get(header), "Security header %s should be present", header)
	}
}
