package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_StatusCode(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NewValidationError("bad"), http.StatusBadRequest},
		{NewInvalidCredentialsError(), http.StatusUnauthorized},
		{NewRecipeNotFoundError(4), http.StatusNotFound},
		{NewUserNotFoundError(7), http.StatusNotFound},
		{NewUsernameAlreadyExistsError("chef"), http.StatusConflict},
		{NewTooManyRequestsError(), http.StatusTooManyRequests},
		{NewDatabaseError("load recipes", stderrors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
		})
	}
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	cause := stderrors.New("disk full")
	wrapped := Wrap(cause, "save failed")
	require.NotNil(t, wrapped)
	assert.Equal(t, CodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, cause)

	notFound := NewRecipeNotFoundError(9)
	assert.Same(t, notFound, Wrap(fmt.Errorf("lookup: %w", notFound), "other"))
	assert.True(t, Is(fmt.Errorf("lookup: %w", notFound), CodeRecipeNotFound))
	assert.Equal(t, CodeInternal, GetCode(cause))
}

func TestToErrorResponse(t *testing.T) {
	resp := ToErrorResponse(NewRecipeNotFoundError(3), "req-1")

	assert.Equal(t, CodeRecipeNotFound, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Equal(t, uint(3), resp.Error.Metadata["recipe_id"])
	assert.NotEmpty(t, resp.Error.Timestamp)
}

func TestValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{
		{Field: "name", Message: "is required"},
		{Field: "cooking_time", Message: "must be >= 0"},
	})

	assert.Equal(t, "name: is required; cooking_time: must be >= 0", err.Details)
	assert.Equal(t, http.StatusBadRequest, err.StatusCode())
}
