// Package handlers provides the HTML pages and JSON API of the recipe catalog
package handlers

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/security"
	"github.com/alchemorsel/catalog/pkg/errors"
)

// page builds template data with the values every page's layout needs
func page(c *gin.Context, title string, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["Title"] = title
	data["Username"] = security.CurrentUsername(c)
	return data
}

// renderErrorPage shows err as an HTML error page with its HTTP status
func renderErrorPage(c *gin.Context, logger *zap.Logger, err error) {
	appErr := errors.Wrap(err, "An unexpected error occurred")
	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		logger.Error("Page failed",
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		message = "Something went wrong. Please try again later."
	}

	c.HTML(status, "error.html", page(c, http.StatusText(status), gin.H{
		"Status":  status,
		"Message": message,
	}))
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewBadRequestError("Invalid recipe id")
	}
	return uint(id), nil
}

// bindingError converts gin binding failures to a validation AppError
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.NewBadRequestError("Malformed request body").WithCause(err)
	}

	fields := make([]errors.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, errors.ValidationError{
			Field:   fe.Field(),
			Message: "failed on the '" + fe.Tag() + "' rule",
		})
	}
	return errors.NewValidationErrors(fields)
}
