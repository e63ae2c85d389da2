package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/alchemorsel/catalog/internal/infrastructure/security"
	"github.com/alchemorsel/catalog/pkg/errors"
)

// RegisterRoutes mounts the login surface, the recipe pages and the JSON API
func RegisterRoutes(r *gin.Engine, recipes *RecipeHandlers, auth *AuthHandlers, authService *security.AuthService) {
	r.NoRoute(recipes.NotFound)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, defaultLanding) })

	r.GET("/login", auth.LoginPage)
	r.POST("/login", auth.Login)
	r.POST("/logout", auth.Logout)

	pages := r.Group("/recipes", authService.RequireAuthenticatedUser())
	{
		pages.GET("", recipes.SearchPage)
		pages.GET("/:id", recipes.DetailPage)
	}

	api := r.Group("/api/v1")
	api.POST("/auth/login", auth.APILogin)

	protected := api.Group("", authService.RequireAPIUser())
	{
		protected.POST("/auth/logout", auth.APILogout)
		protected.GET("/recipes", recipes.List)
		protected.POST("/recipes", recipes.Create)
		protected.GET("/recipes/search", recipes.Search)
		protected.GET("/recipes/:id", recipes.Get)
		protected.PUT("/recipes/:id", recipes.Update)
		protected.DELETE("/recipes/:id", recipes.Delete)
	}
}

// NotFound answers unknown API paths with JSON and everything else with the error page
func (h *RecipeHandlers) NotFound(c *gin.Context) {
	err := errors.NewNotFoundError("page")
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		_ = c.Error(err)
		return
	}
	renderErrorPage(c, h.logger, err)
}
