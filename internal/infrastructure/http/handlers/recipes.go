package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/search"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
)

var searchParams = []string{
	search.ParamRecipeName,
	search.ParamIngredients,
	search.ParamCookingTimeMin,
	search.ParamCookingTimeMax,
	search.ParamDifficulty,
}

// RecipeHandlers serves the recipe pages and API
type RecipeHandlers struct {
	recipeService inbound.RecipeService
	logger        *zap.Logger
}

// NewRecipeHandlers creates recipe handlers
func NewRecipeHandlers(recipeService inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipeService: recipeService,
		logger:        logger.Named("recipe-handlers"),
	}
}

// searchQuery collects the recognised search parameters from the URL
func searchQuery(c *gin.Context) inbound.SearchQuery {
	params := make(map[string]string, len(searchParams))
	for _, name := range searchParams {
		if value, ok := c.GetQuery(name); ok {
			params[name] = value
		}
	}
	return inbound.SearchQuery{Params: params}
}

// SearchPage handles GET /recipes
func (h *RecipeHandlers) SearchPage(c *gin.Context) {
	result, err := h.recipeService.SearchRecipes(c.Request.Context(), searchQuery(c))
	if err != nil {
		renderErrorPage(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "recipes.html", page(c, "Recipes", gin.H{
		"Result":       result,
		"Difficulties": recipe.Difficulties(),
	}))
}

// DetailPage handles GET /recipes/:id
func (h *RecipeHandlers) DetailPage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		renderErrorPage(c, h.logger, err)
		return
	}

	dto, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		renderErrorPage(c, h.logger, err)
		return
	}

	c.HTML(http.StatusOK, "detail.html", page(c, dto.Name, gin.H{"Recipe": dto}))
}

// Search handles GET /api/v1/recipes/search
func (h *RecipeHandlers) Search(c *gin.Context) {
	result, err := h.recipeService.SearchRecipes(c.Request.Context(), searchQuery(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// List handles GET /api/v1/recipes
func (h *RecipeHandlers) List(c *gin.Context) {
	recipes, err := h.recipeService.ListRecipes(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "total": len(recipes)})
}

// Create handles POST /api/v1/recipes
func (h *RecipeHandlers) Create(c *gin.Context) {
	var cmd inbound.CreateRecipeCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		_ = c.Error(bindingError(err))
		return
	}

	dto, err := h.recipeService.CreateRecipe(c.Request.Context(), cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/recipes/%d", dto.ID))
	c.JSON(http.StatusCreated, dto)
}

// Get handles GET /api/v1/recipes/:id
func (h *RecipeHandlers) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	dto, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Update handles PUT /api/v1/recipes/:id
func (h *RecipeHandlers) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var cmd inbound.UpdateRecipeCommand
	if err := c.ShouldBindJSON(&cmd); err != nil {
		_ = c.Error(bindingError(err))
		return
	}
	cmd.ID = id

	dto, err := h.recipeService.UpdateRecipe(c.Request.Context(), cmd)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// Delete handles DELETE /api/v1/recipes/:id
func (h *RecipeHandlers) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}
