// Package recipe provides the application layer for the recipe catalog.
// It implements the use cases defined in the inbound ports.
package recipe

import (
	"context"
	stderrors "errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/domain/chart"
	"github.com/alchemorsel/catalog/internal/domain/recipe"
	"github.com/alchemorsel/catalog/internal/domain/search"
	"github.com/alchemorsel/catalog/internal/domain/shared"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
	"github.com/alchemorsel/catalog/pkg/errors"
)

const tracerName = "github.com/alchemorsel/catalog/internal/application/recipe"

// Options tunes the recipe use cases
type Options struct {
	// EnforceNonNegativeCookingTime rejects negative cooking times on create and update
	EnforceNonNegativeCookingTime bool
}

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	summarizer inbound.ChartSummarizer
	opts       Options
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	summarizer inbound.ChartSummarizer,
	opts Options,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		summarizer: summarizer,
		opts:       opts,
		tracer:     otel.Tracer(tracerName),
		logger:     logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe, classifying it when no difficulty is given
func (s *RecipeService) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.CreateRecipe")
	defer span.End()

	s.logger.Info("Creating new recipe",
		zap.String("name", cmd.Name),
		zap.Int("cooking_time", cmd.CookingTime),
	)

	attrs, err := s.attributes(cmd.Name, cmd.Ingredients, cmd.CookingTime, cmd.Difficulty, cmd.Picture)
	if err != nil {
		return nil, err
	}

	recipeEntity, err := recipe.NewRecipe(attrs)
	if err != nil {
		return nil, domainError(err)
	}

	if err := s.recipeRepo.Create(ctx, recipeEntity); err != nil {
		recordError(span, err)
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.publishEvents(recipeEntity.Events())

	span.SetAttributes(
		attribute.Int64("recipe.id", int64(recipeEntity.ID())),
		attribute.String("recipe.difficulty", recipeEntity.Difficulty().String()),
	)
	s.logger.Info("Recipe created successfully",
		zap.Uint("recipe_id", recipeEntity.ID()),
		zap.String("difficulty", recipeEntity.Difficulty().String()),
	)

	return toDTO(recipeEntity), nil
}

// UpdateRecipe replaces a recipe's fields without reclassifying it
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.UpdateRecipe",
		trace.WithAttributes(attribute.Int64("recipe.id", int64(cmd.ID))))
	defer span.End()

	s.logger.Info("Updating recipe", zap.Uint("recipe_id", cmd.ID))

	attrs, err := s.attributes(cmd.Name, cmd.Ingredients, cmd.CookingTime, cmd.Difficulty, cmd.Picture)
	if err != nil {
		return nil, err
	}

	recipeEntity, err := s.load(ctx, cmd.ID)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	if err := recipeEntity.Update(attrs); err != nil {
		return nil, domainError(err)
	}

	if err := s.recipeRepo.Update(ctx, recipeEntity); err != nil {
		recordError(span, err)
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(cmd.ID)
		}
		return nil, errors.NewDatabaseError("update recipe", err)
	}

	s.publishEvents(recipeEntity.Events())

	return toDTO(recipeEntity), nil
}

// DeleteRecipe removes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uint) error {
	ctx, span := s.tracer.Start(ctx, "RecipeService.DeleteRecipe",
		trace.WithAttributes(attribute.Int64("recipe.id", int64(id))))
	defer span.End()

	s.logger.Info("Deleting recipe", zap.Uint("recipe_id", id))

	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		recordError(span, err)
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return errors.NewRecipeNotFoundError(id)
		}
		return errors.NewDatabaseError("delete recipe", err)
	}

	s.publishEvents([]shared.DomainEvent{recipe.RecipeDeletedEvent{RecipeID: id, DeletedAt: timeNow()}})
	return nil
}

// GetRecipe loads a single recipe
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*inbound.RecipeDTO, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.GetRecipe",
		trace.WithAttributes(attribute.Int64("recipe.id", int64(id))))
	defer span.End()

	recipeEntity, err := s.load(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return toDTO(recipeEntity), nil
}

// ListRecipes returns every recipe in store order
func (s *RecipeService) ListRecipes(ctx context.Context) ([]*inbound.RecipeDTO, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.ListRecipes")
	defer span.End()

	recipes, err := s.recipeRepo.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, errors.NewDatabaseError("list recipes", err)
	}
	return toDTOs(recipes), nil
}

// SearchRecipes validates the raw parameters, filters the collection and
// summarizes a non-empty result. Invalid parameters are reported on the
// result and the unfiltered collection is shown instead.
func (s *RecipeService) SearchRecipes(ctx context.Context, query inbound.SearchQuery) (*inbound.SearchResult, error) {
	ctx, span := s.tracer.Start(ctx, "RecipeService.SearchRecipes")
	defer span.End()

	all, err := s.recipeRepo.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, errors.NewDatabaseError("load recipes", err)
	}

	form := search.FormFromValues(query.Params)
	result := &inbound.SearchResult{
		Form:   form.Values(),
		Charts: []inbound.ChartDTO{},
	}

	matched := all
	criteria, err := search.ValidateForm(form)
	result.Warnings = criteria.Warnings
	var verr *search.ValidationError
	switch {
	case stderrors.As(err, &verr):
		s.logger.Debug("Search parameters rejected", zap.Error(verr))
		result.Errors = verr.Messages()
	case err != nil:
		recordError(span, err)
		return nil, errors.Wrap(err, "failed to validate search")
	default:
		matched = search.Filter(all, criteria)
	}

	result.Recipes = toDTOs(matched)
	result.Total = len(matched)
	span.SetAttributes(
		attribute.Int("search.total", len(all)),
		attribute.Int("search.matched", result.Total),
		attribute.Bool("search.invalid", verr != nil),
	)

	if len(matched) == 0 {
		return result, nil
	}

	summaries, err := s.summarizer.Summarize(ctx, matched)
	if err != nil {
		recordError(span, err)
		return nil, errors.NewRenderError("summary", err)
	}
	for _, kind := range chart.Kinds() {
		summary, ok := summaries[kind]
		if !ok {
			continue
		}
		if summary.Err != nil {
			s.logger.Warn("Chart unavailable",
				zap.String("chart", string(kind)),
				zap.Error(summary.Err),
			)
		}
		result.Charts = append(result.Charts, inbound.NewChartDTO(summary))
	}

	return result, nil
}

func (s *RecipeService) attributes(name, ingredients string, cookingTime int, difficulty, picture string) (recipe.Attributes, error) {
	d, err := recipe.ParseDifficulty(difficulty)
	if err != nil {
		return recipe.Attributes{}, domainError(err)
	}
	if s.opts.EnforceNonNegativeCookingTime {
		if err := recipe.ValidateCookingTime(cookingTime); err != nil {
			return recipe.Attributes{}, domainError(err)
		}
	}
	return recipe.Attributes{
		Name:        name,
		Ingredients: ingredients,
		CookingTime: cookingTime,
		Difficulty:  d,
		Picture:     picture,
	}, nil
}

func (s *RecipeService) load(ctx context.Context, id uint) (*recipe.Recipe, error) {
	recipeEntity, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(id)
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	return recipeEntity, nil
}

func (s *RecipeService) publishEvents(events []shared.DomainEvent) {
	for _, event := range events {
		s.logger.Debug("Domain event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
}

// domainError maps entity validation failures onto AppErrors
func domainError(err error) error {
	var field string
	switch {
	case stderrors.Is(err, recipe.ErrNameRequired):
		field = "name"
	case stderrors.Is(err, recipe.ErrIngredientsRequired):
		field = "ingredients"
	case stderrors.Is(err, recipe.ErrNegativeCookingTime), stderrors.Is(err, recipe.ErrCookingTimeTooLong):
		field = "cooking_time"
	case stderrors.Is(err, recipe.ErrInvalidDifficulty):
		field = "difficulty"
	default:
		return errors.Wrap(err, "failed to build recipe")
	}
	return errors.NewValidationErrors([]errors.ValidationError{{Field: field, Message: err.Error()}}).WithCause(err)
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
