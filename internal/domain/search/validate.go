package search

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
)

// Length caps shown to the user. Exceeding them only yields a warning.
const (
	MaxNameLength        = 100
	MaxIngredientsLength = 200
)

// Form mirrors the search form as submitted
type Form struct {
	RecipeName     string `form:"recipe_name" validate:"max=100"`
	Ingredients    string `form:"ingredients" validate:"max=200"`
	CookingTimeMin string `form:"cooking_time_min"`
	CookingTimeMax string `form:"cooking_time_max"`
	Difficulty     string `form:"difficulty" validate:"difficulty_choice"`
}

// FormFromValues builds a Form from raw parameters
func FormFromValues(raw map[string]string) Form {
	return Form{
		RecipeName:     raw[ParamRecipeName],
		Ingredients:    raw[ParamIngredients],
		CookingTimeMin: raw[ParamCookingTimeMin],
		CookingTimeMax: raw[ParamCookingTimeMax],
		Difficulty:     raw[ParamDifficulty],
	}
}

// Values returns the form as raw parameters, including blank ones
func (f Form) Values() map[string]string {
	return map[string]string{
		ParamRecipeName:     f.RecipeName,
		ParamIngredients:    f.Ingredients,
		ParamCookingTimeMin: f.CookingTimeMin,
		ParamCookingTimeMax: f.CookingTimeMax,
		ParamDifficulty:     f.Difficulty,
	}
}

// FieldError is a validation failure for a single form field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "invalid search parameters: " + strings.Join(parts, "; ")
}

// Field returns the message recorded for field, if any
func (e *ValidationError) Field(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Messages indexes the field messages by field name
func (e *ValidationError) Messages() map[string]string {
	messages := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		messages[f.Field] = f.Message
	}
	return messages
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("form")
	})
	if err := v.RegisterValidation("difficulty_choice", validateDifficultyChoice); err != nil {
		panic(fmt.Sprintf("search: register difficulty_choice: %v", err))
	}
	return v
}

func validateDifficultyChoice(fl validator.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" || strings.EqualFold(value, AnyDifficulty) {
		return true
	}
	_, err := recipe.ParseDifficulty(value)
	return err == nil
}

// Validate coerces raw parameters into Criteria. Over-length text is kept
// and reported as a warning. Bad time bounds or an unknown difficulty fail
// with a *ValidationError naming only the offending fields.
func Validate(raw map[string]string) (Criteria, error) {
	return ValidateForm(FormFromValues(raw))
}

// ValidateForm is Validate for an already bound Form
func ValidateForm(form Form) (Criteria, error) {
	var (
		criteria Criteria
		fields   []FieldError
		choice   *FieldError
	)

	if err := formValidator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Criteria{}, err
		}
		for _, fe := range verrs {
			switch fe.Tag() {
			case "max":
				criteria.Warnings = append(criteria.Warnings, Warning{
					Field:   fe.Field(),
					Message: fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param()),
				})
			default:
				choice = &FieldError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value()),
				}
			}
		}
	}

	criteria.Name = strings.TrimSpace(form.RecipeName)
	criteria.Ingredients = form.Ingredients
	criteria.Terms = SplitTerms(form.Ingredients)

	var ferr *FieldError
	if criteria.MinCookingTime, ferr = parseBound(ParamCookingTimeMin, form.CookingTimeMin); ferr != nil {
		fields = append(fields, *ferr)
	}
	if criteria.MaxCookingTime, ferr = parseBound(ParamCookingTimeMax, form.CookingTimeMax); ferr != nil {
		fields = append(fields, *ferr)
	}

	if choice != nil {
		fields = append(fields, *choice)
	} else if d := strings.TrimSpace(form.Difficulty); d != "" && !strings.EqualFold(d, AnyDifficulty) {
		criteria.Difficulty, _ = recipe.ParseDifficulty(d)
	}

	if len(fields) > 0 {
		return Criteria{Warnings: criteria.Warnings}, &ValidationError{Fields: fields}
	}
	return criteria, nil
}

func parseBound(field, value string) (*int, *FieldError) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, &FieldError{Field: field, Message: "Enter a whole number."}
	}
	if n < 0 {
		return nil, &FieldError{Field: field, Message: "Ensure this value is greater than or equal to 0."}
	}
	return &n, nil
}
