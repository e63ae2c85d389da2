package search

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
)

type SearchTestSuite struct {
	suite.Suite
	recipes []*recipe.Recipe
}

func (suite *SearchTestSuite) SetupTest() {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id uint, name, ingredients string, minutes int, d recipe.Difficulty) *recipe.Recipe {
		return recipe.Restore(id, recipe.Attributes{
			Name:        name,
			Ingredients: ingredients,
			CookingTime: minutes,
			Difficulty:  d,
			Picture:     recipe.DefaultPicture,
		}, now, now)
	}

	suite.recipes = []*recipe.Recipe{
		mk(1, "Pasta al Pomodoro", "pasta, tomato sauce, cheese", 15, recipe.DifficultyEasy),
		mk(2, "Beef Stew", "beef, potatoes", 180, recipe.DifficultyHard),
		mk(3, "Margherita Pizza", "flour, tomato, mozzarella", 45, recipe.DifficultyMedium),
	}
}

func ids(recipes []*recipe.Recipe) []uint {
	out := make([]uint, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.ID())
	}
	return out
}

func (suite *SearchTestSuite) search(raw map[string]string) []uint {
	criteria, err := Validate(raw)
	require.NoError(suite.T(), err)
	return ids(Filter(suite.recipes, criteria))
}

func (suite *SearchTestSuite) TestNoCriteria_ReturnsInputUnchanged() {
	criteria, err := Validate(map[string]string{})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), criteria.IsEmpty())

	result := Filter(suite.recipes, criteria)

	assert.Equal(suite.T(), len(suite.recipes), len(result))
	assert.Empty(suite.T(), cmp.Diff([]uint{1, 2, 3}, ids(result)))
}

func (suite *SearchTestSuite) TestBlankValues_AreInactive() {
	criteria, err := Validate(map[string]string{
		ParamRecipeName:     "  ",
		ParamIngredients:    " , ,",
		ParamCookingTimeMin: "",
		ParamCookingTimeMax: " ",
		ParamDifficulty:     "any",
	})
	require.NoError(suite.T(), err)
	assert.True(suite.T(), criteria.IsEmpty())
}

func (suite *SearchTestSuite) TestIngredients_MatchAnyTerm() {
	got := suite.search(map[string]string{ParamIngredients: "tomato, cheese"})
	assert.Empty(suite.T(), cmp.Diff([]uint{1, 3}, got))

	got = suite.search(map[string]string{ParamIngredients: "MOZZARELLA"})
	assert.Empty(suite.T(), cmp.Diff([]uint{3}, got))
}

func (suite *SearchTestSuite) TestCookingTimeRange_IsInclusive() {
	got := suite.search(map[string]string{ParamCookingTimeMin: "10", ParamCookingTimeMax: "50"})
	assert.Empty(suite.T(), cmp.Diff([]uint{1, 3}, got))

	got = suite.search(map[string]string{ParamCookingTimeMin: "45", ParamCookingTimeMax: "180"})
	assert.Empty(suite.T(), cmp.Diff([]uint{2, 3}, got))

	got = suite.search(map[string]string{ParamCookingTimeMax: "15"})
	assert.Empty(suite.T(), cmp.Diff([]uint{1}, got))
}

func (suite *SearchTestSuite) TestName_CaseInsensitiveSubstring() {
	got := suite.search(map[string]string{ParamRecipeName: "PIZZ"})
	assert.Empty(suite.T(), cmp.Diff([]uint{3}, got))
}

func (suite *SearchTestSuite) TestDifficulty_ExactMatch() {
	got := suite.search(map[string]string{ParamDifficulty: "hard"})
	assert.Empty(suite.T(), cmp.Diff([]uint{2}, got))
}

func (suite *SearchTestSuite) TestCriteria_CombineWithAnd() {
	got := suite.search(map[string]string{
		ParamIngredients:    "tomato",
		ParamCookingTimeMin: "20",
	})
	assert.Empty(suite.T(), cmp.Diff([]uint{3}, got))

	got = suite.search(map[string]string{
		ParamIngredients: "tomato",
		ParamDifficulty:  "Hard",
	})
	assert.Empty(suite.T(), got)
}

func (suite *SearchTestSuite) TestValidateThenFilter_IsIdempotent() {
	raw := map[string]string{ParamIngredients: "tomato, beef", ParamCookingTimeMax: "100"}

	first := suite.search(raw)
	second := suite.search(raw)

	assert.Empty(suite.T(), cmp.Diff(first, second))
	assert.Empty(suite.T(), cmp.Diff([]uint{1, 3}, first))
}

func (suite *SearchTestSuite) TestNegativeBound_FailsOnlyThatField() {
	_, err := Validate(map[string]string{
		ParamCookingTimeMin: "-5",
		ParamCookingTimeMax: "30",
	})

	var verr *ValidationError
	require.ErrorAs(suite.T(), err, &verr)
	require.Len(suite.T(), verr.Fields, 1)
	assert.Equal(suite.T(), ParamCookingTimeMin, verr.Fields[0].Field)
	assert.Contains(suite.T(), verr.Fields[0].Message, "greater than or equal to 0")
}

func (suite *SearchTestSuite) TestInvalidValues_ReportEachField() {
	_, err := Validate(map[string]string{
		ParamCookingTimeMin: "ten",
		ParamCookingTimeMax: "1.5",
		ParamDifficulty:     "Extreme",
	})

	var verr *ValidationError
	require.ErrorAs(suite.T(), err, &verr)
	assert.Equal(suite.T(), []string{ParamCookingTimeMin, ParamCookingTimeMax, ParamDifficulty},
		[]string{verr.Fields[0].Field, verr.Fields[1].Field, verr.Fields[2].Field})
	msg, ok := verr.Field(ParamDifficulty)
	assert.True(suite.T(), ok)
	assert.Contains(suite.T(), msg, "Extreme")
	assert.Len(suite.T(), verr.Messages(), 3)
}

func (suite *SearchTestSuite) TestOverLengthText_IsOnlyAWarning() {
	long := make([]byte, MaxNameLength+1)
	for i := range long {
		long[i] = 'a'
	}

	criteria, err := Validate(map[string]string{ParamRecipeName: string(long)})

	require.NoError(suite.T(), err)
	require.Len(suite.T(), criteria.Warnings, 1)
	assert.Equal(suite.T(), ParamRecipeName, criteria.Warnings[0].Field)
	assert.Equal(suite.T(), string(long), criteria.Name)
}

func (suite *SearchTestSuite) TestCriteriaValues_RoundTrip() {
	raw := map[string]string{
		ParamRecipeName:     "pizza",
		ParamIngredients:    "tomato, cheese",
		ParamCookingTimeMin: "0",
		ParamCookingTimeMax: "60",
		ParamDifficulty:     "Medium",
	}

	criteria, err := Validate(raw)
	require.NoError(suite.T(), err)

	assert.Empty(suite.T(), cmp.Diff(raw, criteria.Values()))
	again, err := Validate(criteria.Values())
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), cmp.Diff(criteria, again))
}

func TestSearchTestSuite(t *testing.T) {
	suite.Run(t, new(SearchTestSuite))
}

func TestFilter_EmptyCollection(t *testing.T) {
	criteria, err := Validate(map[string]string{ParamRecipeName: "x"})
	require.NoError(t, err)

	assert.Empty(t, Filter(nil, criteria))
}

func TestFormValidator_DifficultyChoice(t *testing.T) {
	var v = formValidator
	require.NotPanics(t, func() { v = newFormValidator() })

	for _, ok := range []string{"", "any", "ANY", "easy", "Medium", " Hard "} {
		assert.NoError(t, v.Var(ok, "difficulty_choice"), ok)
	}
	for _, bad := range []string{"Extreme", "e", "anything"} {
		assert.Error(t, v.Var(bad, "difficulty_choice"), bad)
	}
}
