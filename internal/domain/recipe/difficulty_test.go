package recipe

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCountIngredients(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"   ", 0},
		{",,,", 0},
		{"egg", 1},
		{"a, ,b", 2},
		{" flour , water, salt ,", 3},
		{"pasta, tomato sauce, cheese", 3},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, CountIngredients(tt.input))
		})
	}
}

func TestClassify(t *testing.T) {
	terms := func(n int) string {
		parts := make([]string, n)
		for i := range parts {
			parts[i] = fmt.Sprintf("item%d", i)
		}
		return strings.Join(parts, ", ")
	}

	tests := []struct {
		name        string
		cookingTime int
		ingredients string
		want        Difficulty
	}{
		{"quick and few", 10, terms(3), DifficultyEasy},
		{"time boundary", 30, "a,b,c,d", DifficultyMedium},
		{"ingredient boundary", 10, terms(5), DifficultyMedium},
		{"blank terms ignored", 10, "a, ,b", DifficultyEasy},
		{"negative time", -20, terms(1), DifficultyEasy},
		{"medium upper time", 59, terms(9), DifficultyMedium},
		{"slow", 60, terms(1), DifficultyHard},
		{"many ingredients", 5, terms(10), DifficultyHard},
		{"empty ingredients", 29, "", DifficultyEasy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.cookingTime, tt.ingredients))
		})
	}
}

func TestClassify_EasyRegion(t *testing.T) {
	for minutes := -5; minutes < 30; minutes++ {
		for count := 0; count < 5; count++ {
			list := strings.Repeat("x,", count)
			require.Equal(t, DifficultyEasy, Classify(minutes, list), "time=%d count=%d", minutes, count)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty(" medium ")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	d, err = ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, Difficulty(""), d)

	_, err = ParseDifficulty("extreme")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}
