package recipe

import (
	"strings"
)

// Difficulty is the coarse effort label attached to every stored recipe
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Difficulties returns the known labels in display order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// IsValid reports whether d is one of the known labels
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (d Difficulty) String() string {
	return string(d)
}

// ParseDifficulty maps user input onto a known label, ignoring case and
// surrounding whitespace. Blank input yields the zero value and no error.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, d := range Difficulties() {
		if strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", ErrInvalidDifficulty
}

// CountIngredients counts the comma separated terms that are non-empty once trimmed
func CountIngredients(ingredients string) int {
	count := 0
	for _, term := range strings.Split(ingredients, ",") {
		if strings.TrimSpace(term) != "" {
			count++
		}
	}
	return count
}

// Classify derives a difficulty from cooking time (minutes) and ingredient count.
// Negative times are accepted as-is.
func Classify(cookingTime int, ingredients string) Difficulty {
	count := CountIngredients(ingredients)

	switch {
	case cookingTime < 30 && count < 5:
		return DifficultyEasy
	case cookingTime < 60 && count < 10:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
