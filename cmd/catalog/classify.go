package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alchemorsel/catalog/internal/domain/recipe"
)

func newClassifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "classify MINUTES INGREDIENTS",
		Short:       "Print the difficulty a new recipe would be given",
		Example:     `  catalog classify 20 "pasta, tomato sauce, cheese"`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"config": "skip"},
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("cooking time must be a whole number of minutes: %q", args[0])
			}

			difficulty := recipe.Classify(minutes, args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d min, %d ingredients)\n",
				difficulty, minutes, recipe.CountIngredients(args[1]))
			return nil
		},
	}
}
