package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/container"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/database"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
)

// runCore starts the core application with its values copied into populate.
// The caller must call stop once done.
func runCore(ctx context.Context, c *cli, populate ...interface{}) (stop func() error, err error) {
	app := container.NewCore(c.cfg, fx.Populate(populate...))
	if err := app.Err(); err != nil {
		return nil, err
	}
	if err := app.Start(ctx); err != nil {
		return nil, err
	}
	return func() error { return app.Stop(context.Background()) }, nil
}

func newSeedCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample recipes into an empty catalog and create the default user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				recipes outbound.RecipeRepository
				users   outbound.UserRepository
				log     *zap.Logger
			)
			stop, err := runCore(cmd.Context(), c, &recipes, &users, &log)
			if err != nil {
				return err
			}
			defer stop()

			auth := c.cfg.Auth
			return database.Seed(cmd.Context(), recipes, users,
				auth.DefaultUser, auth.DefaultPassword, auth.BCryptCost, log)
		},
	}
}

func newCreateUserCommand(c *cli) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account that can log in to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var users inbound.UserService
			stop, err := runCore(cmd.Context(), c, &users)
			if err != nil {
				return err
			}
			defer stop()

			created, err := users.Register(cmd.Context(), inbound.RegisterCommand{
				Username: username,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\n", created.Username, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "login name")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, at least 8 characters")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
