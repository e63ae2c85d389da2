package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/database"
	"github.com/alchemorsel/catalog/internal/infrastructure/persistence/migrations"
)

func newMigrateCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := c.logger()
			if err != nil {
				return err
			}
			defer log.Sync()

			dbCfg := c.cfg.Database
			dbCfg.AutoMigrate = false
			db, err := database.Open(dbCfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			return database.Migrate(db, dbCfg, log)
		},
	}

	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back every migration (postgres only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *migrations.Migrator, log *zap.Logger) error {
				return m.Down()
			})
		},
	}

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version (postgres only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *migrations.Migrator, log *zap.Logger) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", v, dirty)
				return nil
			})
		},
	}

	var forceVersion int
	force := &cobra.Command{
		Use:   "force",
		Short: "Mark a version as applied after a failed migration (postgres only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withMigrator(func(m *migrations.Migrator, log *zap.Logger) error {
				return m.Force(forceVersion)
			})
		},
	}
	force.Flags().IntVar(&forceVersion, "version", 0, "schema version to record")
	_ = force.MarkFlagRequired("version")

	cmd.AddCommand(up, down, version, force)
	return cmd
}

func (c *cli) withMigrator(fn func(*migrations.Migrator, *zap.Logger) error) error {
	if c.cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("versioned migrations require the %q driver", config.DriverPostgres)
	}

	log, err := c.logger()
	if err != nil {
		return err
	}
	defer log.Sync()

	dbCfg := c.cfg.Database
	dbCfg.AutoMigrate = false
	db, err := database.Open(dbCfg, log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	m, err := migrations.New(sqlDB, dbCfg.Database, log)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m, log)
}
