package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/pkg/logger"
)

// cli carries what the root command loads for its subcommands
type cli struct {
	configPath string
	cfg        *config.Config
	viper      *viper.Viper
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "catalog",
		Short:         "Recipe catalog with search and summary charts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations["config"] == "skip" {
				return nil
			}
			cfg, v, err := config.LoadWithViper(c.configPath)
			if err != nil {
				return err
			}
			c.cfg, c.viper = cfg, v
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "path to the config file (default: ./config.yaml)")

	root.AddCommand(
		newServeCommand(c),
		newMigrateCommand(c),
		newSeedCommand(c),
		newCreateUserCommand(c),
		newClassifyCommand(),
	)
	return root
}

// logger builds the zap logger the one-shot commands report through
func (c *cli) logger() (*zap.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       c.cfg.App.LogLevel,
		Format:      c.cfg.App.LogFormat,
		Development: c.cfg.App.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return log, nil
}
