package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/alchemorsel/catalog/internal/infrastructure/container"
)

func newServeCommand(c *cli) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("port") {
				c.cfg.Server.Port = port
			}

			app := container.New(c.cfg, c.viper, fx.StopTimeout(c.cfg.Server.ShutdownTimeout))
			if err := app.Err(); err != nil {
				return err
			}
			app.Run()
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port, overrides server.port")
	return cmd
}
