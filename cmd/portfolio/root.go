package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/config"
	"github.com/haleem-akmal/portfolio/internal/logging"
)

// App carries what every subcommand loads first.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Portfolio site: public project pages and the admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.logger != nil {
				_ = app.logger.Sync()
			}
		},
	}
	cmd.AddCommand(
		newServeCmd(app),
		newProjectsCmd(app),
	)
	return cmd
}

func (a *App) load() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := logging.New(cfg.App.IsProduction(), cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger.With(zap.String("service", cfg.App.ServiceName))
	return nil
}
