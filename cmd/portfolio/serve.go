package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/bootstrap"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the site and the JSON API",
		Args:  cobra.NoArgs,
		RunE:  app.handleServe,
	}
}

func (a *App) handleServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(&a.cfg.App)

	deps, err := bootstrap.Open(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			a.logger.Warn("shutdown", zap.Error(err))
		}
	}()

	router, err := deps.Router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("store", a.cfg.Store.Driver),
			zap.String("auth", a.cfg.Auth.Driver),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
