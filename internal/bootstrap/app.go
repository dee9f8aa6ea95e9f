package bootstrap

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/config"
	"github.com/haleem-akmal/portfolio/internal/auth"
	"github.com/haleem-akmal/portfolio/internal/auth/repository"
	"github.com/haleem-akmal/portfolio/internal/auth/service"
	"github.com/haleem-akmal/portfolio/internal/overview"
	projectsrepo "github.com/haleem-akmal/portfolio/internal/projects/repository"
	"github.com/haleem-akmal/portfolio/internal/store"
)

// App holds the long-lived clients of a running process.
type App struct {
	Config   *config.Config
	Logger   *zap.Logger
	Store    store.Store
	Redis    *redis.Client
	Auth     *service.AuthService
	Projects *projectsrepo.Repo
	Overview *overview.Service
}

func initFirebase(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if !cfg.NeedsFirebase() {
		return nil, nil
	}
	return auth.InitializeFirebase(ctx, &cfg.Firebase)
}

// OpenData connects only the document store, for commands that do not serve HTTP.
func OpenData(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	var fbApp *firebase.App
	if cfg.Store.Driver == config.StoreFirestore {
		var err error
		if fbApp, err = auth.InitializeFirebase(ctx, &cfg.Firebase); err != nil {
			return nil, err
		}
	}

	s, err := OpenStore(ctx, cfg, fbApp, DBOptions{})
	if err != nil {
		return nil, err
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    s,
		Projects: projectsrepo.NewRepo(s, logger),
	}, nil
}

// Open connects every dependency the HTTP server needs.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	fbApp, err := initFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s, err := OpenStore(ctx, cfg, fbApp, DBOptions{})
	if err != nil {
		return nil, err
	}

	rdb, err := OpenRedis(ctx, &cfg.Redis)
	if err != nil {
		_ = s.Close()
		return nil, err
	}

	provider, err := NewProvider(ctx, cfg, fbApp)
	if err != nil {
		_ = s.Close()
		_ = rdb.Close()
		return nil, err
	}

	projects := projectsrepo.NewRepo(s, logger)
	sessions := repository.NewSessionRepository(rdb, cfg.Auth.SessionTTL)

	return &App{
		Config:   cfg,
		Logger:   logger,
		Store:    s,
		Redis:    rdb,
		Auth:     service.NewAuthService(provider, sessions, logger),
		Projects: projects,
		Overview: overview.NewService(projects, s, logger),
	}, nil
}

func (a *App) Router() (*gin.Engine, error) {
	return BuildRouter(RouterDeps{
		ServiceName:     a.Config.App.ServiceName,
		Version:         a.Config.App.Version,
		StoreName:       a.Config.Store.Driver,
		CORSOrigins:     a.Config.Server.CORSOrigins,
		SessionTTL:      a.Config.Auth.SessionTTL,
		ResolveTimeout:  a.Config.Auth.ResolveTimeout,
		SecureCookies:   a.Config.Auth.SecureCookies,
		LoginRatePerMin: a.Config.Auth.LoginRatePerMin,
		Store:           a.Store,
		Redis:           a.Redis,
		Auth:            a.Auth,
		Projects:        a.Projects,
		Overview:        a.Overview,
		Logger:          a.Logger,
	})
}

func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}
	return errors.Join(errs...)
}
