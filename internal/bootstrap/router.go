package bootstrap

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	httpapi "github.com/haleem-akmal/portfolio/internal/api/http"
	apimw "github.com/haleem-akmal/portfolio/internal/api/http/middleware"
	authhttp "github.com/haleem-akmal/portfolio/internal/auth/http"
	authmw "github.com/haleem-akmal/portfolio/internal/auth/middleware"
	"github.com/haleem-akmal/portfolio/internal/auth/service"
	"github.com/haleem-akmal/portfolio/internal/overview"
	overviewhttp "github.com/haleem-akmal/portfolio/internal/overview/http"
	projectshttp "github.com/haleem-akmal/portfolio/internal/projects/http"
	"github.com/haleem-akmal/portfolio/internal/projects/repository"
	"github.com/haleem-akmal/portfolio/internal/store"
	"github.com/haleem-akmal/portfolio/internal/web"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	StoreName   string
	CORSOrigins []string

	SessionTTL      time.Duration
	ResolveTimeout  time.Duration
	SecureCookies   bool
	LoginRatePerMin int

	Store    store.Store
	Redis    *redis.Client
	Auth     *service.AuthService
	Projects *repository.Repo
	Overview *overview.Service
	Logger   *zap.Logger
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestIDMiddleware(dep.Logger))
	if len(dep.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     dep.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", apimw.HeaderRequestID},
			ExposeHeaders:    []string{apimw.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	var redisPing httpapi.Pinger
	if dep.Redis != nil {
		redisPing = httpapi.PingFunc(func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() })
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.StoreName, dep.Store, redisPing)
	healthHandler.RegisterRoutes(r)

	loginLimiter := apimw.NewIPRateLimiter(dep.LoginRatePerMin, dep.LoginRatePerMin)

	pages := web.New(dep.Projects, dep.Auth, dep.Overview, dep.Logger, web.Options{
		SessionTTL:     dep.SessionTTL,
		ResolveTimeout: dep.ResolveTimeout,
		SecureCookies:  dep.SecureCookies,
	})
	pages.Register(r, apimw.RateLimit(loginLimiter, pages.TooManyAttempts))

	api := r.Group("/api/v1")

	authhttp.New(dep.Auth, dep.SessionTTL, dep.SecureCookies).
		Register(api.Group("/auth"), apimw.RateLimit(loginLimiter, nil))

	projectsHandler := projectshttp.New(dep.Projects, dep.Logger)
	projectsHandler.RegisterPublic(api.Group("/projects"))

	admin := api.Group("/admin")
	admin.Use(authmw.RequireSession(dep.Auth, authmw.Options{
		ResolveTimeout: dep.ResolveTimeout,
		Verifier:       dep.Auth,
		Logger:         dep.Logger,
	}))
	projectsHandler.RegisterAdmin(admin.Group("/projects"))
	overviewhttp.New(dep.Overview).Register(admin.Group("/overview"))

	return r, nil
}
