package bootstrap

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/haleem-akmal/portfolio/config"
	"github.com/haleem-akmal/portfolio/internal/auth/repository"
	"github.com/haleem-akmal/portfolio/internal/auth/service"
	"github.com/haleem-akmal/portfolio/internal/auth/static"
	"github.com/haleem-akmal/portfolio/internal/overview"
	projectsrepo "github.com/haleem-akmal/portfolio/internal/projects/repository"
	"github.com/haleem-akmal/portfolio/internal/store/memory"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	SetGinMode(&config.AppConfig{Environment: "test"})

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	s := memory.New()
	projects := projectsrepo.NewRepo(s, zap.NewNop())
	authSvc := service.NewAuthService(
		static.New("admin@example.com", string(hash), time.Hour),
		repository.NewSessionRepository(rdb, time.Hour),
		zap.NewNop(),
	)

	r, err := BuildRouter(RouterDeps{
		ServiceName:     "portfolio",
		Version:         "test",
		StoreName:       config.StoreMemory,
		CORSOrigins:     []string{"https://haleem.dev"},
		SessionTTL:      time.Hour,
		ResolveTimeout:  time.Second,
		LoginRatePerMin: 10,
		Store:           s,
		Redis:           rdb,
		Auth:            authSvc,
		Projects:        projects,
		Overview:        overview.NewService(projects, s, zap.NewNop()),
		Logger:          zap.NewNop(),
	})
	require.NoError(t, err)
	return r
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBuildRouter(t *testing.T) {
	r := setupRouter(t)

	t.Run("health", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"store":"memory:up"`)
		assert.Contains(t, w.Body.String(), `"redis":"up"`)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("public pages and api", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/projects", nil)).Code)
		assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/static/site.css", nil)).Code)
	})

	t.Run("admin api needs a session", func(t *testing.T) {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("login cookie opens the admin api", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "secret"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)

		var sessionCookie *http.Cookie
		for _, c := range w.Result().Cookies() {
			sessionCookie = c
		}
		require.NotNil(t, sessionCookie)

		req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/overview", nil)
		req.AddCookie(sessionCookie)
		w = serve(r, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"projects":{"total":0,"published":0,"draft":0}`)
	})

	t.Run("cors preflight on the api", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/projects", nil)
		req.Header.Set("Origin", "https://haleem.dev")
		req.Header.Set("Access-Control-Request-Method", "GET")
		w := serve(r, req)
		assert.Equal(t, "https://haleem.dev", w.Header().Get("Access-Control-Allow-Origin"))
	})
}
