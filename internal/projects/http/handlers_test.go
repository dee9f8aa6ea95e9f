package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/projects/repository"
	"github.com/haleem-akmal/portfolio/internal/store/memory"
)

func setupRouter(t *testing.T) (*gin.Engine, *repository.Repo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewRepo(memory.New(), zap.NewNop())
	h := New(repo, zap.NewNop())

	r := gin.New()
	h.RegisterPublic(r.Group("/api/v1/projects"))
	h.RegisterAdmin(r.Group("/api/v1/admin/projects"))
	return r, repo
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	ID      string `json:"id"`
	Message string `json:"message"`
	Catalog struct {
		State    string           `json:"state"`
		Projects []domain.Project `json:"projects"`
		Total    int              `json:"total"`
		Message  string           `json:"message"`
	} `json:"catalog"`
	Project *domain.Project `json:"project"`
	Missing []string        `json:"missing"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func demo() map[string]any {
	return map[string]any{
		"title":       "Demo",
		"description": "Desc",
		"category":    "Dashboard",
		"imageURL":    "https://x/y.png",
		"liveLink":    "https://x",
		"githubLink":  "https://x",
	}
}

func TestProjectsAPI_CreateListUpdateDelete(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(r, http.MethodGet, "/api/v1/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "No projects published yet.", decode(t, w).Catalog.Message)

	body := demo()
	body["tagsInput"] = "go, gin,, "
	w = do(r, http.MethodPost, "/api/v1/admin/projects", body)
	require.Equal(t, http.StatusCreated, w.Code)
	created := decode(t, w)
	assert.Equal(t, "Project added successfully!", created.Message)
	require.NotEmpty(t, created.ID)

	w = do(r, http.MethodGet, "/api/v1/projects?q=GIN&category=Dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode(t, w)
	require.Len(t, list.Catalog.Projects, 1)
	assert.Equal(t, []string{"go", "gin"}, list.Catalog.Projects[0].Tags)
	assert.Equal(t, domain.StatusPublished, list.Catalog.Projects[0].Status)

	w = do(r, http.MethodGet, "/api/v1/projects?q=cobol", nil)
	assert.Equal(t, "No projects match your search.", decode(t, w).Catalog.Message)

	w = do(r, http.MethodPatch, "/api/v1/admin/projects/"+created.ID, map[string]any{"status": "Draft"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.StatusDraft, decode(t, w).Project.Status)

	w = do(r, http.MethodGet, "/api/v1/projects", nil)
	assert.Empty(t, decode(t, w).Catalog.Projects)

	w = do(r, http.MethodGet, "/api/v1/admin/projects", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Catalog.Projects, 1)

	w = do(r, http.MethodDelete, "/api/v1/admin/projects/"+created.ID, nil)
	assert.Equal(t, http.StatusPreconditionRequired, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/admin/projects/"+created.ID+"?confirm=true", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/api/v1/admin/projects", nil)
	admin := decode(t, w)
	assert.Empty(t, admin.Catalog.Projects)
	assert.Equal(t, "No projects yet.", admin.Catalog.Message)
}

func TestProjectsAPI_Errors(t *testing.T) {
	r, repo := setupRouter(t)

	t.Run("create rejects missing fields", func(t *testing.T) {
		body := demo()
		delete(body, "githubLink")
		w := do(r, http.MethodPost, "/api/v1/admin/projects", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, []string{"githubLink"}, decode(t, w).Missing)
	})

	t.Run("update unknown id", func(t *testing.T) {
		w := do(r, http.MethodPatch, "/api/v1/admin/projects/missing", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("empty patch", func(t *testing.T) {
		id, err := repo.Create(context.Background(), domain.Fields{
			Title: "T", Description: "D", ImageURL: "i", LiveLink: "l", GithubLink: "g",
		})
		require.NoError(t, err)
		w := do(r, http.MethodPatch, "/api/v1/admin/projects/"+id, map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get unknown id", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/admin/projects/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("negative limit", func(t *testing.T) {
		w := do(r, http.MethodGet, "/api/v1/projects?limit=-1", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
