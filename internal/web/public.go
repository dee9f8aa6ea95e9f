package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/internal/projects/catalog"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
)

func (h *Handler) home(c *gin.Context) {
	cat := catalog.NewPublic(h.logger)
	defer cat.Close()
	cat.Refresh(c.Request.Context(), h.repo.Loader(FeaturedLimit))

	v := cat.View()
	h.render(c, http.StatusOK, "home", gin.H{
		"Projects": v.Projects,
		"Empty":    v.Message,
	})
}

func (h *Handler) projects(c *gin.Context) {
	var f catalog.Filter
	_ = c.ShouldBindQuery(&f)

	cat := catalog.NewPublic(h.logger)
	defer cat.Close()
	cat.SetFilter(f)
	cat.Refresh(c.Request.Context(), h.repo.Loader(0))

	h.render(c, http.StatusOK, "projects", gin.H{
		"Title":      "Projects",
		"View":       cat.View(),
		"Categories": domain.FilterCategories(),
	})
}
