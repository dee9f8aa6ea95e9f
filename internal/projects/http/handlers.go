package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/internal/projects/catalog"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/projects/form"
)

func (h *Handler) listPublished(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil || q.Limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid query"})
		return
	}

	cat := catalog.NewPublic(h.logger)
	defer cat.Close()
	cat.SetFilter(catalog.Filter{Search: q.Search, Category: q.Category})
	cat.Refresh(c.Request.Context(), h.repo.Loader(q.Limit))

	c.JSON(http.StatusOK, gin.H{"ok": true, "catalog": cat.View()})
}

func (h *Handler) listAll(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid query"})
		return
	}

	cat := catalog.NewAdmin(h.logger)
	defer cat.Close()
	cat.SetFilter(catalog.Filter{Search: q.Search, Category: q.Category})
	if cat.Refresh(c.Request.Context(), h.repo.ListAll) == catalog.StateError {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": domain.ErrFetchFailed.Error(), "catalog": cat.View()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "catalog": cat.View()})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, domain.ErrFetchFailed.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id, err := h.repo.Create(c.Request.Context(), req.fields())
	if err != nil {
		h.fail(c, err, form.MessageCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "id": id, "message": form.MessageCreated})
}

func (h *Handler) update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	id := c.Param("id")
	if err := h.repo.Update(c.Request.Context(), id, req.patch()); err != nil {
		h.fail(c, err, form.MessageUpdateFailed)
		return
	}

	p, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

// delete is irreversible, so the caller must pass confirm=true after asking the user.
func (h *Handler) delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusPreconditionRequired, gin.H{"ok": false, "error": "confirmation required", "confirm": form.ConfirmDelete})
		return
	}

	ok, msg := form.Delete(c.Request.Context(), h.repo, c.Param("id"), true)
	if !ok {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) fail(c *gin.Context, err error, message string) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": verr.Error(), "missing": verr.Missing, "invalid": verr.Invalid})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": domain.ErrNotFound.Error()})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": message})
	}
}
