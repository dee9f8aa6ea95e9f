package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haleem-akmal/portfolio/internal/auth/middleware"
	"github.com/haleem-akmal/portfolio/internal/projects/catalog"
	"github.com/haleem-akmal/portfolio/internal/projects/domain"
	"github.com/haleem-akmal/portfolio/internal/projects/form"
)

const (
	TabOverview = "Overview"
	TabProjects = "Projects"
	TabMessages = "Messages"
	TabProfile  = "Profile"
	TabSettings = "Settings"
)

var tabs = []string{TabOverview, TabProjects, TabMessages, TabProfile, TabSettings}

var notices = map[string]string{
	"updated": "Project updated successfully.",
	"deleted": "Project deleted.",
}

func normalizeTab(tab string) string {
	for _, t := range tabs {
		if t == tab {
			return t
		}
	}
	return TabOverview
}

func statuses() []string {
	return []string{string(domain.StatusPublished), string(domain.StatusDraft)}
}

func formData(ctl *form.Controller) gin.H {
	data := gin.H{
		"Values":     ctl.Values(),
		"Message":    ctl.Message(),
		"Outcome":    string(ctl.Outcome()),
		"Categories": domain.Categories(),
		"Statuses":   statuses(),
	}
	if ctl.Mode() == form.ModeCreate {
		data["Action"] = "/admin/projects"
		data["Submit"] = "Add Project"
	} else {
		data["Action"] = "/admin/projects/" + ctl.ID()
		data["Submit"] = "Save Changes"
	}
	return data
}

func (h *Handler) page(c *gin.Context, title string) gin.H {
	data := gin.H{"Title": title, "SignedIn": true, "Email": ""}
	if id := middleware.IdentityFrom(c); id != nil {
		data["Email"] = id.Email
	}
	return data
}

func (h *Handler) dashboard(c *gin.Context) {
	h.renderDashboard(c, http.StatusOK, normalizeTab(c.Query("tab")), form.NewCreate())
}

func (h *Handler) renderDashboard(c *gin.Context, status int, tab string, ctl *form.Controller) {
	data := h.page(c, "Dashboard")
	data["Tab"] = tab
	data["Tabs"] = tabs

	switch tab {
	case TabOverview:
		data["Overview"] = h.overview.Snapshot(c.Request.Context())
	case TabProjects:
		cat := catalog.NewAdmin(h.logger)
		defer cat.Close()
		cat.SetFilter(catalog.Filter{Search: c.Query("q"), Category: c.Query("category")})
		cat.Refresh(c.Request.Context(), h.repo.ListAll)

		data["View"] = cat.View()
		data["FilterCategories"] = domain.FilterCategories()
		data["Form"] = formData(ctl)
		data["Notice"] = notices[c.Query("notice")]
	}

	h.render(c, status, "dashboard", data)
}

// createProject submits the add form. Success resets the form and the refreshed list is shown;
// failure keeps what was typed.
func (h *Handler) createProject(c *gin.Context) {
	var v form.Values
	_ = c.ShouldBind(&v)

	ctl := form.NewCreate()
	ctl.Load(v)

	status := http.StatusOK
	if ok, _ := ctl.Submit(c.Request.Context(), h.repo); !ok {
		status = http.StatusUnprocessableEntity
	}
	h.renderDashboard(c, status, TabProjects, ctl)
}

func (h *Handler) loadProject(c *gin.Context) (*domain.Project, bool) {
	p, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		h.renderError(c, http.StatusNotFound, "Not Found", "That project does not exist.")
		return nil, false
	}
	if err != nil {
		h.renderError(c, http.StatusBadGateway, "Something went wrong.", domain.ErrFetchFailed.Error())
		return nil, false
	}
	return p, true
}

func (h *Handler) editProject(c *gin.Context) {
	p, ok := h.loadProject(c)
	if !ok {
		return
	}

	data := h.page(c, "Edit Project")
	data["Form"] = formData(form.NewEdit(*p))
	h.render(c, http.StatusOK, "edit", data)
}

func (h *Handler) updateProject(c *gin.Context) {
	var v form.Values
	_ = c.ShouldBind(&v)

	ctl := form.NewEdit(domain.Project{ID: c.Param("id")})
	ctl.Load(v)

	if ok, _ := ctl.Submit(c.Request.Context(), h.repo); ok && ctl.Closed() {
		h.seeOther(c, PathDashboard+"?tab="+TabProjects+"&notice=updated")
		return
	}

	data := h.page(c, "Edit Project")
	data["Form"] = formData(ctl)
	h.render(c, http.StatusUnprocessableEntity, "edit", data)
}

func (h *Handler) confirmDelete(c *gin.Context) {
	p, ok := h.loadProject(c)
	if !ok {
		return
	}

	data := h.page(c, "Delete Project")
	data["Project"] = p
	data["Question"] = form.ConfirmDelete
	h.render(c, http.StatusOK, "confirm_delete", data)
}

// deleteProject only deletes when the confirmation page posted confirm=yes.
func (h *Handler) deleteProject(c *gin.Context) {
	id := c.Param("id")

	ok, msg := form.Delete(c.Request.Context(), h.repo, id, c.PostForm("confirm") == "yes")
	switch {
	case ok:
		h.seeOther(c, PathDashboard+"?tab="+TabProjects+"&notice=deleted")
	case msg == "":
		h.seeOther(c, "/admin/projects/"+id+"/delete")
	default:
		data := h.page(c, "Delete Project")
		data["Project"] = domain.Project{ID: id}
		data["Question"] = form.ConfirmDelete
		data["Error"] = msg
		h.render(c, http.StatusBadGateway, "confirm_delete", data)
	}
}
