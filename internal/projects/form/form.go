// Package form drives the admin create and edit forms: field state, the tag text and its
// derived list, and the submission lifecycle.
package form

import (
	"context"
	"errors"
	"sync"

	"github.com/haleem-akmal/portfolio/internal/projects/domain"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type Phase string

const (
	PhaseEditing    Phase = "editing"
	PhaseSubmitting Phase = "submitting"
)

type Outcome string

const (
	OutcomeNone    Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
)

const (
	MessageCreated       = "Project added successfully!"
	MessageCreateFailed  = "Something went wrong."
	MessageUpdateFailed  = "Could not update the project. Please try again."
	MessageDeleteFailed  = "Could not delete the project. Please try again."
	MessageMissingFields = "Please fill in all required fields."
	ConfirmDelete        = "Are you sure you want to delete this project? This action cannot be undone."
)

// ErrBusy is returned when a submission is already in flight.
var ErrBusy = errors.New("form is submitting")

// Writer persists form submissions. *repository.Repo satisfies it.
type Writer interface {
	Create(ctx context.Context, f domain.Fields) (string, error)
	Update(ctx context.Context, id string, p domain.Patch) error
	Delete(ctx context.Context, id string) error
}

// Values is the editable state as posted by the page. Tags travel as raw text.
type Values struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	TagsInput   string `form:"tags"`
	ImageURL    string `form:"imageURL"`
	LiveLink    string `form:"liveLink"`
	GithubLink  string `form:"githubLink"`
	Status      string `form:"status"`
}

// Defaults are the values of a fresh create form.
func Defaults() Values {
	return Values{Category: domain.DefaultCategory(), Status: string(domain.StatusPublished)}
}

// Controller is safe for concurrent use; only one submission runs at a time.
type Controller struct {
	mu      sync.Mutex
	mode    Mode
	id      string
	values  Values
	tags    []string
	phase   Phase
	outcome Outcome
	message string
	closed  bool
}

func NewCreate() *Controller {
	c := &Controller{mode: ModeCreate, phase: PhaseEditing}
	c.reset()
	return c
}

// NewEdit opens the edit surface pre-filled from p. Fields that only hold a display default
// start empty so saving never writes the default back.
func NewEdit(p domain.Project) *Controller {
	c := &Controller{mode: ModeEdit, id: p.ID, phase: PhaseEditing}
	stored := func(field, v string) string {
		if p.IsDefaulted(field) {
			return ""
		}
		return v
	}
	c.load(Values{
		Title:       stored(domain.FieldTitle, p.Title),
		Description: stored(domain.FieldDescription, p.Description),
		Category:    stored(domain.FieldCategory, p.Category),
		TagsInput:   domain.JoinTags(p.Tags),
		ImageURL:    stored(domain.FieldImageURL, p.ImageURL),
		LiveLink:    stored(domain.FieldLiveLink, p.LiveLink),
		GithubLink:  stored(domain.FieldGithubLink, p.GithubLink),
		Status:      string(p.Status),
	})
	return c
}

func (c *Controller) reset() {
	c.load(Defaults())
}

func (c *Controller) load(v Values) {
	c.values = v
	c.tags = domain.ParseTags(v.TagsInput)
}

// Load replaces every field, as when a page posts the whole form.
func (c *Controller) Load(v Values) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.load(v)
}

// SetTagsInput stores the raw tag text and re-derives the tag list from it.
func (c *Controller) SetTagsInput(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values.TagsInput = raw
	c.tags = domain.ParseTags(raw)
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) ID() string { return c.id }

func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values
}

// Tags returns the derived tag list that is persisted.
func (c *Controller) Tags() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.tags...)
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Outcome() Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

// Message is the text shown next to the form after the last submission.
func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Closed reports whether a successful edit closed the surface.
func (c *Controller) Closed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Fields builds the persistence payload. Tags come from the derived list, never the raw text.
func (c *Controller) Fields() domain.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields()
}

func (c *Controller) fields() domain.Fields {
	return domain.Fields{
		Title:       c.values.Title,
		Description: c.values.Description,
		Category:    c.values.Category,
		Tags:        append([]string{}, c.tags...),
		ImageURL:    c.values.ImageURL,
		LiveLink:    c.values.LiveLink,
		GithubLink:  c.values.GithubLink,
		Status:      domain.Status(c.values.Status),
	}
}

// Submit writes the form through w. On success a create form resets to its defaults and an
// edit form closes; on failure the entered values stay and the error message is set.
// It reports whether the write succeeded; callers refresh their list when it did.
func (c *Controller) Submit(ctx context.Context, w Writer) (bool, error) {
	c.mu.Lock()
	if c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return false, ErrBusy
	}
	c.phase = PhaseSubmitting
	c.outcome = OutcomeNone
	c.message = ""
	mode, id, fields := c.mode, c.id, c.fields()
	c.mu.Unlock()

	var err error
	if mode == ModeCreate {
		_, err = w.Create(ctx, fields)
	} else {
		err = w.Update(ctx, id, domain.PatchFrom(fields))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.phase = PhaseEditing
	if err != nil {
		c.outcome = OutcomeFailed
		c.message = failureMessage(mode, err)
		return false, err
	}

	c.outcome = OutcomeSuccess
	if mode == ModeCreate {
		c.reset()
		c.message = MessageCreated
	} else {
		c.closed = true
	}
	return true, nil
}

func failureMessage(mode Mode, err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return MessageMissingFields
	case mode == ModeCreate:
		return MessageCreateFailed
	default:
		return MessageUpdateFailed
	}
}

// Delete removes the edited project once the user has confirmed. Without confirmation it
// does nothing and reports false.
func Delete(ctx context.Context, w Writer, id string, confirmed bool) (bool, string) {
	if !confirmed {
		return false, ""
	}
	if err := w.Delete(ctx, id); err != nil {
		return false, MessageDeleteFailed
	}
	return true, ""
}
