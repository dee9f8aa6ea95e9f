package domain

import "time"

// Collection is the document collection projects are stored in.
const Collection = "projects"

// Document field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
	FieldTags        = "tags"
	FieldImageURL    = "imageURL"
	FieldLiveLink    = "liveLink"
	FieldGithubLink  = "githubLink"
	FieldStatus      = "status"
	FieldCreatedAt   = "createdAt"
	FieldUpdatedAt   = "updatedAt"
)

type Status string

const (
	StatusPublished Status = "Published"
	StatusDraft     Status = "Draft"
)

func (s Status) Valid() bool {
	return s == StatusPublished || s == StatusDraft
}

// Project is a portfolio entry with every field populated.
// It is storage-agnostic and used across repository, view-model and HTTP layers.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"imageURL"`
	LiveLink    string    `json:"liveLink"`
	GithubLink  string    `json:"githubLink"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Defaulted names the fields FromDocument filled with a display default.
	Defaulted []string `json:"-"`
}

func (p Project) Published() bool { return p.Status == StatusPublished }

// IsDefaulted reports whether field holds a display default rather than a stored value.
func (p Project) IsDefaulted(field string) bool {
	for _, f := range p.Defaulted {
		if f == field {
			return true
		}
	}
	return false
}

// Fields is the full payload of a new project.
type Fields struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"imageURL"`
	LiveLink    string   `json:"liveLink"`
	GithubLink  string   `json:"githubLink"`
	Status      Status   `json:"status"`
}

// Patch is a partial update. Nil members are left untouched; the id is never part of it.
type Patch struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	ImageURL    *string   `json:"imageURL,omitempty"`
	LiveLink    *string   `json:"liveLink,omitempty"`
	GithubLink  *string   `json:"githubLink,omitempty"`
	Status      *Status   `json:"status,omitempty"`
}
