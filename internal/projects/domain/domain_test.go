package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleem-akmal/portfolio/internal/store"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", []string{}},
		{"only separators", " , ,, ", []string{}},
		{"trims and keeps order", " Go ,React,  , Firebase ", []string{"Go", "React", "Firebase"}},
		{"single", "Go", []string{"Go"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTags(tt.raw))
		})
	}
}

func TestParseTags_JoinRoundTripIsStable(t *testing.T) {
	for _, raw := range []string{"a, b ,c", " x ,, y", "", "solo"} {
		once := ParseTags(raw)
		assert.Equal(t, once, ParseTags(JoinTags(once)), raw)
	}
}

func TestFieldsValidate(t *testing.T) {
	valid := Fields{
		Title:       "Demo",
		Description: "d",
		ImageURL:    "https://img",
		LiveLink:    "https://live",
		GithubLink:  "https://gh",
	}
	require.NoError(t, valid.Validate())

	invalid := valid
	invalid.Title = "   "
	invalid.GithubLink = ""
	err := invalid.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldTitle, FieldGithubLink}, verr.Missing)

	badEnum := valid
	badEnum.Category = "Game"
	badEnum.Status = "Archived"
	require.ErrorAs(t, badEnum.Validate(), &verr)
	assert.Equal(t, []string{FieldCategory, FieldStatus}, verr.Invalid)
}

func TestPatchValidate(t *testing.T) {
	assert.ErrorIs(t, Patch{}.Validate(), ErrValidation)

	blank := " "
	assert.ErrorIs(t, Patch{Title: &blank}.Validate(), ErrValidation)

	title := "Renamed"
	published := StatusPublished
	assert.NoError(t, Patch{Title: &title, Status: &published}.Validate())

	unknown := Status("Hidden")
	assert.ErrorIs(t, Patch{Status: &unknown}.Validate(), ErrValidation)
}

func TestFieldsDocument(t *testing.T) {
	doc := Fields{Title: "Demo"}.Document()
	assert.Equal(t, "Published", doc[FieldStatus])
	assert.Equal(t, "Web App", doc[FieldCategory])
	assert.Equal(t, []string{}, doc[FieldTags])
	assert.True(t, store.IsServerTimestamp(doc[FieldCreatedAt]))
	_, hasID := doc["id"]
	assert.False(t, hasID)
}

func TestPatchDocument(t *testing.T) {
	title := "New"
	doc := Patch{Title: &title}.Document()
	assert.Len(t, doc, 2)
	assert.Equal(t, "New", doc[FieldTitle])
	assert.True(t, store.IsServerTimestamp(doc[FieldUpdatedAt]))

	assert.True(t, Patch{}.IsEmpty())
	assert.False(t, PatchFrom(Fields{}).IsEmpty())
}

func TestFromDocument(t *testing.T) {
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty document gets every default", func(t *testing.T) {
		p := FromDocument("p1", map[string]any{})
		assert.Equal(t, "p1", p.ID)
		assert.Equal(t, DefaultTitle, p.Title)
		assert.Equal(t, DefaultDescription, p.Description)
		assert.Equal(t, CategoryUncategorized, p.Category)
		assert.Equal(t, DefaultImageURL, p.ImageURL)
		assert.Equal(t, DefaultLink, p.GithubLink)
		assert.Equal(t, DefaultLink, p.LiveLink)
		assert.Equal(t, StatusDraft, p.Status)
		assert.NotNil(t, p.Tags)
		assert.Empty(t, p.Tags)
		assert.True(t, p.CreatedAt.IsZero())
		assert.ElementsMatch(t, []string{
			FieldTitle, FieldDescription, FieldImageURL, FieldGithubLink, FieldLiveLink, FieldCategory,
		}, p.Defaulted)
	})

	t.Run("legacy field names", func(t *testing.T) {
		p := FromDocument("p2", map[string]any{
			"image":     "https://img",
			"githubUrl": "https://gh",
			"demoUrl":   "https://demo",
			"tags":      []any{"Go", 3, "", "Redis"},
			"status":    "Published",
			"category":  "Dashboard",
			"createdAt": created,
		})
		assert.Equal(t, "https://img", p.ImageURL)
		assert.Equal(t, "https://gh", p.GithubLink)
		assert.Equal(t, "https://demo", p.LiveLink)
		assert.Equal(t, []string{"Go", "Redis"}, p.Tags)
		assert.True(t, p.Published())
		assert.Equal(t, "Dashboard", p.Category)
		assert.Equal(t, created, p.CreatedAt)
		assert.False(t, p.IsDefaulted(FieldImageURL))
		assert.True(t, p.IsDefaulted(FieldTitle))
	})

	t.Run("unknown category and status", func(t *testing.T) {
		p := FromDocument("p3", map[string]any{"category": "Project", "status": "Archived", "tags": "Go"})
		assert.Equal(t, CategoryUncategorized, p.Category)
		assert.Equal(t, StatusDraft, p.Status)
		assert.Empty(t, p.Tags)
	})

	t.Run("textual and numeric timestamps", func(t *testing.T) {
		p := FromDocument("p4", map[string]any{
			"createdAt": created.Format(time.RFC3339),
			"updatedAt": float64(created.UnixMilli()),
		})
		assert.True(t, created.Equal(p.CreatedAt))
		assert.True(t, created.Equal(p.UpdatedAt))
	})
}

func TestFailure(t *testing.T) {
	cause := errors.New("unavailable")
	err := error(NewFailure(ErrFetchFailed, cause))
	assert.True(t, errors.Is(err, ErrFetchFailed))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrCreateFailed))
	assert.Equal(t, "could not load projects: unavailable", err.Error())
}

func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"Web App", "Dashboard", "Mobile App", "Website", "AI/ML"}, Categories())
	assert.Equal(t, "All", FilterCategories()[0])
	assert.False(t, IsCategory(CategoryUncategorized))
	assert.False(t, IsCategory(CategoryAll))
}
