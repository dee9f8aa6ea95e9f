package domain

import (
	"sort"
	"strings"

	"github.com/haleem-akmal/portfolio/internal/store"
)

// Validate checks that the fields every published card links to are present.
func (f Fields) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{FieldTitle, f.Title},
		{FieldDescription, f.Description},
		{FieldImageURL, f.ImageURL},
		{FieldLiveLink, f.LiveLink},
		{FieldGithubLink, f.GithubLink},
	}

	verr := &ValidationError{}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			verr.Missing = append(verr.Missing, r.name)
		}
	}
	if f.Category != "" && !IsCategory(f.Category) {
		verr.Invalid = append(verr.Invalid, FieldCategory)
	}
	if f.Status != "" && !f.Status.Valid() {
		verr.Invalid = append(verr.Invalid, FieldStatus)
	}
	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Validate rejects an empty patch, blanked required fields and values outside their enumeration.
func (p Patch) Validate() error {
	if p.IsEmpty() {
		return &ValidationError{Missing: []string{"any field"}}
	}

	verr := &ValidationError{}
	for name, v := range map[string]*string{
		FieldTitle:       p.Title,
		FieldDescription: p.Description,
		FieldImageURL:    p.ImageURL,
		FieldLiveLink:    p.LiveLink,
		FieldGithubLink:  p.GithubLink,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			verr.Missing = append(verr.Missing, name)
		}
	}
	sort.Strings(verr.Missing)
	if p.Category != nil && !IsCategory(*p.Category) {
		verr.Invalid = append(verr.Invalid, FieldCategory)
	}
	if p.Status != nil && !p.Status.Valid() {
		verr.Invalid = append(verr.Invalid, FieldStatus)
	}
	if len(verr.Missing) > 0 || len(verr.Invalid) > 0 {
		return verr
	}
	return nil
}

// Document renders the insert payload. createdAt is stamped by the store.
func (f Fields) Document() map[string]any {
	tags := f.Tags
	if tags == nil {
		tags = []string{}
	}
	status := f.Status
	if !status.Valid() {
		status = StatusPublished
	}
	category := f.Category
	if category == "" {
		category = DefaultCategory()
	}

	return map[string]any{
		FieldTitle:       f.Title,
		FieldDescription: f.Description,
		FieldCategory:    category,
		FieldTags:        tags,
		FieldImageURL:    f.ImageURL,
		FieldLiveLink:    f.LiveLink,
		FieldGithubLink:  f.GithubLink,
		FieldStatus:      string(status),
		FieldCreatedAt:   store.ServerTimestamp,
	}
}

func (p Patch) IsEmpty() bool {
	return len(p.fields()) == 0
}

// Document renders only the present members plus the updatedAt stamp.
func (p Patch) Document() map[string]any {
	doc := p.fields()
	doc[FieldUpdatedAt] = store.ServerTimestamp
	return doc
}

func (p Patch) fields() map[string]any {
	doc := map[string]any{}
	if p.Title != nil {
		doc[FieldTitle] = *p.Title
	}
	if p.Description != nil {
		doc[FieldDescription] = *p.Description
	}
	if p.Category != nil {
		doc[FieldCategory] = *p.Category
	}
	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}
		doc[FieldTags] = tags
	}
	if p.ImageURL != nil {
		doc[FieldImageURL] = *p.ImageURL
	}
	if p.LiveLink != nil {
		doc[FieldLiveLink] = *p.LiveLink
	}
	if p.GithubLink != nil {
		doc[FieldGithubLink] = *p.GithubLink
	}
	if p.Status != nil {
		doc[FieldStatus] = string(*p.Status)
	}
	return doc
}

// PatchFrom builds a patch that sets every member of f.
func PatchFrom(f Fields) Patch {
	tags := f.Tags
	status := f.Status
	return Patch{
		Title:       &f.Title,
		Description: &f.Description,
		Category:    &f.Category,
		Tags:        &tags,
		ImageURL:    &f.ImageURL,
		LiveLink:    &f.LiveLink,
		GithubLink:  &f.GithubLink,
		Status:      &status,
	}
}
