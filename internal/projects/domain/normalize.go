package domain

import (
	"strings"
	"time"
)

// Defaults shown for fields a stored document is missing.
const (
	DefaultTitle       = "Untitled Project"
	DefaultDescription = "No description provided."
	DefaultImageURL    = "https://images.pexels.com/photos/546819/pexels-photo-546819.jpeg"
	DefaultLink        = "#"
)

// Older documents used these names before the current field set.
var (
	imageAliases  = []string{FieldImageURL, "image"}
	githubAliases = []string{FieldGithubLink, "githubUrl", "github"}
	liveAliases   = []string{FieldLiveLink, "demoUrl", "liveUrl", "url"}
)

// FromDocument converts a raw stored document into a fully populated Project.
// Fields filled with a default are listed in Defaulted.
func FromDocument(id string, fields map[string]any) Project {
	p := Project{
		ID:        id,
		Tags:      toTags(fields[FieldTags]),
		CreatedAt: toTime(fields[FieldCreatedAt]),
		UpdatedAt: toTime(fields[FieldUpdatedAt]),
	}

	for _, s := range []struct {
		dst      *string
		field    string
		fallback string
		keys     []string
	}{
		{&p.Title, FieldTitle, DefaultTitle, []string{FieldTitle}},
		{&p.Description, FieldDescription, DefaultDescription, []string{FieldDescription}},
		{&p.ImageURL, FieldImageURL, DefaultImageURL, imageAliases},
		{&p.GithubLink, FieldGithubLink, DefaultLink, githubAliases},
		{&p.LiveLink, FieldLiveLink, DefaultLink, liveAliases},
	} {
		v, ok := firstString(fields, s.keys...)
		if !ok {
			v = s.fallback
			p.Defaulted = append(p.Defaulted, s.field)
		}
		*s.dst = v
	}

	p.Category = CategoryUncategorized
	if c, _ := fields[FieldCategory].(string); IsCategory(c) {
		p.Category = c
	} else {
		p.Defaulted = append(p.Defaulted, FieldCategory)
	}

	p.Status = StatusDraft
	if s, _ := fields[FieldStatus].(string); Status(s).Valid() {
		p.Status = Status(s)
	}

	return p
}

func firstString(fields map[string]any, keys ...string) (string, bool) {
	for _, k := range keys {
		if s, ok := fields[k].(string); ok && strings.TrimSpace(s) != "" {
			return s, true
		}
	}
	return "", false
}

func toTags(v any) []string {
	tags := []string{}
	switch list := v.(type) {
	case []string:
		for _, t := range list {
			if t != "" {
				tags = append(tags, t)
			}
		}
	case []any:
		for _, item := range list {
			if t, ok := item.(string); ok && t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// toTime accepts store timestamps, RFC 3339 text and epoch milliseconds. Anything else is zero.
func toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case *time.Time:
		if t != nil {
			return *t
		}
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case int64:
		return time.UnixMilli(t)
	case float64:
		return time.UnixMilli(int64(t))
	}
	return time.Time{}
}
