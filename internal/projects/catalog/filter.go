package catalog

import (
	"strings"

	"github.com/haleem-akmal/portfolio/internal/projects/domain"
)

// Filter holds the two independent predicates of a project list. An empty Category means All.
type Filter struct {
	Search   string `form:"q" json:"q"`
	Category string `form:"category" json:"category"`
}

func (f Filter) category() string {
	if f.Category == "" {
		return domain.CategoryAll
	}
	return f.Category
}

func (f Filter) term() string {
	return strings.ToLower(strings.TrimSpace(f.Search))
}

// IsZero reports whether f lets every project through.
func (f Filter) IsZero() bool {
	return f.category() == domain.CategoryAll && f.term() == ""
}

// Matches reports whether p is in the category (or the category is All) and contains the
// search term in its title, tags, category or description, ignoring case.
func (f Filter) Matches(p domain.Project) bool {
	if c := f.category(); c != domain.CategoryAll && p.Category != c {
		return false
	}
	term := f.term()
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack(p)), term)
}

func haystack(p domain.Project) string {
	return p.Title + " " + strings.Join(p.Tags, " ") + " " + p.Category + " " + p.Description
}

// Apply returns the projects matching f in their original order.
func Apply(projects []domain.Project, f Filter) []domain.Project {
	out := make([]domain.Project, 0, len(projects))
	for _, p := range projects {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}
