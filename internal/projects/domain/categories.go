package domain

const (
	// CategoryAll selects every project in a filter; it is never stored.
	CategoryAll = "All"
	// CategoryUncategorized is shown for projects stored without a known category.
	CategoryUncategorized = "Uncategorized"
)

var categories = []string{"Web App", "Dashboard", "Mobile App", "Website", "AI/ML"}

// Categories returns the selectable categories in display order. The first is the form default.
func Categories() []string {
	return append([]string(nil), categories...)
}

// FilterCategories returns All followed by Categories.
func FilterCategories() []string {
	return append([]string{CategoryAll}, categories...)
}

func IsCategory(c string) bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func DefaultCategory() string { return categories[0] }
