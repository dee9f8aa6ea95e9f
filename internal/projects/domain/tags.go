package domain

import "strings"

// ParseTags splits comma-separated text into trimmed, non-empty tags in input order.
// The result is never nil.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags renders tags back into the editable text form.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
