package entity

import "strings"

// NormalizeTags lower-cases every tag, drops empties, and removes
// duplicates while keeping first-seen order. The stored tag set therefore
// never contains case-variant duplicates or blank entries.
func NormalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		normalized = append(normalized, t)
	}

	return normalized
}
