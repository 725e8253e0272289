package service

import (
	"net/url"
	"sort"
	"strings"
)

// optionalString trims the input and stores the absence of text as nil
// rather than an empty string.
func optionalString(s string) *string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// favoritesFirst stably partitions items so every favorite precedes every
// non-favorite, keeping the store's order within each group. Display
// order only; nothing is persisted.
func favoritesFirst[T any](items []T, isFavorite func(T) bool) []T {
	sorted := make([]T, 0, len(items))
	for _, item := range items {
		if isFavorite(item) {
			sorted = append(sorted, item)
		}
	}
	for _, item := range items {
		if !isFavorite(item) {
			sorted = append(sorted, item)
		}
	}
	return sorted
}

// collectTags computes the deduplicated, sorted union of tag sets. It is
// recomputed from live records on every call, never cached.
func collectTags(tagSets [][]string) []string {
	seen := make(map[string]struct{})
	for _, tags := range tagSets {
		for _, tag := range tags {
			seen[tag] = struct{}{}
		}
	}

	all := make([]string, 0, len(seen))
	for tag := range seen {
		all = append(all, tag)
	}
	sort.Strings(all)
	return all
}

// isValidUrl accepts only absolute URLs (scheme and host present), the
// same shape the bookmark form refuses to submit without.
func isValidUrl(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
