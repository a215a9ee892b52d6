// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"strings"

	"github.com/tulz/tulz-content/pkg/types"
)

// Match returns the records containing every word of query as a
// case-insensitive substring of the title, description, category, tags or
// excerpt. Results keep index order; there is no ranking. An empty query
// matches every record.
func Match(records []types.Record, query string) []types.Record {
	words := strings.Fields(strings.ToLower(query))
	matched := []types.Record{}
	for _, r := range records {
		if matchesAll(r.SearchText(), words) {
			matched = append(matched, r)
		}
	}
	return matched
}

// Filter returns the records of kind and category. Empty arguments do not
// filter.
func Filter(records []types.Record, kind types.RecordKind, category string) []types.Record {
	filtered := []types.Record{}
	for _, r := range records {
		if kind != "" && r.Kind != kind {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesAll(text string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}
