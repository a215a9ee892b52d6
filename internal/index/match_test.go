// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tulz/tulz-content/pkg/types"
)

func matchRecords() []types.Record {
	return []types.Record{
		{ID: "content-tutorials-json-basics", Kind: types.KindContent, Title: "JSON Basics",
			Description: "Learn the syntax", Category: "tutorials", Tags: []string{"json", "Beginner"},
			ContentExcerpt: "Objects, arrays and strings."},
		{ID: "content-guides-regex", Kind: types.KindContent, Title: "Regex Guide",
			Description: "Patterns", Category: "guides", Tags: []string{"regex"},
			ContentExcerpt: "Match JSON keys with a regex."},
		{ID: "tool-0", Kind: types.KindTool, Title: "JSON Formatter",
			Description: "Pretty-print JSON", Category: "developer", Tags: []string{}},
		{ID: "tool-1", Kind: types.KindTool, Title: "Word Counter",
			Description: "Count words", Category: "text", Tags: []string{}},
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"single word keeps index order", "json", []string{"content-tutorials-json-basics", "content-guides-regex", "tool-0"}},
		{"case-insensitive", "JsOn", []string{"content-tutorials-json-basics", "content-guides-regex", "tool-0"}},
		{"words are AND-ed", "json regex", []string{"content-guides-regex"}},
		{"substring inside word", "format", []string{"tool-0"}},
		{"matches tags", "beginner", []string{"content-tutorials-json-basics"}},
		{"matches category", "developer", []string{"tool-0"}},
		{"matches excerpt", "arrays", []string{"content-tutorials-json-basics"}},
		{"extra whitespace", "  count   words ", []string{"tool-1"}},
		{"no match", "yaml", []string{}},
		{"empty query matches all", "", []string{"content-tutorials-json-basics", "content-guides-regex", "tool-0", "tool-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Match(matchRecords(), tt.query)))
		})
	}
}

func TestMatchFoldsNonASCII(t *testing.T) {
	records := []types.Record{
		{ID: "content-news-uber", Title: "Über Straßen", Tags: []string{"Ça-va"}},
		{ID: "tool-0", Title: "ÉTÉ Planner", Tags: []string{}},
	}
	assert.Equal(t, []string{"content-news-uber"}, ids(Match(records, "ÜBER")))
	assert.Equal(t, []string{"content-news-uber"}, ids(Match(records, "ça")))
	assert.Equal(t, []string{"tool-0"}, ids(Match(records, "été")))
}

func TestMatchDoesNotSearchURLOrID(t *testing.T) {
	records := []types.Record{{ID: "tool-0", Title: "A", URL: "/tools/secret-path", Tags: []string{}}}
	assert.Empty(t, Match(records, "secret"))
	assert.Empty(t, Match(records, "tool-0"))
}

func TestFilter(t *testing.T) {
	records := matchRecords()

	assert.Equal(t, []string{"tool-0", "tool-1"}, ids(Filter(records, types.KindTool, "")))
	assert.Equal(t, []string{"content-guides-regex"}, ids(Filter(records, "", "guides")))
	assert.Equal(t, []string{}, ids(Filter(records, types.KindTool, "guides")))
	assert.Len(t, Filter(records, "", ""), 4)
}
