// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// RecordKind tags the source of an index record.
type RecordKind string

const (
	KindContent RecordKind = "content"
	KindTool    RecordKind = "tool"
)

// Record is one entry of the search index artifact. Content records carry
// Author and Date; tool records leave them empty.
type Record struct {
	// ID is unique across the index: "content-{category}-{slug}" or "tool-{ordinal}".
	ID string `json:"id" yaml:"id"`

	// Kind is "content" or "tool".
	Kind RecordKind `json:"kind" yaml:"kind"`

	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Category    string `json:"category" yaml:"category"`

	// Tags holds post keywords. Always empty for tools.
	Tags []string `json:"tags" yaml:"tags"`

	// URL is the site-relative path of the target page.
	URL string `json:"url" yaml:"url"`

	// ContentExcerpt is the truncated plain-text body.
	ContentExcerpt string `json:"contentExcerpt" yaml:"contentExcerpt"`

	Author string `json:"author,omitempty" yaml:"author,omitempty"`

	// Date is the post date in YYYY-MM-DD form.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

// SearchText returns the lowercased text a search query is matched
// against: title, description, category, tags and excerpt, one per line.
// Lowercasing uses Unicode case mapping.
func (r Record) SearchText() string {
	fields := []string{r.Title, r.Description, r.Category, strings.Join(r.Tags, " "), r.ContentExcerpt}
	return strings.ToLower(strings.Join(fields, "\n"))
}
