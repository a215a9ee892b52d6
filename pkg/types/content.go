// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the tulz-content pipeline:
// blog posts produced by the content loader, tool catalog entries, and the
// flattened records written to the search index artifact.
package types

import (
	"net/url"
	"time"
)

// DefaultAuthor is the byline applied when a post omits the author field.
const DefaultAuthor = "Tulz Team"

// AvatarBaseURL seeds the generated placeholder avatar for authors without one.
const AvatarBaseURL = "https://api.dicebear.com/7.x/avataaars/svg?seed="

// Post is a blog post parsed from one content file. Posts are immutable once
// parsed and identified by (Category, Slug).
type Post struct {
	// Slug is the file name without its extension.
	Slug string `json:"slug" yaml:"slug"`

	// Title is the post title from front matter.
	Title string `json:"title" yaml:"title"`

	// Description is the summary from front matter.
	Description string `json:"description" yaml:"description"`

	// Date is the publication date and the only sort key.
	Date time.Time `json:"date" yaml:"date"`

	// Author is the byline (default "Tulz Team").
	Author string `json:"author" yaml:"author"`

	// AuthorAvatar is an avatar URL; defaults to AvatarFor(Author).
	AuthorAvatar string `json:"authorAvatar" yaml:"authorAvatar"`

	// Category is the category directory the post was loaded from.
	Category string `json:"category" yaml:"category"`

	// CoverImage is an optional hero image URL.
	CoverImage string `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`

	// Featured marks posts surfaced on the landing page.
	Featured bool `json:"featured" yaml:"featured"`

	// Keywords lists topic keywords in source order.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// Content is the raw body following the front matter.
	Content string `json:"content" yaml:"content"`

	// ReadTime is a human reading-time estimate, e.g. "4 min read".
	ReadTime string `json:"readTime" yaml:"readTime"`

	// Excerpt is the description, or the start of the body when no
	// description is set.
	Excerpt string `json:"excerpt" yaml:"excerpt"`
}

// Key returns the "category/slug" identity of the post.
func (p Post) Key() string {
	return p.Category + "/" + p.Slug
}

// URL returns the site-relative path of the post page.
func (p Post) URL() string {
	return PostURL(p.Category, p.Slug)
}

// PostURL builds the site-relative path for a post.
func PostURL(category, slug string) string {
	return "/blog/" + category + "/" + slug
}

// AvatarFor returns the generated placeholder avatar URL for an author. The
// author is query-escaped into the seed parameter.
func AvatarFor(author string) string {
	return AvatarBaseURL + url.QueryEscape(author)
}
