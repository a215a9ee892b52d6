// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

const (
	// WordsPerMinute is the reading speed behind ReadTime.
	WordsPerMinute = 200

	// ExcerptLength caps the body-derived excerpt in runes.
	ExcerptLength = 160
)

var (
	// mdxStatement matches top-level MDX import/export lines.
	mdxStatement = regexp.MustCompile(`(?m)^(?:import|export)\s.*$`)

	// jsxTag matches capitalized JSX component tags.
	jsxTag = regexp.MustCompile(`</?[A-Z][A-Za-z0-9.]*(?:\s[^>]*)?/?>`)

	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

// PlainText renders a markdown or MDX body to whitespace-collapsed text.
// MDX statements and component tags are dropped before rendering.
func PlainText(body string) string {
	src := mdxStatement.ReplaceAllString(body, "")
	src = jsxTag.ReplaceAllString(src, "")

	var html bytes.Buffer
	if err := markdown.Convert([]byte(src), &html); err != nil {
		return collapseSpace(src)
	}
	doc, err := goquery.NewDocumentFromReader(&html)
	if err != nil {
		return collapseSpace(src)
	}
	return collapseSpace(doc.Text())
}

// WordCount counts whitespace-separated words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// ReadTime renders the reading time for a word count, rounded up to whole
// minutes with a floor of one minute.
func ReadTime(words int) string {
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// Excerpt returns the description when set, otherwise the first
// ExcerptLength runes of the plain body.
func Excerpt(description, plain string) string {
	if description != "" {
		return description
	}
	return Truncate(plain, ExcerptLength)
}

// Truncate shortens s to at most n runes. A truncated result ends in "…"
// and the ellipsis counts toward n.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
