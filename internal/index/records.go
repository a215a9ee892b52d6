// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"errors"
	"fmt"

	"github.com/tulz/tulz-content/internal/content"
	"github.com/tulz/tulz-content/pkg/types"
)

// Uncategorized is the category given to content files placed directly in
// the content root.
const Uncategorized = "uncategorized"

// dateLayout is the record date format.
const dateLayout = "2006-01-02"

// ErrDuplicateID reports two index records with the same id.
var ErrDuplicateID = errors.New("duplicate record id")

// ContentID returns the record id of a post.
func ContentID(category, slug string) string {
	return "content-" + category + "-" + slug
}

// ToolID returns the record id of the tool at ordinal.
func ToolID(ordinal int) string {
	return fmt.Sprintf("tool-%d", ordinal)
}

// ContentRecord flattens a parsed post into an index record. The excerpt
// is the first excerptLength runes of the plain-text body.
func ContentRecord(doc content.Document, category, slug string, excerptLength int) types.Record {
	tags := make([]string, len(doc.Keywords))
	copy(tags, doc.Keywords)

	return types.Record{
		ID:             ContentID(category, slug),
		Kind:           types.KindContent,
		Title:          doc.Title,
		Description:    doc.Description,
		Category:       category,
		Tags:           tags,
		URL:            types.PostURL(category, slug),
		ContentExcerpt: prefix(content.PlainText(doc.Body), excerptLength),
		Author:         doc.Author,
		Date:           doc.Date.Format(dateLayout),
	}
}

// ToolRecords flattens accepted catalog tools into index records, numbered
// by their position in tools. Tool records never carry tags.
func ToolRecords(tools []types.Tool) []types.Record {
	records := make([]types.Record, len(tools))
	for i, t := range tools {
		records[i] = types.Record{
			ID:             ToolID(i),
			Kind:           types.KindTool,
			Title:          t.Name,
			Description:    t.Description,
			Category:       t.Category,
			Tags:           []string{},
			URL:            t.Href,
			ContentExcerpt: t.Description,
		}
	}
	return records
}

// CheckUnique returns ErrDuplicateID naming the first repeated id.
func CheckUnique(records []types.Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if prev, ok := seen[r.ID]; ok {
			return fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, r.ID, prev, i)
		}
		seen[r.ID] = i
	}
	return nil
}

func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
