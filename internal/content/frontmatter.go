// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
	"go.yaml.in/yaml/v3"

	"github.com/tulz/tulz-content/pkg/types"
)

// ErrInvalidFrontMatter reports a content file whose front matter block is
// missing, unparseable, or lacks a required field.
var ErrInvalidFrontMatter = errors.New("invalid front matter")

// yamlFormat delimits front matter with "---" lines and decodes it with
// yaml v3 so the raw node stays available for key inspection.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// recognizedKeys is the front matter schema. Anything else is reported in
// Document.UnknownKeys and dropped.
var recognizedKeys = map[string]bool{
	"title":        true,
	"description":  true,
	"date":         true,
	"author":       true,
	"authorAvatar": true,
	"category":     true,
	"coverImage":   true,
	"featured":     true,
	"keywords":     true,
}

type frontMatter struct {
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Date         string   `yaml:"date"`
	Author       string   `yaml:"author"`
	AuthorAvatar string   `yaml:"authorAvatar"`
	Category     string   `yaml:"category"`
	CoverImage   string   `yaml:"coverImage"`
	Featured     bool     `yaml:"featured"`
	Keywords     []string `yaml:"keywords"`
}

// Document is a parsed content file with schema defaults applied but no
// derived fields.
type Document struct {
	Title        string
	Description  string
	Date         time.Time
	Author       string
	AuthorAvatar string
	Category     string
	CoverImage   string
	Featured     bool
	Keywords     []string
	Body         string

	// UnknownKeys lists unrecognized front matter keys in sorted order.
	UnknownKeys []string
}

// ParseDocument splits a content file into front matter and body and
// validates the front matter against the schema. Title and date are
// required; a missing description is left empty and the post excerpt falls
// back to the body.
func ParseDocument(data []byte) (Document, error) {
	var node yaml.Node
	body, err := frontmatter.Parse(bytes.NewReader(data), &node, yamlFormat)
	if err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	if node.Kind == 0 {
		return Document{}, fmt.Errorf("%w: no front matter block", ErrInvalidFrontMatter)
	}

	var fm frontMatter
	if err := node.Decode(&fm); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}

	var missing []string
	if strings.TrimSpace(fm.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(fm.Date) == "" {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return Document{}, fmt.Errorf("%w: missing %s", ErrInvalidFrontMatter, strings.Join(missing, ", "))
	}

	date, err := dateparse.ParseIn(strings.TrimSpace(fm.Date), time.UTC)
	if err != nil {
		return Document{}, fmt.Errorf("%w: date %q: %v", ErrInvalidFrontMatter, fm.Date, err)
	}

	doc := Document{
		Title:        strings.TrimSpace(fm.Title),
		Description:  strings.TrimSpace(fm.Description),
		Date:         date,
		Author:       strings.TrimSpace(fm.Author),
		AuthorAvatar: strings.TrimSpace(fm.AuthorAvatar),
		Category:     strings.TrimSpace(fm.Category),
		CoverImage:   strings.TrimSpace(fm.CoverImage),
		Featured:     fm.Featured,
		Keywords:     fm.Keywords,
		Body:         string(body),
		UnknownKeys:  unknownKeys(&node),
	}
	if doc.Author == "" {
		doc.Author = types.DefaultAuthor
	}
	if doc.AuthorAvatar == "" {
		doc.AuthorAvatar = types.AvatarFor(doc.Author)
	}
	if doc.Keywords == nil {
		doc.Keywords = []string{}
	}
	return doc, nil
}

func unknownKeys(node *yaml.Node) []string {
	mapping := node
	if mapping.Kind == yaml.DocumentNode {
		if len(mapping.Content) == 0 {
			return nil
		}
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return nil
	}

	var keys []string
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if !recognizedKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
