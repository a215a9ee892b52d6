// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tulz/tulz-content/internal/content"
	"github.com/tulz/tulz-content/pkg/types"
)

// CollectContent walks the content root in lexical order at any depth and
// returns one record per recognized file. A record's category is the name
// of the directory holding the file, or Uncategorized for files in the
// root. Hidden directories are skipped. Any unreadable or malformed file
// fails the whole collection.
func CollectContent(ctx context.Context, cfg types.ContentConfig, excerptLength int) ([]types.Record, error) {
	cfg = cfg.WithDefaults()
	root := filepath.Clean(cfg.Dir)
	exts := content.NormalizeExtensions(cfg.Extensions)

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading content root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", root)
	}

	records := []types.Record{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !content.HasExtension(d.Name(), exts) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		category := Uncategorized
		if dir := filepath.Dir(rel); dir != "." {
			category = filepath.Base(dir)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		doc, err := content.ParseDocument(data)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}

		records = append(records, ContentRecord(doc, category, content.SlugFromFile(d.Name()), excerptLength))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
