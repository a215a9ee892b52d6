// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tulz/tulz-content/pkg/types"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, types.DefaultContentDir, cfg.Content.Dir)
	assert.Equal(t, types.DefaultCategories, cfg.Content.Categories)
	assert.Equal(t, cfg.Content, cfg.Index.Content)
	assert.Equal(t, types.DefaultCatalogPath, cfg.Index.Catalog.Path)
	assert.Equal(t, types.DefaultCollection, cfg.Index.Catalog.Collection)
	assert.Equal(t, types.DefaultIndexPath, cfg.Index.OutputPath)
	assert.Equal(t, types.DefaultExcerptLength, cfg.Index.ExcerptLength)
	assert.Empty(t, cfg.Store.Path)
	assert.Equal(t, 20, cfg.Store.MaxResults)
}

func TestLoadConfigOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("content.dir", "site/content")
	v.Set("content.categories", []string{"news"})
	v.Set("index.catalog.path", "src/tools.ts")
	v.Set("index.store_path", "data/index.db")

	cfg, err := loadConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "site/content", cfg.Index.Content.Dir)
	assert.Equal(t, []string{"news"}, cfg.Index.Content.Categories)
	assert.Equal(t, "src/tools.ts", cfg.Index.Catalog.Path)
	assert.Equal(t, "data/index.db", cfg.Store.Path, "store path falls back to the index mirror")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("TULZ_CONTENT_INDEX_OUTPUT_PATH", "dist/search.json")
	t.Setenv("TULZ_CONTENT_STORE_PATH", "var/mirror.db")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("TULZ_CONTENT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "dist/search.json", cfg.Index.OutputPath)
	assert.Equal(t, "var/mirror.db", cfg.Store.Path)
}

func TestNewLogger(t *testing.T) {
	l, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(-1), "debug is off by default")

	l, err = newLogger(true)
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1))
}

func TestPrintRecords(t *testing.T) {
	var buf bytes.Buffer
	printRecords(&buf, nil)
	assert.Equal(t, "No results.\n", buf.String())

	buf.Reset()
	printRecords(&buf, []types.Record{
		{Kind: types.KindTool, Category: "developer", Title: "JSON Formatter", URL: "/tools/json-formatter"},
	})
	out := buf.String()
	assert.Contains(t, out, "JSON Formatter")
	assert.Contains(t, out, "/tools/json-formatter")
	assert.Contains(t, out, "1 results")
}

func TestRenderPostRaw(t *testing.T) {
	var buf bytes.Buffer
	post := types.Post{
		Slug:     "json-basics",
		Category: "tutorials",
		Title:    "JSON Basics",
		Author:   "Ada",
		Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		ReadTime: "2 min read",
		Excerpt:  "Learn JSON.",
		Content:  "## Objects\n",
	}

	require.NoError(t, renderPost(&buf, post, true))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# JSON Basics\n"))
	assert.Contains(t, out, "March 1, 2024")
	assert.Contains(t, out, "Tutorials")
	assert.True(t, strings.HasSuffix(out, "## Objects\n"))
}
