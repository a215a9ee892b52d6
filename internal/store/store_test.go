// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/tulz/tulz-content/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "index", "content.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecords() []types.Record {
	return []types.Record{
		{
			ID: "content-tutorials-json-basics", Kind: types.KindContent,
			Title: "JSON Basics", Description: "Learn JSON syntax", Category: "tutorials",
			Tags: []string{"json", "beginner"}, URL: "/blog/tutorials/json-basics",
			ContentExcerpt: "JSON is a text format for structured data.",
			Author:         "Tulz Team", Date: "2024-03-01",
		},
		{
			ID: "content-guides-regex-cheatsheet", Kind: types.KindContent,
			Title: "Regex Cheatsheet", Description: "Patterns you will reuse", Category: "guides",
			Tags: []string{"regex"}, URL: "/blog/guides/regex-cheatsheet",
			ContentExcerpt: "Anchors, classes and groups_with_underscores.",
			Author:         "Ada", Date: "2024-01-15",
		},
		{
			ID: "tool-0", Kind: types.KindTool,
			Title: "JSON Formatter", Description: "Pretty-print JSON", Category: "developer",
			Tags: []string{}, URL: "/tools/json-formatter",
			ContentExcerpt: "Pretty-print JSON",
		},
		{
			ID: "tool-1", Kind: types.KindTool,
			Title: "Word Counter", Description: "Count words", Category: "text",
			Tags: []string{}, URL: "/tools/word-counter",
			ContentExcerpt: "Count words",
		},
	}
}

func loadSample(t *testing.T, s *Store) {
	t.Helper()
	build := Build{ID: "build-1", Checksum: "00000000deadbeef", Content: 2, Tools: 2,
		BuiltAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Replace(context.Background(), build, sampleRecords()))
}

func ids(records []types.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// --- tests ---

func TestNewStoreRequiresPath(t *testing.T) {
	_, err := NewStore(types.StoreConfig{})
	assert.Error(t, err)
}

func TestNewStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.db")
	s, err := NewStore(types.StoreConfig{Path: path})
	require.NoError(t, err)
	loadSample(t, s)
	require.NoError(t, s.Close())

	s, err = NewStore(types.StoreConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	n, err := s.Count(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestReplaceRoundTrip(t *testing.T) {
	s := testStore(t)
	loadSample(t, s)

	got, err := s.Retrieve(context.Background(), QueryOptions{})
	require.NoError(t, err)
	if diff := cmp.Diff(sampleRecords(), got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestReplaceDiscardsPreviousBuild(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	loadSample(t, s)

	next := []types.Record{{ID: "tool-0", Kind: types.KindTool, Title: "Only", URL: "/only", Tags: []string{}}}
	require.NoError(t, s.Replace(ctx, Build{ID: "build-2", Checksum: "1", Tools: 1,
		BuiltAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}, next))

	got, err := s.Retrieve(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"tool-0"}, ids(got))

	last, err := s.LastBuild(ctx)
	require.NoError(t, err)
	assert.Equal(t, "build-2", last.ID)
	assert.Equal(t, 1, last.Tools)
}

func TestReplaceRejectsDuplicateIDs(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	loadSample(t, s)

	dup := []types.Record{
		{ID: "x", Kind: types.KindTool, Title: "a", URL: "/a"},
		{ID: "x", Kind: types.KindTool, Title: "b", URL: "/b"},
	}
	err := s.Replace(ctx, Build{ID: "bad", Checksum: "0"}, dup)
	require.Error(t, err)

	// The failed transaction leaves the previous build in place.
	n, err := s.Count(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 4, n)
}

func TestRetrieve(t *testing.T) {
	s := testStore(t)
	loadSample(t, s)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"all in index order", QueryOptions{}, []string{"content-tutorials-json-basics", "content-guides-regex-cheatsheet", "tool-0", "tool-1"}},
		{"case-insensitive substring", QueryOptions{Query: "JSON"}, []string{"content-tutorials-json-basics", "tool-0"}},
		{"words are AND-ed", QueryOptions{Query: "json pretty"}, []string{"tool-0"}},
		{"matches tags", QueryOptions{Query: "beginner"}, []string{"content-tutorials-json-basics"}},
		{"matches category", QueryOptions{Query: "guides"}, []string{"content-guides-regex-cheatsheet"}},
		{"matches excerpt", QueryOptions{Query: "anchors"}, []string{"content-guides-regex-cheatsheet"}},
		{"underscore is literal", QueryOptions{Query: "groups_with"}, []string{"content-guides-regex-cheatsheet"}},
		{"percent is literal", QueryOptions{Query: "100%"}, []string{}},
		{"kind filter", QueryOptions{Kind: types.KindTool}, []string{"tool-0", "tool-1"}},
		{"category filter", QueryOptions{Category: "tutorials"}, []string{"content-tutorials-json-basics"}},
		{"tag filter", QueryOptions{Tags: []string{"json", "beginner"}}, []string{"content-tutorials-json-basics"}},
		{"query and kind", QueryOptions{Query: "json", Kind: types.KindContent}, []string{"content-tutorials-json-basics"}},
		{"limit", QueryOptions{MaxResults: 2}, []string{"content-tutorials-json-basics", "content-guides-regex-cheatsheet"}},
		{"no match", QueryOptions{Query: "kubernetes"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Retrieve(context.Background(), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestRetrieveFoldsNonASCII(t *testing.T) {
	s := testStore(t)
	records := []types.Record{
		{ID: "content-news-uber", Kind: types.KindContent, Title: "Über Straßen",
			Category: "news", Tags: []string{"Ça-va"}, URL: "/blog/news/uber"},
		{ID: "tool-0", Kind: types.KindTool, Title: "ÉTÉ Planner", Category: "text",
			Tags: []string{}, URL: "/tools/ete"},
	}
	require.NoError(t, s.Replace(context.Background(), Build{ID: "b"}, records))

	tests := []struct {
		query string
		want  []string
	}{
		{"ÜBER", []string{"content-news-uber"}},
		{"über", []string{"content-news-uber"}},
		{"ça", []string{"content-news-uber"}},
		{"été", []string{"tool-0"}},
		{"ÉtÉ planner", []string{"tool-0"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := s.Retrieve(context.Background(), QueryOptions{Query: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestNewStoreUpgradesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE records (id TEXT PRIMARY KEY, kind TEXT, title TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	s, err := NewStore(types.StoreConfig{Path: path})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	loadSample(t, s)
	got, err := s.Retrieve(context.Background(), QueryOptions{Query: "json"})
	require.NoError(t, err)
	assert.Equal(t, []string{"content-tutorials-json-basics", "tool-0"}, ids(got))

	_, err = s.LastBuild(context.Background())
	require.NoError(t, err)
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.True(t, QueryOptions{Query: "  ", MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Kind: types.KindTool}.IsEmpty())
	assert.False(t, QueryOptions{Query: "x"}.IsEmpty())
}

func TestCount(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	loadSample(t, s)

	n, err := s.Count(ctx, types.KindContent)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = s.Count(ctx, types.KindTool)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLastBuildEmpty(t *testing.T) {
	s := testStore(t)
	_, err := s.LastBuild(context.Background())
	assert.ErrorIs(t, err, ErrNoBuild)
}

func TestExportJSON(t *testing.T) {
	s := testStore(t)
	loadSample(t, s)

	var buf bytes.Buffer
	require.NoError(t, s.ExportJSON(context.Background(), &buf, QueryOptions{Kind: types.KindTool}))

	var doc Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "build-1", doc.Build.ID)
	assert.Equal(t, "00000000deadbeef", doc.Build.Checksum)
	assert.True(t, doc.Build.BuiltAt.Equal(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"tool-0", "tool-1"}, ids(doc.Records))
}

func TestExportYAML(t *testing.T) {
	s := testStore(t)
	loadSample(t, s)

	var buf bytes.Buffer
	require.NoError(t, s.ExportYAML(context.Background(), &buf, QueryOptions{}))

	var doc Export
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 2, doc.Build.Content)
	if diff := cmp.Diff(sampleRecords(), doc.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestExportWithoutBuild(t *testing.T) {
	s := testStore(t)
	var buf bytes.Buffer
	err := s.ExportJSON(context.Background(), &buf, QueryOptions{})
	assert.ErrorIs(t, err, ErrNoBuild)
}
