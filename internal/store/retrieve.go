// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tulz/tulz-content/pkg/types"
)

// QueryOptions holds parameters for record queries.
type QueryOptions struct {
	// Query is matched as case-insensitive substrings. Each word must
	// appear in the title, description, category, tags or excerpt. Case
	// folding happens in Go on both the stored text and the query, so
	// non-ASCII text matches the same way as index.Match.
	Query string

	// Kind filters by record kind.
	Kind types.RecordKind

	// Category filters by exact category.
	Category string

	// Tags filters by one or more tags with AND semantics.
	Tags []string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return strings.TrimSpace(q.Query) == "" && q.Kind == "" && q.Category == "" && len(q.Tags) == 0
}

// Retrieve returns records matching opts in index order. There is no
// relevance ranking.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]types.Record, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, kind, title, description, category, tags, url, excerpt, author, date
		FROM records WHERE 1=1`)

	for _, word := range strings.Fields(opts.Query) {
		qb.WriteString(` AND instr(search_text, ?) > 0`)
		args = append(args, strings.ToLower(word))
	}

	if opts.Kind != "" {
		qb.WriteString(` AND kind = ?`)
		args = append(args, string(opts.Kind))
	}

	if opts.Category != "" {
		qb.WriteString(` AND category = ?`)
		args = append(args, opts.Category)
	}

	for _, tag := range opts.Tags {
		qb.WriteString(` AND EXISTS (SELECT 1 FROM json_each(records.tags) WHERE value = ?)`)
		args = append(args, tag)
	}

	qb.WriteString(` ORDER BY rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	results := []types.Record{}
	for rows.Next() {
		var (
			r        types.Record
			kind     string
			desc     sql.NullString
			category sql.NullString
			tagsJSON sql.NullString
			excerpt  sql.NullString
			author   sql.NullString
			date     sql.NullString
		)

		if err := rows.Scan(
			&r.ID, &kind, &r.Title, &desc, &category, &tagsJSON,
			&r.URL, &excerpt, &author, &date,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		r.Kind = types.RecordKind(kind)
		r.Description = desc.String
		r.Category = category.String
		r.ContentExcerpt = excerpt.String
		r.Author = author.String
		r.Date = date.String
		r.Tags = []string{}
		if tagsJSON.Valid && tagsJSON.String != "" {
			if err := json.Unmarshal([]byte(tagsJSON.String), &r.Tags); err != nil {
				return nil, fmt.Errorf("decoding tags for %s: %w", r.ID, err)
			}
		}

		results = append(results, r)
	}

	return results, rows.Err()
}
