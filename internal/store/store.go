// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store mirrors the search index into a SQLite database so records
// can be queried with filters and exported without re-reading the artifact.
// The mirror is replaced wholesale on every build, like the artifact.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/tulz/tulz-content/pkg/types"
)

const (
	defaultMaxResults = 20

	// schemaVersion is stored in PRAGMA user_version. Older mirrors are
	// dropped and recreated; the next build refills them.
	schemaVersion = 1

	// timeLayout sorts lexically in time order, unlike RFC3339Nano.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// ErrNoBuild reports a store that has never been loaded.
var ErrNoBuild = errors.New("no index build recorded")

// Store manages the index mirror database.
type Store struct {
	db         *sql.DB
	path       string
	maxResults int
	logger     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger.Named("store")
		}
	}
}

// NewStore opens or creates the database at cfg.Path and creates the
// schema if it does not exist.
func NewStore(cfg types.StoreConfig, opts ...Option) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		path:       cfg.Path,
		maxResults: maxResults,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	var statements []string
	if version < schemaVersion {
		statements = append(statements,
			`DROP TABLE IF EXISTS records`,
			`DROP TABLE IF EXISTS builds`,
		)
	}
	statements = append(statements,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			category TEXT,
			tags TEXT,
			url TEXT NOT NULL,
			excerpt TEXT,
			author TEXT,
			date TEXT,
			search_text TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_kind ON records(kind)`,
		`CREATE INDEX IF NOT EXISTS idx_records_category ON records(category)`,
		`CREATE TABLE IF NOT EXISTS builds (
			build_id TEXT PRIMARY KEY,
			checksum TEXT NOT NULL,
			content_count INTEGER NOT NULL,
			tool_count INTEGER NOT NULL,
			built_at TEXT NOT NULL
		)`,
		fmt.Sprintf(`PRAGMA user_version = %d`, schemaVersion),
	)

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Build describes one index build loaded into the store.
type Build struct {
	ID       string    `json:"build_id" yaml:"build_id"`
	Checksum string    `json:"checksum" yaml:"checksum"`
	Content  int       `json:"content" yaml:"content"`
	Tools    int       `json:"tools" yaml:"tools"`
	BuiltAt  time.Time `json:"built_at" yaml:"built_at"`
}

// Replace swaps the stored records for records in one transaction and
// records the build. Insertion order is preserved and is the order
// Retrieve returns.
func (s *Store) Replace(ctx context.Context, build Build, records []types.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	// Restart rowids so ordering matches the new build only.
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'records'`); err != nil {
		return fmt.Errorf("resetting sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (id, kind, title, description, category, tags, url, excerpt, author, date, search_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		tags := r.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return fmt.Errorf("encoding tags for %s: %w", r.ID, err)
		}
		_, err = stmt.ExecContext(ctx,
			r.ID, string(r.Kind), r.Title, r.Description, r.Category,
			string(tagsJSON), r.URL, r.ContentExcerpt, r.Author, r.Date,
			r.SearchText(),
		)
		if err != nil {
			return fmt.Errorf("inserting record %s: %w", r.ID, err)
		}
	}

	if build.BuiltAt.IsZero() {
		build.BuiltAt = time.Now()
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO builds (build_id, checksum, content_count, tool_count, built_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(build_id) DO UPDATE SET
			checksum=excluded.checksum, content_count=excluded.content_count,
			tool_count=excluded.tool_count, built_at=excluded.built_at`,
		build.ID, build.Checksum, build.Content, build.Tools,
		build.BuiltAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording build: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing records: %w", err)
	}

	s.logger.Debug("records replaced",
		zap.String("build_id", build.ID), zap.Int("records", len(records)))
	return nil
}

// LastBuild returns the most recent build loaded into the store.
func (s *Store) LastBuild(ctx context.Context) (Build, error) {
	var (
		b       Build
		builtAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT build_id, checksum, content_count, tool_count, built_at
		 FROM builds ORDER BY built_at DESC LIMIT 1`,
	).Scan(&b.ID, &b.Checksum, &b.Content, &b.Tools, &builtAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Build{}, ErrNoBuild
		}
		return Build{}, fmt.Errorf("reading last build: %w", err)
	}

	b.BuiltAt, err = time.Parse(timeLayout, builtAt)
	if err != nil {
		return Build{}, fmt.Errorf("parsing build time %q: %w", builtAt, err)
	}
	return b, nil
}

// Count returns the number of stored records of kind, or of all kinds
// when kind is empty.
func (s *Store) Count(ctx context.Context, kind types.RecordKind) (int, error) {
	query := `SELECT count(*) FROM records`
	var args []any
	if kind != "" {
		query += ` WHERE kind = ?`
		args = append(args, string(kind))
	}

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting records: %w", err)
	}
	return n, nil
}
