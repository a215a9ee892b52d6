// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds the site search index: one JSON array of records
// spanning blog posts and catalog tools, regenerated wholesale on each
// build.
//
// Both sources are parsed fully into memory before anything is written. A
// build that fails while reading leaves the previous artifact untouched.
package index

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tulz/tulz-content/internal/catalog"
	"github.com/tulz/tulz-content/internal/store"
	"github.com/tulz/tulz-content/pkg/types"
)

// Summary holds the outcome of one build.
type Summary struct {
	BuildID    string         `json:"build_id" yaml:"build_id"`
	OutputPath string         `json:"output_path" yaml:"output_path"`
	Content    int            `json:"content" yaml:"content"`
	Tools      int            `json:"tools" yaml:"tools"`
	Skipped    []catalog.Skip `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Bytes      int            `json:"bytes" yaml:"bytes"`
	Checksum   string         `json:"checksum" yaml:"checksum"`
	Duration   time.Duration  `json:"duration" yaml:"duration"`
}

// Total returns the number of records written.
func (s Summary) Total() int {
	return s.Content + s.Tools
}

// HasSkips reports whether any catalog records were left out.
func (s Summary) HasSkips() bool {
	return len(s.Skipped) > 0
}

type options struct {
	logger  *zap.Logger
	buildID string
	now     func() time.Time
}

// Option configures Build.
type Option func(*options)

// WithLogger sets the build logger.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBuildID fixes the build id instead of generating one.
func WithBuildID(id string) Option {
	return func(o *options) {
		if id != "" {
			o.buildID = id
		}
	}
}

// WithClock sets the time source used for durations and timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// Build collects content and catalog records, writes the artifact to
// cfg.OutputPath, and optionally mirrors it into SQLite and writes build
// metrics. Progress lines go to w.
func Build(ctx context.Context, cfg types.IndexConfig, w io.Writer, opts ...Option) (Summary, error) {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.buildID == "" {
		o.buildID = uuid.NewString()
	}

	cfg = cfg.WithDefaults()
	logger := o.logger.Named("index").With(zap.String("build_id", o.buildID))
	start := o.now()

	summary := Summary{BuildID: o.buildID, OutputPath: cfg.OutputPath}

	fmt.Fprintf(w, "collecting content from %s\n", cfg.Content.Dir)
	records, err := CollectContent(ctx, cfg.Content, cfg.ExcerptLength)
	if err != nil {
		return summary, fmt.Errorf("collecting content: %w", err)
	}
	summary.Content = len(records)
	logger.Debug("content collected", zap.Int("records", len(records)))

	fmt.Fprintf(w, "loading catalog %s\n", cfg.Catalog.Path)
	cat, err := catalog.Load(cfg.Catalog.Path,
		catalog.WithCollection(cfg.Catalog.Collection),
		catalog.WithLogger(logger))
	if err != nil {
		return summary, fmt.Errorf("loading catalog: %w", err)
	}
	for _, skip := range cat.Skipped {
		fmt.Fprintf(w, "skipped %s\n", skip.Reason)
	}
	summary.Skipped = cat.Skipped

	tools := ToolRecords(cat.Tools)
	summary.Tools = len(tools)
	records = append(records, tools...)

	if err := CheckUnique(records); err != nil {
		return summary, err
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	data, err := Encode(records)
	if err != nil {
		return summary, err
	}
	if err := WriteArtifact(cfg.OutputPath, data); err != nil {
		return summary, err
	}
	summary.Bytes = len(data)
	summary.Checksum = Checksum(data)

	finished := o.now()
	summary.Duration = finished.Sub(start)

	logger.Info("index written",
		zap.String("path", cfg.OutputPath),
		zap.Int("content", summary.Content),
		zap.Int("tools", summary.Tools),
		zap.Int("skipped", len(summary.Skipped)),
		zap.String("checksum", summary.Checksum),
		zap.Duration("duration", summary.Duration))

	fmt.Fprintf(w, "\ncontent: %d, tools: %d, skipped: %d\n",
		summary.Content, summary.Tools, len(summary.Skipped))
	fmt.Fprintf(w, "wrote %s (%d records, checksum %s)\n",
		cfg.OutputPath, summary.Total(), summary.Checksum)

	if cfg.StorePath != "" {
		if err := mirror(ctx, cfg.StorePath, summary, finished, records, logger); err != nil {
			return summary, err
		}
		fmt.Fprintf(w, "mirrored to %s\n", cfg.StorePath)
	}

	if cfg.MetricsPath != "" {
		m := newBuildMetrics()
		m.observe(summary, finished)
		if err := m.write(cfg.MetricsPath); err != nil {
			return summary, err
		}
		fmt.Fprintf(w, "metrics written to %s\n", cfg.MetricsPath)
	}

	return summary, nil
}

func mirror(ctx context.Context, path string, s Summary, builtAt time.Time, records []types.Record, logger *zap.Logger) error {
	st, err := store.NewStore(types.StoreConfig{Path: path}, store.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	build := store.Build{
		ID:       s.BuildID,
		Checksum: s.Checksum,
		Content:  s.Content,
		Tools:    s.Tools,
		BuiltAt:  builtAt,
	}
	if err := st.Replace(ctx, build, records); err != nil {
		return fmt.Errorf("mirroring index to %s: %w", path, err)
	}
	return nil
}
