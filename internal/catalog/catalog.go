// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog reads the tool catalog consumed by the index builder.
//
// Structured catalogs (YAML, JSON, TOML) are the supported input. Script
// sources (.ts, .tsx, .js, .mjs) that declare the collection as a literal
// array are still read by pattern extraction, which recovers fewer records
// when the source formatting drifts.
//
// A record that cannot be decoded or lacks name, description or href is
// skipped and reported in Result.Skipped. Only failures to read or locate
// the collection as a whole are returned as errors.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tulz/tulz-content/pkg/types"
)

var (
	// ErrUnsupportedFormat reports a catalog file extension with no decoder.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrCollectionNotFound reports a catalog that does not contain the
	// named collection.
	ErrCollectionNotFound = errors.New("collection not found")
)

// Format identifies how a catalog file is decoded.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatTOML   Format = "toml"
	FormatSource Format = "source"
)

// FormatFor maps a file extension to its catalog format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".ts", ".tsx", ".js", ".mjs":
		return FormatSource, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
	}
}

// Skip describes a catalog record left out of the result.
type Skip struct {
	// Index is the zero-based position of the record in the collection.
	Index int `json:"index" yaml:"index"`

	// Name is the record name when it could be read.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Reason explains why the record was skipped.
	Reason string `json:"reason" yaml:"reason"`
}

// Result holds the accepted tools in catalog order and the skipped records.
type Result struct {
	Format  Format       `json:"format" yaml:"format"`
	Tools   []types.Tool `json:"tools" yaml:"tools"`
	Skipped []Skip       `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

type options struct {
	collection string
	logger     *zap.Logger
}

// Option configures Load.
type Option func(*options)

// WithCollection sets the collection name. In structured catalogs it is
// the key holding the record list; in script sources it is the exported
// identifier. Defaults to types.DefaultCollection.
func WithCollection(name string) Option {
	return func(o *options) {
		if name != "" {
			o.collection = name
		}
	}
}

// WithLogger sets the logger used to report skipped records.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger.Named("catalog")
		}
	}
}

// Load reads the catalog at path.
func Load(path string, opts ...Option) (Result, error) {
	o := options{collection: types.DefaultCollection, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := FormatFor(path)
	if err != nil {
		return Result{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading catalog %s: %w", path, err)
	}

	var entries []entry
	switch format {
	case FormatYAML:
		entries, err = decodeYAML(data, o.collection)
	case FormatJSON:
		entries, err = decodeJSON(data, o.collection)
	case FormatTOML:
		entries, err = decodeTOML(data, o.collection)
	case FormatSource:
		entries, err = extractSource(string(data), o.collection)
	}
	if err != nil {
		return Result{}, fmt.Errorf("decoding catalog %s: %w", path, err)
	}

	result := Result{Format: format, Tools: make([]types.Tool, 0, len(entries))}
	for i, e := range entries {
		tool, problems := validate(e)
		if len(problems) > 0 {
			skip := Skip{
				Index:  i,
				Name:   strings.TrimSpace(e.raw.Name),
				Reason: fmt.Sprintf("%s[%d]: %s", o.collection, i, strings.Join(problems, "; ")),
			}
			o.logger.Warn("skipping catalog record",
				zap.String("path", path), zap.Int("index", i), zap.String("reason", skip.Reason))
			result.Skipped = append(result.Skipped, skip)
			continue
		}
		result.Tools = append(result.Tools, tool)
	}

	o.logger.Debug("catalog loaded",
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("tools", len(result.Tools)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}
