// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/tulz/tulz-content/pkg/types"
)

// Export is the document written by ExportYAML and ExportJSON.
type Export struct {
	Build   Build          `json:"build" yaml:"build"`
	Records []types.Record `json:"records" yaml:"records"`
}

const exportLimit = 100000

// ExportYAML writes the last build and its records to w as YAML. It
// supports the same filters as Retrieve.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, opts QueryOptions) error {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes the last build and its records to w as indented JSON.
// It supports the same filters as Retrieve.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer, opts QueryOptions) error {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (Export, error) {
	build, err := s.LastBuild(ctx)
	if err != nil {
		return Export{}, err
	}

	opts.MaxResults = exportLimit
	records, err := s.Retrieve(ctx, opts)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	return Export{Build: build, Records: records}, nil
}
