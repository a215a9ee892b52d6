// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tulz/tulz-content/internal/content"
	"github.com/tulz/tulz-content/internal/index"
	"github.com/tulz/tulz-content/internal/store"
	"github.com/tulz/tulz-content/pkg/types"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and query the site search index",
}

// --- build subcommand ---

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Regenerate the search index from posts and the tool catalog",
	Long: heredoc.Doc(`
		Build reads every post under the content root and every tool in the
		catalog, then writes the search index as one JSON array. The file is
		replaced atomically; a failed build leaves the previous index in place.

		Catalog records missing a name, description or href are skipped and
		reported. With --store the records are also mirrored into SQLite, and
		with --metrics-file build gauges are written in Prometheus text format.
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(cmd.Context())
		defer cancel()

		s, err := index.Build(ctx, cfg.Index, cmd.OutOrStdout(), index.WithLogger(logger))
		if err != nil {
			return err
		}

		if s.HasSkips() {
			logger.Warn("catalog records skipped",
				zap.String("catalog", cfg.Index.Catalog.Path),
				zap.Int("skipped", len(s.Skipped)))
		}
		return nil
	},
}

// --- search subcommand ---

var indexSearchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search the index",
	Long: heredoc.Doc(`
		Search matches every query word as a case-insensitive substring of a
		record's title, description, category, tags or excerpt. Results keep
		index order. By default the JSON artifact is read; --store queries the
		SQLite mirror instead.
	`),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		kind, _ := cmd.Flags().GetString("kind")
		category, _ := cmd.Flags().GetString("category")
		limit, _ := cmd.Flags().GetInt("limit")
		useStore, _ := cmd.Flags().GetBool("store")

		recordKind := types.RecordKind(kind)
		if kind != "" && recordKind != types.KindContent && recordKind != types.KindTool {
			return fmt.Errorf("invalid --kind %q: must be content or tool", kind)
		}

		var records []types.Record
		if useStore {
			s, err := openStore()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err = s.Retrieve(cmd.Context(), store.QueryOptions{
				Query:      query,
				Kind:       recordKind,
				Category:   category,
				MaxResults: limit,
			})
			if err != nil {
				return err
			}
		} else {
			all, err := index.ReadArtifact(cfg.Index.OutputPath)
			if err != nil {
				return err
			}
			records = index.Match(index.Filter(all, recordKind, category), query)
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), records)
		}
		printRecords(cmd.OutOrStdout(), records)
		return nil
	},
}

func printRecords(w io.Writer, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}

	fmt.Fprintf(w, "%-7s  %-12s  %-40s  %s\n", "Kind", "Category", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range records {
		title := r.Title
		if len([]rune(title)) > 40 {
			title = content.Truncate(title, 40)
		}
		fmt.Fprintf(w, "%-7s  %-12s  %-40s  %s\n", r.Kind, r.Category, title, r.URL)
	}
	fmt.Fprintf(w, "\n%d results\n", len(records))
}

func init() {
	indexCmd.PersistentFlags().String("out", types.DefaultIndexPath, "search index path")
	_ = viper.BindPFlag("index.output_path", indexCmd.PersistentFlags().Lookup("out"))

	indexBuildCmd.Flags().String("catalog", types.DefaultCatalogPath, "tool catalog file (yaml, json, toml or legacy source)")
	indexBuildCmd.Flags().String("collection", types.DefaultCollection, "catalog collection name")
	indexBuildCmd.Flags().String("store", "", "also mirror records into this SQLite database")
	indexBuildCmd.Flags().String("metrics-file", "", "write build metrics to this file")
	indexBuildCmd.Flags().Int("excerpt-length", types.DefaultExcerptLength, "content excerpt length in characters")
	_ = viper.BindPFlag("index.catalog.path", indexBuildCmd.Flags().Lookup("catalog"))
	_ = viper.BindPFlag("index.catalog.collection", indexBuildCmd.Flags().Lookup("collection"))
	_ = viper.BindPFlag("index.store_path", indexBuildCmd.Flags().Lookup("store"))
	_ = viper.BindPFlag("index.metrics_path", indexBuildCmd.Flags().Lookup("metrics-file"))
	_ = viper.BindPFlag("index.excerpt_length", indexBuildCmd.Flags().Lookup("excerpt-length"))

	indexSearchCmd.Flags().String("kind", "", "filter by kind (content or tool)")
	indexSearchCmd.Flags().String("category", "", "filter by category")
	indexSearchCmd.Flags().Int("limit", 0, "maximum number of results (0 for all)")
	indexSearchCmd.Flags().Bool("store", false, "query the SQLite mirror instead of the artifact")
	indexSearchCmd.Flags().Bool("json", false, "output as JSON")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexSearchCmd)
	rootCmd.AddCommand(indexCmd)
}
