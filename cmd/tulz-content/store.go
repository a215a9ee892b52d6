// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tulz/tulz-content/internal/store"
	"github.com/tulz/tulz-content/pkg/types"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and export the SQLite index mirror",
}

// --- info subcommand ---

var storeInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the last build recorded in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		b, err := s.LastBuild(ctx)
		if errors.Is(err, store.ErrNoBuild) {
			fmt.Fprintf(out, "%s: no build recorded\n", s.Path())
			return nil
		}
		if err != nil {
			return err
		}

		total, err := s.Count(ctx, "")
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Store:    %s\n", s.Path())
		fmt.Fprintf(out, "Build:    %s\n", b.ID)
		fmt.Fprintf(out, "Built at: %s\n", b.BuiltAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "Checksum: %s\n", b.Checksum)
		fmt.Fprintf(out, "Records:  %d (content %d, tools %d)\n", total, b.Content, b.Tools)
		return nil
	},
}

// --- export subcommand ---

var storeExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored records as YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "yaml" && format != "json" {
			return fmt.Errorf("invalid --format %q: must be yaml or json", format)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		kind, _ := cmd.Flags().GetString("kind")
		category, _ := cmd.Flags().GetString("category")
		opts := store.QueryOptions{Kind: types.RecordKind(kind), Category: category}

		var w io.Writer = cmd.OutOrStdout()
		outPath, _ := cmd.Flags().GetString("out")
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}

		if format == "json" {
			err = s.ExportJSON(cmd.Context(), w, opts)
		} else {
			err = s.ExportYAML(cmd.Context(), w, opts)
		}
		if err != nil {
			return fmt.Errorf("exporting: %w", err)
		}

		if outPath != "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", outPath)
		}
		return nil
	},
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	if cfg.Store.Path == "" {
		return nil, errors.New("no store configured: set --path, store.path or index.store_path")
	}
	s, err := store.NewStore(cfg.Store, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return s, nil
}

func init() {
	storeCmd.PersistentFlags().String("path", "", "SQLite database path")
	_ = viper.BindPFlag("store.path", storeCmd.PersistentFlags().Lookup("path"))

	storeExportCmd.Flags().String("format", "yaml", "output format (yaml or json)")
	storeExportCmd.Flags().String("out", "", "write to file instead of stdout")
	storeExportCmd.Flags().String("kind", "", "only export records of this kind")
	storeExportCmd.Flags().String("category", "", "only export records in this category")

	storeCmd.AddCommand(storeInfoCmd)
	storeCmd.AddCommand(storeExportCmd)
	rootCmd.AddCommand(storeCmd)
}
