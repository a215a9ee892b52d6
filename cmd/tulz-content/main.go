// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the tulz-content CLI. Each pipeline
// stage is a subcommand: posts queries the content tree, index builds and
// searches the search index, and store works with its SQLite mirror.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tulz/tulz-content/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is replaced in PersistentPreRunE once flags are parsed.
var logger = zap.NewNop()

// rootCmd is the base command for the tulz-content CLI.
var rootCmd = &cobra.Command{
	Use:   "tulz-content",
	Short: "Content loading and search indexing for the Tulz site",
	Long: heredoc.Doc(`
		tulz-content reads the blog content tree and the tool catalog and
		produces the site's search index.

		posts lists, filters and renders blog posts from the content tree.
		index build writes public/search-index.json from the posts and the
		tool catalog; index search queries it. store exports the optional
		SQLite mirror written by index build --store.
	`),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetBool("verbose"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./tulz-content.yaml or ~/.config/tulz-content/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("content-dir", types.DefaultContentDir, "content root with one directory per category")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("content.dir", rootCmd.PersistentFlags().Lookup("content-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("tulz-content")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "tulz-content"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("TULZ_CONTENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables reach
// viper.Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("content.dir", types.DefaultContentDir)
	v.SetDefault("content.categories", types.DefaultCategories)
	v.SetDefault("content.extensions", types.DefaultExtensions)
	v.SetDefault("index.catalog.path", types.DefaultCatalogPath)
	v.SetDefault("index.catalog.collection", types.DefaultCollection)
	v.SetDefault("index.output_path", types.DefaultIndexPath)
	v.SetDefault("index.excerpt_length", types.DefaultExcerptLength)
	v.SetDefault("index.store_path", "")
	v.SetDefault("index.metrics_path", "")
	v.SetDefault("store.path", "")
	v.SetDefault("store.max_results", 20)
}

// loadConfig decodes the merged flag, environment and file settings. The
// index stage reads the same content tree as the posts stage.
func loadConfig(v *viper.Viper) (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Content = cfg.Content.WithDefaults()
	cfg.Index.Content = cfg.Content
	cfg.Index = cfg.Index.WithDefaults()
	if cfg.Store.Path == "" {
		cfg.Store.Path = cfg.Index.StorePath
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return cfg.Build()
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
