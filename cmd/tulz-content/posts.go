// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/tulz/tulz-content/internal/content"
	"github.com/tulz/tulz-content/pkg/types"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Query blog posts in the content tree",
	Long: heredoc.Doc(`
		Posts reads front-matter documents from <content-dir>/<category>/ and
		prints sorted or filtered views of them. Every invocation re-reads
		the tree; nothing is cached.
	`),
}

// --- list subcommand ---

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List posts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		var posts []types.Post
		if category != "" {
			posts, err = loader.PostsInCategory(category)
		} else {
			posts, err = loader.AllPosts()
		}
		if err != nil {
			return err
		}
		return writePosts(cmd, posts)
	},
}

// --- show subcommand ---

var postsShowCmd = &cobra.Command{
	Use:   "show <category> <slug>",
	Short: "Render one post",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}

		post, ok := loader.PostBySlug(args[0], args[1])
		if !ok {
			return fmt.Errorf("post %s/%s not found", args[0], args[1])
		}

		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return encodeJSON(cmd.OutOrStdout(), post)
		}
		raw, _ := cmd.Flags().GetBool("raw")
		return renderPost(cmd.OutOrStdout(), post, raw || !isTerminal(cmd.OutOrStdout()))
	},
}

// --- featured / recent / related subcommands ---

var postsFeaturedCmd = &cobra.Command{
	Use:   "featured",
	Short: "List featured posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		posts, err := loader.FeaturedPosts(limit)
		if err != nil {
			return err
		}
		return writePosts(cmd, posts)
	},
}

var postsRecentCmd = &cobra.Command{
	Use:     "recent",
	Aliases: []string{"popular"},
	Short:   "List the most recent posts",
	Long: heredoc.Doc(`
		Recent lists the newest posts across all categories. The "popular"
		alias returns the same list; there is no view-count data.
	`),
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		posts, err := loader.RecentPosts(limit)
		if err != nil {
			return err
		}
		return writePosts(cmd, posts)
	},
}

var postsRelatedCmd = &cobra.Command{
	Use:   "related <category> <slug>",
	Short: "List other posts from the same category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		posts, err := loader.RelatedPosts(args[0], args[1], limit)
		if err != nil {
			return err
		}
		return writePosts(cmd, posts)
	},
}

// --- categories subcommand ---

var postsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the configured categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader, err := newLoader()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			return encodeJSON(out, loader.Categories())
		}
		for _, c := range loader.Categories() {
			fmt.Fprintf(out, "%-14s  %s\n", c, content.CategoryTitle(c))
		}
		return nil
	},
}

// --- shared helpers ---

func newLoader() (*content.Loader, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	return content.NewLoader(cfg.Content, content.WithLogger(logger)), nil
}

func writePosts(cmd *cobra.Command, posts []types.Post) error {
	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return encodeJSON(out, posts)
	}

	if len(posts) == 0 {
		fmt.Fprintln(out, "No posts found.")
		return nil
	}

	fmt.Fprintf(out, "%-10s  %-12s  %-40s  %-11s  %s\n", "Date", "Category", "Title", "Read", "Slug")
	fmt.Fprintln(out, strings.Repeat("-", 100))
	for _, p := range posts {
		title := p.Title
		if len([]rune(title)) > 40 {
			title = content.Truncate(title, 40)
		}
		marker := ""
		if p.Featured {
			marker = " *"
		}
		fmt.Fprintf(out, "%-10s  %-12s  %-40s  %-11s  %s%s\n",
			p.Date.Format("2006-01-02"), p.Category, title, p.ReadTime, p.Slug, marker)
	}
	fmt.Fprintf(out, "\n%d posts\n", len(posts))
	return nil
}

func renderPost(w io.Writer, p types.Post, raw bool) error {
	header := fmt.Sprintf("# %s\n\n_%s · %s · %s · %s_\n\n> %s\n\n",
		p.Title, p.Author, p.Date.Format("January 2, 2006"),
		content.CategoryTitle(p.Category), p.ReadTime, p.Excerpt)
	doc := header + p.Content

	if raw {
		_, err := io.WriteString(w, doc)
		return err
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	rendered, err := r.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", p.Key(), err)
	}
	_, err = io.WriteString(w, rendered)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	postsCmd.PersistentFlags().Bool("json", false, "output as JSON")

	postsListCmd.Flags().String("category", "", "only list posts in this category")
	postsShowCmd.Flags().Bool("raw", false, "print markdown without terminal rendering")
	postsFeaturedCmd.Flags().Int("limit", 3, "maximum number of posts")
	postsRecentCmd.Flags().Int("limit", 5, "maximum number of posts")
	postsRelatedCmd.Flags().Int("limit", 3, "maximum number of posts")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsShowCmd)
	postsCmd.AddCommand(postsFeaturedCmd)
	postsCmd.AddCommand(postsRecentCmd)
	postsCmd.AddCommand(postsRelatedCmd)
	postsCmd.AddCommand(postsCategoriesCmd)
	rootCmd.AddCommand(postsCmd)
}
