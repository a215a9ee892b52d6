// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content loads front-matter blog posts from a content tree laid out
// as <root>/<category>/<slug><ext>, derives reading time and excerpts, and
// serves sorted and filtered views of them.
//
// A Loader holds no parsed state: every query walks and parses the tree
// again.
package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tulz/tulz-content/pkg/types"
)

const (
	defaultFeaturedLimit = 3
	defaultRelatedLimit  = 3
	defaultRecentLimit   = 5
)

// ErrDuplicateSlug reports two files in one category that map to the same
// slug, e.g. intro.md and intro.mdx.
var ErrDuplicateSlug = errors.New("duplicate slug")

// Loader reads posts from a content root.
type Loader struct {
	root       string
	categories []string
	exts       []string
	logger     *zap.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger used for front matter warnings.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger.Named("content")
		}
	}
}

// NewLoader returns a Loader over cfg.Dir. Empty config fields take the
// defaults from types.ContentConfig.WithDefaults.
func NewLoader(cfg types.ContentConfig, opts ...Option) *Loader {
	cfg = cfg.WithDefaults()
	l := &Loader{
		root:       filepath.Clean(cfg.Dir),
		categories: cfg.Categories,
		exts:       NormalizeExtensions(cfg.Extensions),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Root returns the content root directory.
func (l *Loader) Root() string {
	return l.root
}

// Categories returns the configured category whitelist. It does not look at
// the filesystem.
func (l *Loader) Categories() []string {
	return append([]string(nil), l.categories...)
}

// PostsInCategory returns the posts of one category, newest first. A
// category whose directory does not exist yields an empty slice and no
// error. Posts with equal dates keep directory enumeration order.
func (l *Loader) PostsInCategory(category string) ([]types.Post, error) {
	if !validName(category) {
		return []types.Post{}, nil
	}

	dir := filepath.Join(l.root, category)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.Post{}, nil
		}
		return nil, fmt.Errorf("reading category %s: %w", category, err)
	}

	posts := make([]types.Post, 0, len(entries))
	seen := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !l.recognized(entry.Name()) {
			continue
		}
		slug := SlugFromFile(entry.Name())
		if prev, ok := seen[slug]; ok {
			return nil, fmt.Errorf("%w: %s/%s (%s, %s)", ErrDuplicateSlug, category, slug, prev, entry.Name())
		}
		seen[slug] = entry.Name()

		post, err := l.readPost(category, slug, filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	SortByDate(posts)
	return posts, nil
}

// AllPosts returns the posts of every whitelisted category, newest first.
// Categories are read concurrently and merged in whitelist order before the
// global sort, so the result does not depend on scheduling.
func (l *Loader) AllPosts() ([]types.Post, error) {
	categories := l.Categories()
	perCategory := make([][]types.Post, len(categories))

	var g errgroup.Group
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			posts, err := l.PostsInCategory(category)
			if err != nil {
				return err
			}
			perCategory[i] = posts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, posts := range perCategory {
		total += len(posts)
	}
	all := make([]types.Post, 0, total)
	for _, posts := range perCategory {
		all = append(all, posts...)
	}

	SortByDate(all)
	return all, nil
}

// PostBySlug loads a single post. It reports false when the file is
// missing, unreadable, or has invalid front matter; callers cannot tell
// these cases apart.
func (l *Loader) PostBySlug(category, slug string) (types.Post, bool) {
	if !validName(category) || !validName(slug) {
		return types.Post{}, false
	}

	dir := filepath.Join(l.root, category)
	name, ok := l.findFile(dir, slug)
	if !ok {
		return types.Post{}, false
	}
	path := filepath.Join(dir, name)
	post, err := l.readPost(category, slug, path)
	if err != nil {
		l.logger.Debug("post unavailable", zap.String("path", path), zap.Error(err))
		return types.Post{}, false
	}
	return post, true
}

// findFile returns the file in dir whose slug is slug, matching extensions
// the same way PostsInCategory does. When several extensions match, the
// earliest configured extension wins.
func (l *Loader) findFile(dir, slug string) (string, bool) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	for _, ext := range l.exts {
		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || SlugFromFile(name) != slug {
				continue
			}
			if strings.ToLower(filepath.Ext(name)) == ext {
				return name, true
			}
		}
	}
	return "", false
}

// FeaturedPosts returns up to limit featured posts in AllPosts order. A
// non-positive limit means 3.
func (l *Loader) FeaturedPosts(limit int) ([]types.Post, error) {
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	all, err := l.AllPosts()
	if err != nil {
		return nil, err
	}

	featured := make([]types.Post, 0, limit)
	for _, p := range all {
		if !p.Featured {
			continue
		}
		featured = append(featured, p)
		if len(featured) == limit {
			break
		}
	}
	return featured, nil
}

// RelatedPosts returns up to limit other posts from the same category,
// newest first. There is no fallback to other categories, so fewer than
// limit posts may be returned. A non-positive limit means 3.
func (l *Loader) RelatedPosts(category, excludeSlug string, limit int) ([]types.Post, error) {
	if limit <= 0 {
		limit = defaultRelatedLimit
	}
	posts, err := l.PostsInCategory(category)
	if err != nil {
		return nil, err
	}

	related := make([]types.Post, 0, limit)
	for _, p := range posts {
		if p.Slug == excludeSlug {
			continue
		}
		related = append(related, p)
		if len(related) == limit {
			break
		}
	}
	return related, nil
}

// RecentPosts returns the newest limit posts across all categories. A
// non-positive limit means 5.
func (l *Loader) RecentPosts(limit int) ([]types.Post, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	all, err := l.AllPosts()
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

// PopularPosts returns RecentPosts(limit). There is no view-count data, so
// "popular" is approximated by recency.
//
// Deprecated: use RecentPosts, which names what is actually returned.
func (l *Loader) PopularPosts(limit int) ([]types.Post, error) {
	return l.RecentPosts(limit)
}

func (l *Loader) readPost(category, slug, path string) (types.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Post{}, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return types.Post{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(doc.UnknownKeys) > 0 {
		l.logger.Warn("unrecognized front matter keys",
			zap.String("path", path), zap.Strings("keys", doc.UnknownKeys))
	}
	if doc.Category != "" && doc.Category != category {
		l.logger.Warn("front matter category does not match directory",
			zap.String("path", path), zap.String("front_matter", doc.Category), zap.String("directory", category))
	}
	return NewPost(doc, category, slug), nil
}

// NewPost builds a Post from a parsed document and computes its derived
// fields. The category argument overrides the front matter category.
func NewPost(doc Document, category, slug string) types.Post {
	plain := PlainText(doc.Body)
	return types.Post{
		Slug:         slug,
		Title:        doc.Title,
		Description:  doc.Description,
		Date:         doc.Date,
		Author:       doc.Author,
		AuthorAvatar: doc.AuthorAvatar,
		Category:     category,
		CoverImage:   doc.CoverImage,
		Featured:     doc.Featured,
		Keywords:     doc.Keywords,
		Content:      doc.Body,
		ReadTime:     ReadTime(WordCount(plain)),
		Excerpt:      Excerpt(doc.Description, plain),
	}
}

// SortByDate orders posts newest first, keeping the input order of posts
// with equal dates.
func SortByDate(posts []types.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
}

// SlugFromFile derives a slug from a content file name.
func SlugFromFile(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// CategoryTitle renders a category directory name for display, e.g.
// "getting-started" becomes "Getting Started".
func CategoryTitle(category string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(category)
	return cases.Title(language.English).String(words)
}

func (l *Loader) recognized(name string) bool {
	return HasExtension(name, l.exts)
}

// HasExtension reports whether name ends in one of exts, ignoring case.
func HasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == want {
			return true
		}
	}
	return false
}

// NormalizeExtensions lowercases extensions and adds the leading dot where
// missing. Empty entries are dropped.
func NormalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// validName rejects empty names and anything that could escape the
// category directory.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
