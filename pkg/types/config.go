package types

// DefaultCategories is the category whitelist used when none is configured.
var DefaultCategories = []string{"tutorials", "guides", "news", "tips", "comparisons"}

// DefaultExtensions lists the content file extensions recognized by default.
var DefaultExtensions = []string{".mdx", ".md"}

const (
	// DefaultContentDir is the content root relative to the working directory.
	DefaultContentDir = "content"

	// DefaultCatalogPath is the structured tool catalog.
	DefaultCatalogPath = "data/tools.yaml"

	// DefaultIndexPath is the well-known location of the search index artifact.
	DefaultIndexPath = "public/search-index.json"

	// DefaultExcerptLength is the rune length of index record excerpts.
	DefaultExcerptLength = 500

	// DefaultCollection is the exported collection name searched for in
	// source-text catalogs.
	DefaultCollection = "tools"
)

// ContentConfig holds settings for the content loader.
type ContentConfig struct {
	// Dir is the content root containing one subdirectory per category.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// Categories is the authoritative category whitelist.
	Categories []string `json:"categories" yaml:"categories" mapstructure:"categories"`

	// Extensions lists recognized content file extensions, including the dot.
	Extensions []string `json:"extensions" yaml:"extensions" mapstructure:"extensions"`
}

// WithDefaults returns a copy of c with empty fields filled in.
func (c ContentConfig) WithDefaults() ContentConfig {
	if c.Dir == "" {
		c.Dir = DefaultContentDir
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]string(nil), DefaultCategories...)
	}
	if len(c.Extensions) == 0 {
		c.Extensions = append([]string(nil), DefaultExtensions...)
	}
	return c
}

// CatalogConfig holds settings for reading the tool catalog.
type CatalogConfig struct {
	// Path is the catalog file. The extension selects the decoder.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// Collection names the exported collection in source-text catalogs.
	Collection string `json:"collection" yaml:"collection" mapstructure:"collection"`
}

// IndexConfig holds settings for the index build stage.
type IndexConfig struct {
	Content ContentConfig `json:"content" yaml:"content" mapstructure:"content"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`

	// OutputPath is the search index artifact location.
	OutputPath string `json:"output_path" yaml:"output_path" mapstructure:"output_path"`

	// ExcerptLength caps ContentExcerpt in runes.
	ExcerptLength int `json:"excerpt_length" yaml:"excerpt_length" mapstructure:"excerpt_length"`

	// StorePath, when set, also loads the records into a SQLite database.
	StorePath string `json:"store_path,omitempty" yaml:"store_path,omitempty" mapstructure:"store_path"`

	// MetricsPath, when set, writes build metrics in Prometheus text format.
	MetricsPath string `json:"metrics_path,omitempty" yaml:"metrics_path,omitempty" mapstructure:"metrics_path"`
}

// WithDefaults returns a copy of c with empty fields filled in.
func (c IndexConfig) WithDefaults() IndexConfig {
	c.Content = c.Content.WithDefaults()
	if c.Catalog.Path == "" {
		c.Catalog.Path = DefaultCatalogPath
	}
	if c.Catalog.Collection == "" {
		c.Catalog.Collection = DefaultCollection
	}
	if c.OutputPath == "" {
		c.OutputPath = DefaultIndexPath
	}
	if c.ExcerptLength <= 0 {
		c.ExcerptLength = DefaultExcerptLength
	}
	return c
}

// StoreConfig holds settings for the SQLite index mirror.
type StoreConfig struct {
	// Path is the database file.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default query limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Content ContentConfig `json:"content" yaml:"content" mapstructure:"content"`
	Index   IndexConfig   `json:"index" yaml:"index" mapstructure:"index"`
	Store   StoreConfig   `json:"store" yaml:"store" mapstructure:"store"`
}
