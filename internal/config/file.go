package config

import "time"

// File represents the structure of the .wikifreq configuration file.
// Unset fields leave the current configuration untouched; pointers
// distinguish "unset" from a meaningful zero such as depth 0.
type File struct {
	Wiki     WikiSection     `yaml:"wiki,omitempty"`
	HTTP     HTTPSection     `yaml:"http,omitempty"`
	Crawl    CrawlSection    `yaml:"crawl,omitempty"`
	Store    StoreSection    `yaml:"store,omitempty"`
	Analysis AnalysisSection `yaml:"analysis,omitempty"`
}

// WikiSection describes the wiki being read.
type WikiSection struct {
	URL               string   `yaml:"url,omitempty"`
	ArticlePath       string   `yaml:"article_path,omitempty"`
	Source            string   `yaml:"source,omitempty"`
	LocalDir          string   `yaml:"local_dir,omitempty"`
	ContentSelector   string   `yaml:"content_selector,omitempty"`
	BlockedNamespaces []string `yaml:"blocked_namespaces,omitempty"`
}

// HTTPSection configures page requests.
type HTTPSection struct {
	Timeout     *time.Duration `yaml:"timeout,omitempty"`
	UserAgent   string         `yaml:"user_agent,omitempty"`
	MaxBodySize *int           `yaml:"max_body_size,omitempty"`
}

// CrawlSection configures the crawler and the count command.
type CrawlSection struct {
	Depth       *int           `yaml:"depth,omitempty"`
	Delay       *time.Duration `yaml:"delay,omitempty"`
	MaxPages    *int           `yaml:"max_pages,omitempty"`
	Concurrency *int           `yaml:"concurrency,omitempty"`
}

// StoreSection locates persistent state.
type StoreSection struct {
	Path        string `yaml:"path,omitempty"`
	DBDir       string `yaml:"db_dir,omitempty"`
	SaveHistory *bool  `yaml:"save_history,omitempty"`
}

// AnalysisSection configures the analyze command defaults.
type AnalysisSection struct {
	Mode         string `yaml:"mode,omitempty"`
	Count        *int   `yaml:"count,omitempty"`
	Language     string `yaml:"language,omitempty"`
	ReferenceDir string `yaml:"reference_dir,omitempty"`
}

// Apply copies every set field of f into c.
func (f *File) Apply(c *Config) {
	setString(&c.WikiURL, f.Wiki.URL)
	setString(&c.ArticlePath, f.Wiki.ArticlePath)
	setString(&c.Source, f.Wiki.Source)
	setString(&c.LocalDir, f.Wiki.LocalDir)
	setString(&c.ContentSelector, f.Wiki.ContentSelector)
	if f.Wiki.BlockedNamespaces != nil {
		c.BlockedNamespaces = append([]string(nil), f.Wiki.BlockedNamespaces...)
	}

	setValue(&c.Timeout, f.HTTP.Timeout)
	setString(&c.UserAgent, f.HTTP.UserAgent)
	setValue(&c.MaxBodySize, f.HTTP.MaxBodySize)

	setValue(&c.CrawlDepth, f.Crawl.Depth)
	setValue(&c.CrawlDelay, f.Crawl.Delay)
	setValue(&c.MaxPages, f.Crawl.MaxPages)
	setValue(&c.Concurrency, f.Crawl.Concurrency)

	setString(&c.StorePath, f.Store.Path)
	setString(&c.DBDir, f.Store.DBDir)
	setValue(&c.SaveToDB, f.Store.SaveHistory)

	setString(&c.Mode, f.Analysis.Mode)
	setValue(&c.Count, f.Analysis.Count)
	setString(&c.Language, f.Analysis.Language)
	setString(&c.ReferenceDir, f.Analysis.ReferenceDir)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setValue[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
