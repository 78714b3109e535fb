package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment variable read by wikifreq.
const EnvPrefix = "WIKIFREQ_"

// DefaultDotEnvFile is read from the working directory when present.
const DefaultDotEnvFile = ".env"

// ReadDotEnv parses a .env file without modifying the process
// environment. A missing file yields a nil map.
func ReadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		path = DefaultDotEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}

// withFallback consults lookup first and values second, so real
// environment variables win over .env entries.
func withFallback(lookup func(string) (string, bool), values map[string]string) func(string) (string, bool) {
	if len(values) == 0 {
		return lookup
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}
}

// ApplyEnv copies WIKIFREQ_* variables into c.
// Empty variables are ignored.
func ApplyEnv(c *Config, lookup func(string) (string, bool)) error {
	env := envReader{lookup: lookup}

	env.str("WIKI_URL", &c.WikiURL)
	env.str("ARTICLE_PATH", &c.ArticlePath)
	env.str("SOURCE", &c.Source)
	env.str("LOCAL_DIR", &c.LocalDir)
	env.str("CONTENT_SELECTOR", &c.ContentSelector)
	env.list("BLOCKED_NAMESPACES", &c.BlockedNamespaces)
	env.duration("TIMEOUT", &c.Timeout)
	env.str("USER_AGENT", &c.UserAgent)
	env.integer("MAX_BODY_SIZE", &c.MaxBodySize)
	env.duration("CRAWL_DELAY", &c.CrawlDelay)
	env.integer("CRAWL_DEPTH", &c.CrawlDepth)
	env.integer("MAX_PAGES", &c.MaxPages)
	env.integer("CONCURRENCY", &c.Concurrency)
	env.str("STORE", &c.StorePath)
	env.str("DB_DIR", &c.DBDir)
	env.boolean("SAVE_HISTORY", &c.SaveToDB)
	env.str("LANGUAGE", &c.Language)
	env.str("REFERENCE_DIR", &c.ReferenceDir)
	env.str("MODE", &c.Mode)
	env.integer("COUNT", &c.Count)
	env.boolean("VERBOSE", &c.Verbose)

	return env.err
}

// envReader records the first parse error and skips the rest.
type envReader struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *envReader) get(name string) (string, bool) {
	if r.err != nil {
		return "", false
	}
	v, ok := r.lookup(EnvPrefix + name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *envReader) fail(name, value string, err error) {
	r.err = fmt.Errorf("%w: %s%s=%q: %w", ErrInvalidEnv, EnvPrefix, name, value, err)
}

func (r *envReader) str(name string, dst *string) {
	if v, ok := r.get(name); ok {
		*dst = v
	}
}

func (r *envReader) list(name string, dst *[]string) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	var items []string
	for item := range strings.SplitSeq(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	*dst = items
}

func (r *envReader) integer(name string, dst *int) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = n
}

func (r *envReader) duration(name string, dst *time.Duration) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = d
}

func (r *envReader) boolean(name string, dst *bool) {
	v, ok := r.get(name)
	if !ok {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(name, v, err)
		return
	}
	*dst = b
}
