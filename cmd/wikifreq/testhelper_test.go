package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv is an isolated workspace for running wikifreq commands.
type testEnv struct {
	dir        string
	configPath string
	storePath  string
	dbDir      string
	pageDir    string
	refDir     string
}

// newTestEnv writes a configuration file that keeps the store, the
// history database and the reference corpora inside a temp directory.
func newTestEnv(t *testing.T, wikiURL string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "wikifreq.yaml"),
		storePath:  filepath.Join(dir, "word-counts.json"),
		dbDir:      filepath.Join(dir, "db"),
		pageDir:    filepath.Join(dir, "pages"),
		refDir:     filepath.Join(dir, "reference"),
	}
	for _, d := range []string{env.pageDir, env.refDir} {
		if err := os.MkdirAll(d, 0750); err != nil {
			t.Fatalf("failed to create %s: %v", d, err)
		}
	}

	cfg := `wiki:
  url: ` + wikiURL + `
  local_dir: ` + env.pageDir + `
crawl:
  delay: 0s
store:
  path: ` + env.storePath + `
  db_dir: ` + env.dbDir + `
analysis:
  reference_dir: ` + env.refDir + `
`
	if err := os.WriteFile(env.configPath, []byte(cfg), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return env
}

// addPage saves a page for the file source.
func (e *testEnv) addPage(t *testing.T, title, markup string) {
	t.Helper()
	name := strings.ReplaceAll(title, " ", "_") + ".html"
	if err := os.WriteFile(filepath.Join(e.pageDir, name), []byte(markup), 0600); err != nil {
		t.Fatalf("failed to write page: %v", err)
	}
}

// addCorpus writes the English reference corpus.
func (e *testEnv) addCorpus(t *testing.T, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(e.refDir, "en.txt"), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write corpus: %v", err)
	}
}

// run executes the root command with the test configuration and returns
// what it wrote to stdout.
func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", e.configPath, "--quiet"}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

// wikiPage renders a minimal MediaWiki article with links.
func wikiPage(text string, links ...string) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div id="mw-content-text"><p>`)
	sb.WriteString(text)
	sb.WriteString(`</p>`)
	for _, l := range links {
		sb.WriteString(`<a href="/` + strings.ReplaceAll(l, " ", "_") + `">` + l + `</a>`)
	}
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}
