// Package config provides the configuration for wikifreq: which wiki to
// read, how politely to crawl it, where the frequency store and crawl
// history live, and how analyses are computed.
//
// Values are layered. NewConfig supplies defaults, a YAML file (.wikifreq)
// overrides them, then .env and WIKIFREQ_* environment variables, and
// finally command-line flags set by the CLI.
package config
