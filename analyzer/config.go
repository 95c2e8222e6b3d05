package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Config represents batch analysis settings
type Config struct {
	Concurrency     int      `yaml:"concurrency"`
	IncludePrefixes []string `yaml:"includePrefixes"` // internal class name prefixes to analyse, all when empty
	ExcludePrefixes []string `yaml:"excludePrefixes"`
	SkipDirs        []string `yaml:"skipDirs"`
	Depth           int      `yaml:"depth"`  // default dependency closure depth
	Strict          bool     `yaml:"strict"` // fail on malformed class files instead of skipping them
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	return &Config{
		Concurrency: 4,
		SkipDirs:    []string{".git", ".idea", ".gradle", "node_modules"},
		Depth:       1,
	}
}

// LoadConfig loads YAML settings from URL; fields missing in the file keep their defaults
func LoadConfig(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return config, nil
}

// Accepts reports whether className passes include and exclude prefixes
func (c *Config) Accepts(className string) bool {
	if len(c.IncludePrefixes) > 0 && !hasAnyPrefix(className, c.IncludePrefixes) {
		return false
	}
	return !hasAnyPrefix(className, c.ExcludePrefixes)
}

// skipPath reports whether any segment of a slash separated relative path is a skipped dir
func (c *Config) skipPath(parent string) bool {
	for _, segment := range strings.Split(parent, "/") {
		for _, candidate := range c.SkipDirs {
			if candidate == segment {
				return true
			}
		}
	}
	return false
}

func hasAnyPrefix(name string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
