package analyzer

import (
	"log/slog"

	"github.com/viant/afs"
)

// Option customizes an Analyzer
type Option func(*Analyzer)

// WithConfig sets analysis settings
func WithConfig(config *Config) Option {
	return func(a *Analyzer) {
		if config != nil {
			a.config = config
		}
	}
}

// WithFS sets the file system used to walk and load class files
func WithFS(fs afs.Service) Option {
	return func(a *Analyzer) {
		a.fs = fs
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithConcurrency overrides configured worker count
func WithConcurrency(workers int) Option {
	return func(a *Analyzer) {
		a.concurrency = workers
	}
}

// WithGraphExporter registers a GraphExporter to send the IRGraph after analysis.
func WithGraphExporter(exporter GraphExporter) Option {
	return func(a *Analyzer) {
		a.graphExporter = exporter
	}
}
