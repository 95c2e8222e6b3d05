package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/classdep/analyzer"
	"github.com/viant/classdep/inspector"
	"github.com/viant/classdep/inspector/repository"
)

var (
	cfgFile     string
	verbose     bool
	concurrency int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "classdep",
	Short: "Extract member dependencies from compiled JVM classes",
	Long: `classdep reads compiled class files, directories and jars and reports
which methods and fields every method references.

A location is a .class file, a .jar, a directory of classes or a Maven,
Gradle or sbt project root; project roots resolve to their compiled
output and dependency directories.

Examples:
  classdep edges target/classes
  classdep deps . --class com/x/Foo --depth 2
  classdep cycles app.jar
  classdep export . --neo4j-uri bolt://localhost:7687`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&concurrency, "concurrency", 0, "number of parallel workers (default from config)")
}

func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(ctx context.Context, fs afs.Service) (*analyzer.Config, error) {
	if cfgFile == "" {
		return analyzer.DefaultConfig(), nil
	}
	return analyzer.LoadConfig(ctx, fs, cfgFile)
}

// resolveLocations expands a project root into its class roots and libraries
func resolveLocations(location string, logger *slog.Logger) ([]string, error) {
	if inspector.IsSupported(location) {
		return []string{location}, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return nil, err
	}
	project, err := repository.New().DetectProject(abs)
	if err != nil {
		return nil, err
	}
	if project.RootPath != abs || (len(project.ClassRoots) == 0 && len(project.Libraries) == 0) {
		return []string{location}, nil
	}
	logger.Info("detected project", "name", project.Name, "type", project.Type, "classRoots", project.ClassRoots, "libraries", project.Libraries)
	return project.Locations(), nil
}

// analyze loads config and runs the analyzer over location
func analyze(cmd *cobra.Command, location string, options ...analyzer.Option) (*analyzer.Model, *analyzer.Config, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	fs := afs.New()
	config, err := loadConfig(ctx, fs)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cmd.ErrOrStderr())
	locations, err := resolveLocations(location, logger)
	if err != nil {
		return nil, nil, err
	}
	options = append([]analyzer.Option{
		analyzer.WithConfig(config),
		analyzer.WithFS(fs),
		analyzer.WithLogger(logger),
		analyzer.WithConcurrency(concurrency),
	}, options...)
	model, err := analyzer.New(options...).Analyze(ctx, locations...)
	if err != nil {
		return nil, nil, err
	}
	return model, config, nil
}
