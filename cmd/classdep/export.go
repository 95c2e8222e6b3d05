package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/viant/classdep/analyzer"
	"github.com/viant/classdep/analyzer/neo4j"
)

var (
	exportOut      string
	neo4jURI       string
	neo4jUser      string
	neo4jPassword  string
	neo4jClean     bool
	neo4jBatchSize int
)

var exportCmd = &cobra.Command{
	Use:   "export LOCATION",
	Short: "Export the member dependency graph",
	Long: `Export members and their dependencies to Neo4j, or to a YAML file with --out.

The Neo4j password defaults to the CLASSDEP_NEO4J_PASSWORD environment variable.

Examples:
  classdep export . --neo4j-uri bolt://localhost:7687 --neo4j-user neo4j
  classdep export app.jar --out file:///tmp/graph.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "URL to write the YAML graph to")
	exportCmd.Flags().StringVar(&neo4jURI, "neo4j-uri", "bolt://localhost:7687", "Neo4j connection URI")
	exportCmd.Flags().StringVar(&neo4jUser, "neo4j-user", "neo4j", "Neo4j user")
	exportCmd.Flags().StringVar(&neo4jPassword, "neo4j-password", "", "Neo4j password")
	exportCmd.Flags().BoolVar(&neo4jClean, "clean", false, "remove previously exported nodes first")
	exportCmd.Flags().IntVar(&neo4jBatchSize, "batch-size", neo4j.DefaultBatchSize, "rows per Neo4j statement")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportOut != "" {
		_, _, err := analyze(cmd, args[0], analyzer.WithGraphExporter(analyzer.NewYAMLExporter(nil, exportOut)))
		return err
	}
	password := neo4jPassword
	if password == "" {
		password = os.Getenv("CLASSDEP_NEO4J_PASSWORD")
	}
	ctx := cmd.Context()
	exporter, err := neo4j.New(ctx, neo4jURI, neo4jUser, password,
		neo4j.WithBatchSize(neo4jBatchSize),
		neo4j.WithClean(neo4jClean),
		neo4j.WithLogger(newLogger(cmd.ErrOrStderr())))
	if err != nil {
		return err
	}
	defer exporter.Close(ctx)
	_, _, err = analyze(cmd, args[0], analyzer.WithGraphExporter(exporter))
	return err
}
