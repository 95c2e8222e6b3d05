package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"gopkg.in/yaml.v3"
)

var (
	edgesFormat string
	edgesOut    string
)

var edgesCmd = &cobra.Command{
	Use:   "edges LOCATION",
	Short: "List member dependencies",
	Long: `List every member dependency in program order, one "source -> dest" per line.
References to java/lang/Object members are never reported.

Examples:
  classdep edges target/classes
  classdep edges app.jar --format yaml
  classdep edges . --out file:///tmp/edges.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runEdges,
}

func init() {
	rootCmd.AddCommand(edgesCmd)
	edgesCmd.Flags().StringVarP(&edgesFormat, "format", "f", "text", "output format: text or yaml")
	edgesCmd.Flags().StringVarP(&edgesOut, "out", "o", "", "URL to write YAML edges to instead of stdout")
}

func runEdges(cmd *cobra.Command, args []string) error {
	model, _, err := analyze(cmd, args[0])
	if err != nil {
		return err
	}
	edges := model.Edges()
	if edgesOut != "" {
		data, err := yaml.Marshal(edges)
		if err != nil {
			return err
		}
		return afs.New().Upload(cmd.Context(), edgesOut, file.DefaultFileOsMode, bytes.NewReader(data))
	}
	out := cmd.OutOrStdout()
	switch edgesFormat {
	case "yaml":
		data, err := yaml.Marshal(edges)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case "text":
		for _, edge := range edges {
			fmt.Fprintln(out, edge.String())
		}
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", edgesFormat)
	}
}
