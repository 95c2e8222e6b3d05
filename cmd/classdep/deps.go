package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	depsClass    string
	depsDepth    int
	depsPrefixes []string
)

var depsCmd = &cobra.Command{
	Use:   "deps LOCATION",
	Short: "List classes a class depends on",
	Long: `List classes whose members are reachable from the members of a class.

Depth counts member hops; 0 means unlimited, negative uses the configured depth.

Examples:
  classdep deps . --class com/x/Foo
  classdep deps app.jar --class com/x/Foo --depth 0 --prefix com/x/`,
	Args: cobra.ExactArgs(1),
	RunE: runDeps,
}

func init() {
	rootCmd.AddCommand(depsCmd)
	depsCmd.Flags().StringVarP(&depsClass, "class", "c", "", "internal class name, e.g. com/x/Foo")
	depsCmd.Flags().IntVarP(&depsDepth, "depth", "d", -1, "member hops to follow")
	depsCmd.Flags().StringSliceVarP(&depsPrefixes, "prefix", "p", nil, "only report classes with these prefixes")
	_ = depsCmd.MarkFlagRequired("class")
}

func runDeps(cmd *cobra.Command, args []string) error {
	model, config, err := analyze(cmd, args[0])
	if err != nil {
		return err
	}
	className := strings.ReplaceAll(depsClass, ".", "/")
	if _, ok := model.Classes[className]; !ok {
		return fmt.Errorf("class not found: %s", className)
	}
	depth := depsDepth
	if depth < 0 {
		depth = config.Depth
	}
	var filter func(owner string) bool
	if len(depsPrefixes) > 0 {
		filter = func(owner string) bool {
			for _, prefix := range depsPrefixes {
				if strings.HasPrefix(owner, prefix) {
					return true
				}
			}
			return false
		}
	}
	classes, err := model.Dependencies(className, depth, filter)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, class := range classes {
		fmt.Fprintln(out, class)
	}
	return nil
}
