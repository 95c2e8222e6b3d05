package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cyclesCmd = &cobra.Command{
	Use:   "cycles LOCATION",
	Short: "List groups of mutually dependent classes",
	Args:  cobra.ExactArgs(1),
	RunE:  runCycles,
}

func init() {
	rootCmd.AddCommand(cyclesCmd)
}

func runCycles(cmd *cobra.Command, args []string) error {
	model, _, err := analyze(cmd, args[0])
	if err != nil {
		return err
	}
	cycles, err := model.Cycles()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, cycle := range cycles {
		fmt.Fprintln(out, strings.Join(cycle, " "))
	}
	return nil
}
