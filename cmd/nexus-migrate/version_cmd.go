package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd returns the version command
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of nexus-migrate",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "nexus-migrate version %s\n", version)
			fmt.Fprintf(out, "Built with %s\n", runtime.Version())
		},
	}
}
