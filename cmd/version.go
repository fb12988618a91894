package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/onflyair/cargofit/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cargofit",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "cargofit v%s\n", version.Version)
		fmt.Fprintln(out, "Aircraft Cargo Fit & Payload Checker")
		fmt.Fprintf(out, "Built %s from commit %s\n", version.BuildTime, version.GitCommit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
