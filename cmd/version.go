package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd creates the Cobra command for displaying the application version.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of kubectl-sandbox",
		Long:  `Print the version of the kubectl-sandbox binary. This is not the simulated cluster version; use "kubectl-sandbox exec kubectl version" for that.`,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "kubectl-sandbox version %s\n", rootCmd.Version)
		},
	}
}
