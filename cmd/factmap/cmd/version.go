package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "factmap %s\n", buildVersion)
		fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", buildCommit)
		fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", buildDate)
		fmt.Fprintf(cmd.OutOrStdout(), "  go:     %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
