// Package cmd implements the factmap command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/factmap/cmd/factmap/app"
	"github.com/agentstation/factmap/pkg/logging"
)

var (
	appConfig *app.Config
	appLogger zerolog.Logger

	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   "factmap",
	Short: "Reconcile conflicting company facts from multiple sources",
	Long: `factmap ingests company-fact observations (legal name, director,
registered address) from files and registries, then resolves conflicts
deterministically: confirmed data beats unconfirmed, more trusted sources
beat less trusted ones, and newer observations beat older ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("binding flags: %w", err)
		}

		cfg, err := app.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		appLogger = app.NewLogger(cfg)
		logging.SetDefault(appLogger)

		return nil
	},
}

// Execute runs the root command with the given context and build info.
func Execute(ctx context.Context, version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ~/.factmap.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (console, json)")

	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}
