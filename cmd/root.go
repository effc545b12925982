// Package cmd holds the crescer command line: the HTTP server plus offline
// tools to parse, stage and migrate.
package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"crescer-uniformes/config"
)

// cfg is loaded once before any subcommand runs
var cfg *config.Configuration

func NewRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "crescer",
		Short:         "Crescer uniformes order import backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(envFile)
			if err != nil {
				return err
			}
			if err := loaded.ConfigureLogger(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when ENV=production)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newStageCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		logrus.Errorf("❌ %v", err)
		os.Exit(1)
	}
}
