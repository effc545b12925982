package cmd

import (
	"github.com/spf13/cobra"

	"crescer-uniformes/db"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.InitDB(cmd.Context(), cfg.Database); err != nil {
				return err
			}
			defer db.CloseDB()

			return db.Migrate(cmd.Context(), db.DB)
		},
	}
}
