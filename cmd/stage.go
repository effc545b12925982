package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"crescer-uniformes/app"
	"crescer-uniformes/db"
	"crescer-uniformes/metrics"
	"crescer-uniformes/models"
	"crescer-uniformes/repository"
	"crescer-uniformes/service"
)

func newStageCmd() *cobra.Command {
	var driveFileID string

	cmd := &cobra.Command{
		Use:   "stage [FILE]",
		Short: "Parse an order list and write it to imported_orders for review",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 1) == (driveFileID != "") {
				return errors.New("give either FILE or --drive-file-id")
			}

			ctx := cmd.Context()
			if err := db.InitDB(ctx, cfg.Database); err != nil {
				return err
			}
			defer db.CloseDB()

			driveService, err := app.NewDriveService(ctx, cfg.Google)
			if err != nil {
				return err
			}
			importService := service.NewImportService(
				repository.NewStagingOrderRepository(db.DB),
				driveService,
				metrics.NewRegistry(),
			)

			var result *models.ImportResult
			if driveFileID != "" {
				result, err = importService.ImportFromDrive(ctx, driveFileID)
			} else {
				var content []byte
				if content, err = os.ReadFile(args[0]); err != nil {
					return fmt.Errorf("failed to read order list: %w", err)
				}
				result, err = importService.ImportFromText(ctx, string(content))
			}
			if result != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%d parsed, %d staged\n", result.Parsed, result.Staged)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&driveFileID, "drive-file-id", "", "Google Drive file id of the order list")
	return cmd
}
