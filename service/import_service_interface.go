package service

import (
	"context"

	"crescer-uniformes/models"
)

// ImportServiceInterface defines the contract for parsing and staging order lists
type ImportServiceInterface interface {
	Preview(text string) *models.ImportResult
	ImportFromText(ctx context.Context, text string) (*models.ImportResult, error)
	ImportFromDrive(ctx context.Context, fileID string) (*models.ImportResult, error)
}

// Ensure ImportService implements ImportServiceInterface
var _ ImportServiceInterface = (*ImportService)(nil)
