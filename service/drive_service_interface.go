package service

import "context"

// DriveServiceInterface defines the contract for Google Drive operations
type DriveServiceInterface interface {
	DownloadText(ctx context.Context, fileID string) (string, error)
}
