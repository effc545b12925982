package service

import "context"

// ReportServiceInterface defines the contract for review queue exports
type ReportServiceInterface interface {
	ExportPendingXLSX(ctx context.Context) ([]byte, error)
	RenderPendingHTML(ctx context.Context) (string, error)
	RenderPendingPDF(ctx context.Context) ([]byte, error)
}
