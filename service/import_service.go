package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"crescer-uniformes/metrics"
	"crescer-uniformes/models"
	"crescer-uniformes/parser"
	"crescer-uniformes/repository"
)

// ImportService parses order lists and stages the result for review
type ImportService struct {
	repository   repository.StagingOrderRepositoryInterface
	driveService DriveServiceInterface
	metrics      *metrics.Registry
}

// NewImportService creates a new ImportService.
// driveService may be nil when Drive credentials are not configured.
func NewImportService(
	repo repository.StagingOrderRepositoryInterface,
	driveService DriveServiceInterface,
	m *metrics.Registry,
) *ImportService {
	return &ImportService{
		repository:   repo,
		driveService: driveService,
		metrics:      m,
	}
}

// Preview parses text without storing anything
func (s *ImportService) Preview(text string) *models.ImportResult {
	orders := parser.Parse(text)
	return &models.ImportResult{Parsed: len(orders), Orders: orders}
}

// ImportFromText parses text and writes every recognized order to the staging table
func (s *ImportService) ImportFromText(ctx context.Context, text string) (*models.ImportResult, error) {
	start := time.Now()
	defer func() { s.metrics.ImportDuration.Observe(time.Since(start).Seconds()) }()

	orders := parser.Parse(text)
	summary := parser.Summarize(orders)
	logrus.WithFields(logrus.Fields{
		"orders":           summary.Orders,
		"items":            summary.Items,
		"unknownCustomers": summary.UnknownCustomers,
		"withoutPhone":     summary.WithoutPhone,
		"headerless":       summary.Headerless,
	}).Info("📦 ImportFromText: Order list parsed")
	s.metrics.OrdersParsed.Add(float64(len(orders)))

	result := &models.ImportResult{Parsed: len(orders), Orders: orders}
	if len(orders) == 0 {
		logrus.Warn("⚠️  ImportFromText: No orders found in text")
		return result, nil
	}

	staged, err := s.repository.BulkInsert(ctx, orders)
	s.metrics.OrdersStaged.Add(float64(staged))
	result.Staged = staged
	if err != nil {
		logrus.Errorf("❌ ImportFromText: Staged %d of %d orders before failing: %v", staged, len(orders), err)
		return result, fmt.Errorf("failed to stage imported orders: %w", err)
	}

	logrus.Infof("✅ ImportFromText: Staged %d orders", staged)
	return result, nil
}

// ImportFromDrive downloads an order list from Google Drive and imports it
func (s *ImportService) ImportFromDrive(ctx context.Context, fileID string) (*models.ImportResult, error) {
	if s.driveService == nil {
		return nil, ErrDriveUnavailable
	}

	logrus.Infof("📥 ImportFromDrive: Downloading order list file=%s", fileID)
	text, err := s.driveService.DownloadText(ctx, fileID)
	if err != nil {
		logrus.Errorf("❌ ImportFromDrive: Error downloading file=%s: %v", fileID, err)
		return nil, fmt.Errorf("failed to download order list: %w", err)
	}

	return s.ImportFromText(ctx, text)
}
