package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"crescer-uniformes/app/controller"
	"crescer-uniformes/app/router"
	"crescer-uniformes/config"
	"crescer-uniformes/db"
	"crescer-uniformes/metrics"
	"crescer-uniformes/repository"
	"crescer-uniformes/service"
)

// Initialize initializes the application and returns its HTTP handler
func Initialize(ctx context.Context, cfg *config.Configuration) (http.Handler, error) {
	// Initialize database connection
	if err := db.InitDB(ctx, cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	registry := metrics.NewRegistry()

	// Initialize repositories
	stagingRepo := repository.NewStagingOrderRepository(db.DB)
	customerRepo := repository.NewCustomerRepository(db.DB)
	orderRepo := repository.NewOrderRepository(db.DB)

	// Drive imports are optional; without credentials the route answers 503
	driveService, err := NewDriveService(ctx, cfg.Google)
	if err != nil {
		return nil, err
	}

	importService := service.NewImportService(stagingRepo, driveService, registry)
	reviewService := service.NewReviewService(stagingRepo, customerRepo, orderRepo, registry)
	reportService := service.NewReportService(stagingRepo, cfg.ChromePath)
	orderService := service.NewOrderService(orderRepo, registry)

	// Create controllers
	controllers := &router.Controllers{
		Import: controller.NewImportController(importService, reviewService, reportService),
		Order:  controller.NewOrderController(orderService),
	}

	return router.SetupRoutes(controllers, registry.Handler()), nil
}

// NewDriveService returns a Drive client when credentials are configured, nil otherwise
func NewDriveService(ctx context.Context, opts config.GoogleOptions) (service.DriveServiceInterface, error) {
	if !opts.Enabled() {
		logrus.Warn("⚠️  Google Drive credentials not set, Drive imports are disabled")
		return nil, nil
	}

	driveService, err := service.NewDriveService(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize drive service: %w", err)
	}
	return driveService, nil
}
