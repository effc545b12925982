package service

import (
	"context"

	"crescer-uniformes/models"
)

// ReviewServiceInterface defines the contract for reviewing imported orders
type ReviewServiceInterface interface {
	ListPending(ctx context.Context) ([]models.StagingOrder, error)
	Update(ctx context.Context, id string, req *models.UpdateStagingOrderRequest) (*models.StagingOrder, error)
	Approve(ctx context.Context, id string, edits *models.UpdateStagingOrderRequest) (*models.ApprovalResult, error)
	Ignore(ctx context.Context, id string, confirmed bool) error
}
