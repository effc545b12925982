package service

import (
	"context"

	"crescer-uniformes/models"
)

// OrderServiceInterface defines the contract for order follow-up
type OrderServiceInterface interface {
	GetOrder(ctx context.Context, id string) (*models.OrderResponse, error)
	RegisterPayment(ctx context.Context, id string, req *models.RegisterPaymentRequest) (*models.Order, error)
	UpdateDeliveries(ctx context.Context, id string, req *models.UpdateDeliveriesRequest) (*models.OrderResponse, error)
	UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error)
}
