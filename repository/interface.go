package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"crescer-uniformes/models"
)

// StagingOrderRepositoryInterface defines the contract for the imported_orders staging table
type StagingOrderRepositoryInterface interface {
	BulkInsert(ctx context.Context, orders []models.StagingOrder) (int, error)
	ListPending(ctx context.Context) ([]models.StagingOrder, error)
	GetByID(ctx context.Context, id string) (*models.StagingOrder, error)
	Update(ctx context.Context, id string, req *models.UpdateStagingOrderRequest) (*models.StagingOrder, error)
	SetStatus(ctx context.Context, id string, status models.ImportStatus) error
}

// CustomerRepositoryInterface defines the contract for customer lookups and creation
type CustomerRepositoryInterface interface {
	FindByPhone(ctx context.Context, phone string) (*models.Customer, error)
	FindByName(ctx context.Context, name string) (*models.Customer, error)
	Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error)
}

// OrderRepositoryInterface defines the contract for orders and their items
type OrderRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	InsertItems(ctx context.Context, orderID string, items []models.OrderItem) (int, error)
	GetByID(ctx context.Context, id string) (*models.OrderResponse, error)
	RegisterPayment(ctx context.Context, id string, amount decimal.Decimal) (*models.Order, error)
	UpdateDeliveries(ctx context.Context, id string, updates []models.DeliveryUpdate) (*models.OrderResponse, error)
	UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error)
}
