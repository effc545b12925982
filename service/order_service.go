package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"crescer-uniformes/metrics"
	"crescer-uniformes/models"
	"crescer-uniformes/repository"
	"crescer-uniformes/utils"
)

// OrderService handles follow-up on approved orders: prices, payments and deliveries
type OrderService struct {
	repository repository.OrderRepositoryInterface
	metrics    *metrics.Registry
}

// NewOrderService creates a new OrderService
func NewOrderService(repo repository.OrderRepositoryInterface, m *metrics.Registry) *OrderService {
	return &OrderService{repository: repo, metrics: m}
}

// Ensure OrderService implements OrderServiceInterface
var _ OrderServiceInterface = (*OrderService)(nil)

// GetOrder returns an order with its items
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.OrderResponse, error) {
	return s.repository.GetByID(ctx, id)
}

// RegisterPayment adds a payment to an order
func (s *OrderService) RegisterPayment(ctx context.Context, id string, req *models.RegisterPaymentRequest) (*models.Order, error) {
	if !req.Amount.IsPositive() {
		return nil, repository.ErrInvalidPayment
	}
	if !req.Amount.Equal(req.Amount.Round(2)) {
		return nil, fmt.Errorf("%w: amount has more than two decimal places", ErrInvalidRequest)
	}

	order, err := s.repository.RegisterPayment(ctx, id, req.Amount)
	if err != nil {
		return nil, err
	}
	s.metrics.PaymentsApplied.Inc()

	logrus.WithField("orderId", id).Infof("💰 RegisterPayment: %s received, %s of %s paid",
		utils.FormatBRL(req.Amount), utils.FormatBRL(order.AmountPaid), utils.FormatBRL(order.TotalAmount))
	return order, nil
}

// UpdateDeliveries records delivered quantities for some items of an order
func (s *OrderService) UpdateDeliveries(ctx context.Context, id string, req *models.UpdateDeliveriesRequest) (*models.OrderResponse, error) {
	if err := utils.Validator().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.ItemID)
	}
	if err := checkUniqueItems(ids); err != nil {
		return nil, err
	}

	return s.repository.UpdateDeliveries(ctx, id, req.Items)
}

// UpdateOrder fills in the real amounts of an order: item unit prices, due
// date and notes. The total is recomputed from the items.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error) {
	if err := utils.Validator().Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	ids := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item %s", repository.ErrInvalidPrice, item.ItemID)
		}
		if !item.UnitPrice.Equal(item.UnitPrice.Round(2)) {
			return nil, fmt.Errorf("%w: unit price of item %s has more than two decimal places", ErrInvalidRequest, item.ItemID)
		}
		ids = append(ids, item.ItemID)
	}
	if err := checkUniqueItems(ids); err != nil {
		return nil, err
	}

	resp, err := s.repository.UpdateOrder(ctx, id, req)
	if err != nil {
		return nil, err
	}

	logrus.WithField("orderId", id).Infof("📝 UpdateOrder: total %s, %s paid, status %s",
		utils.FormatBRL(resp.TotalAmount), utils.FormatBRL(resp.AmountPaid), resp.PaymentStatus)
	return resp, nil
}

func checkUniqueItems(ids []string) error {
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return fmt.Errorf("%w: item %s listed twice", ErrInvalidRequest, id)
		}
		seen[id] = true
	}
	return nil
}
