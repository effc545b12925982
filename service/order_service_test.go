package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crescer-uniformes/metrics"
	"crescer-uniformes/models"
	"crescer-uniformes/repository"
)

const itemUUID = "6c1f3f3e-8d52-4b4e-9a52-0f8f1d0c2a11"

func TestOrderService_RegisterPayment(t *testing.T) {
	repo := newFakeOrderRepo()
	m := metrics.NewRegistry()
	s := NewOrderService(repo, m)

	order, err := s.RegisterPayment(context.Background(), "o1", &models.RegisterPaymentRequest{Amount: decimal.RequireFromString("40.50")})
	require.NoError(t, err)
	assert.Equal(t, "Parcial", order.PaymentStatus)

	order, err = s.RegisterPayment(context.Background(), "o1", &models.RegisterPaymentRequest{Amount: decimal.RequireFromString("59.50")})
	require.NoError(t, err)
	assert.Equal(t, "Pago Total", order.PaymentStatus)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PaymentsApplied))
}

func TestOrderService_RegisterPaymentRejects(t *testing.T) {
	repo := newFakeOrderRepo()
	s := NewOrderService(repo, metrics.NewRegistry())

	_, err := s.RegisterPayment(context.Background(), "o1", &models.RegisterPaymentRequest{Amount: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, repository.ErrInvalidPayment)

	_, err = s.RegisterPayment(context.Background(), "o1", &models.RegisterPaymentRequest{Amount: decimal.RequireFromString("10.005")})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	assert.Empty(t, repo.payments)
}

func TestOrderService_UpdateDeliveries(t *testing.T) {
	repo := newFakeOrderRepo()
	s := NewOrderService(repo, metrics.NewRegistry())

	resp, err := s.UpdateDeliveries(context.Background(), "o1", &models.UpdateDeliveriesRequest{
		Items: []models.DeliveryUpdate{{ItemID: itemUUID, QuantityDelivered: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryPartial, resp.DeliveryStatus)
	assert.Len(t, repo.deliveries, 1)
}

func TestOrderService_UpdateDeliveriesValidation(t *testing.T) {
	tests := []struct {
		name string
		req  models.UpdateDeliveriesRequest
	}{
		{"no items", models.UpdateDeliveriesRequest{}},
		{"bad item id", models.UpdateDeliveriesRequest{Items: []models.DeliveryUpdate{{ItemID: "i1", QuantityDelivered: 1}}}},
		{"negative quantity", models.UpdateDeliveriesRequest{Items: []models.DeliveryUpdate{{ItemID: itemUUID, QuantityDelivered: -1}}}},
		{"duplicated item", models.UpdateDeliveriesRequest{Items: []models.DeliveryUpdate{
			{ItemID: itemUUID, QuantityDelivered: 1},
			{ItemID: itemUUID, QuantityDelivered: 2},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			s := NewOrderService(repo, metrics.NewRegistry())
			req := tt.req

			_, err := s.UpdateDeliveries(context.Background(), "o1", &req)
			assert.ErrorIs(t, err, ErrInvalidRequest)
			assert.Empty(t, repo.deliveries)
		})
	}
}

const otherItemUUID = "9b2d7c1a-4e5f-4a6b-8c7d-1e2f3a4b5c6d"

func TestOrderService_UpdateOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	s := NewOrderService(repo, metrics.NewRegistry())

	resp, err := s.UpdateOrder(context.Background(), "o1", &models.UpdateOrderRequest{
		DueDate: "2026-11-30",
		Items: []models.ItemPriceUpdate{
			{ItemID: itemUUID, UnitPrice: decimal.RequireFromString("45.90")},
			{ItemID: otherItemUUID, UnitPrice: decimal.RequireFromString("30.00")},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.TotalAmount.Equal(decimal.RequireFromString("75.90")))
	assert.Equal(t, "Pendente", resp.PaymentStatus)
	assert.Len(t, repo.priced, 1)
}

func TestOrderService_UpdateOrderValidation(t *testing.T) {
	price := decimal.RequireFromString("10")
	tests := []struct {
		name string
		req  models.UpdateOrderRequest
		want error
	}{
		{"bad due date", models.UpdateOrderRequest{DueDate: "30/11/2026"}, ErrInvalidRequest},
		{"bad item id", models.UpdateOrderRequest{Items: []models.ItemPriceUpdate{{ItemID: "i1", UnitPrice: price}}}, ErrInvalidRequest},
		{"negative price", models.UpdateOrderRequest{Items: []models.ItemPriceUpdate{{ItemID: itemUUID, UnitPrice: decimal.NewFromInt(-1)}}}, repository.ErrInvalidPrice},
		{"sub-cent price", models.UpdateOrderRequest{Items: []models.ItemPriceUpdate{{ItemID: itemUUID, UnitPrice: decimal.RequireFromString("9.999")}}}, ErrInvalidRequest},
		{"duplicated item", models.UpdateOrderRequest{Items: []models.ItemPriceUpdate{
			{ItemID: itemUUID, UnitPrice: price},
			{ItemID: itemUUID, UnitPrice: price},
		}}, ErrInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOrderRepo()
			s := NewOrderService(repo, metrics.NewRegistry())
			req := tt.req

			_, err := s.UpdateOrder(context.Background(), "o1", &req)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.priced)
		})
	}
}
