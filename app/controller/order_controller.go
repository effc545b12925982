package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"crescer-uniformes/models"
	"crescer-uniformes/service"
)

// OrderController handles HTTP requests for approved orders
type OrderController struct {
	service service.OrderServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(s service.OrderServiceInterface) *OrderController {
	return &OrderController{service: s}
}

// GetOrder handles GET /admin/orders/{id}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "GetOrder", "id")
	if !ok {
		return
	}

	order, err := c.service.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, "GetOrder", err)
		return
	}
	writeJSON(w, "GetOrder", http.StatusOK, order)
}

// RegisterPayment handles POST /admin/orders/{id}/payments
// Example request:
// POST /admin/orders/a3e2.../payments
// {"amount": "150.00"}
func (c *OrderController) RegisterPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "RegisterPayment", "id")
	if !ok {
		return
	}

	var req models.RegisterPaymentRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logrus.Warnf("❌ RegisterPayment: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.service.RegisterPayment(r.Context(), id, &req)
	if err != nil {
		writeError(w, "RegisterPayment", err)
		return
	}
	writeJSON(w, "RegisterPayment", http.StatusOK, order)
}

// UpdateDeliveries handles PUT /admin/orders/{id}/deliveries
// Example request:
// PUT /admin/orders/a3e2.../deliveries
// {"items": [{"itemId": "6c1f...", "quantityDelivered": 2}]}
func (c *OrderController) UpdateDeliveries(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "UpdateDeliveries", "id")
	if !ok {
		return
	}

	var req models.UpdateDeliveriesRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logrus.Warnf("❌ UpdateDeliveries: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.service.UpdateDeliveries(r.Context(), id, &req)
	if err != nil {
		writeError(w, "UpdateDeliveries", err)
		return
	}
	writeJSON(w, "UpdateDeliveries", http.StatusOK, order)
}

// UpdateOrder handles PUT /admin/orders/{id}
// Example request:
// PUT /admin/orders/a3e2...
// {"dueDate": "2026-11-30", "notes": "entregar na escola", "items": [{"itemId": "6c1f...", "unitPrice": "45.90"}]}
func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "UpdateOrder", "id")
	if !ok {
		return
	}

	var req models.UpdateOrderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logrus.Warnf("❌ UpdateOrder: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.service.UpdateOrder(r.Context(), id, &req)
	if err != nil {
		writeError(w, "UpdateOrder", err)
		return
	}
	writeJSON(w, "UpdateOrder", http.StatusOK, order)
}
