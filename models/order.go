package models

import "github.com/shopspring/decimal"

// Delivery status values of an order
const (
	DeliveryPending   = "pending"
	DeliveryPartial   = "partial"
	DeliveryDelivered = "delivered"
)

// Order represents an order in the database
type Order struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customerId"`
	School         string          `json:"school,omitempty"`
	PurchaseDate   string          `json:"purchaseDate,omitempty"`
	DueDate        string          `json:"dueDate,omitempty"`
	PaymentStatus  string          `json:"paymentStatus,omitempty"`
	DeliveryStatus string          `json:"deliveryStatus"` // pending, partial, delivered
	Notes          string          `json:"notes,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	AmountPaid     decimal.Decimal `json:"amountPaid"`
	CreatedAt      string          `json:"createdAt"`
}

// OrderItem represents a line of an order
type OrderItem struct {
	ID                string          `json:"id"`
	OrderID           string          `json:"orderId"`
	ProductName       string          `json:"productName"`
	Size              string          `json:"size"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	QuantityDelivered int             `json:"quantityDelivered"`
}

// CreateOrderRequest holds the fields written when an order is created
type CreateOrderRequest struct {
	CustomerID     string
	School         string
	PurchaseDate   string // YYYY-MM-DD
	PaymentStatus  string
	DeliveryStatus string
	Notes          string
	TotalAmount    decimal.Decimal
	AmountPaid     decimal.Decimal
}

// OrderResponse is an order with its lines
type OrderResponse struct {
	Order
	Items []OrderItem `json:"items"`
}

// RegisterPaymentRequest represents the body of a payment registration
// Example: {"amount": "150.00"}
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// DeliveryUpdate sets how many units of one order item were handed over
type DeliveryUpdate struct {
	ItemID            string `json:"itemId" validate:"required,uuid"`
	QuantityDelivered int    `json:"quantityDelivered" validate:"min=0"`
}

// UpdateDeliveriesRequest represents the body of a delivery update
// Example: {"items": [{"itemId": "6c1f...", "quantityDelivered": 2}]}
type UpdateDeliveriesRequest struct {
	Items []DeliveryUpdate `json:"items" validate:"required,min=1,dive"`
}

// ItemPriceUpdate sets the unit price of one order item
type ItemPriceUpdate struct {
	ItemID    string          `json:"itemId" validate:"required,uuid"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

// UpdateOrderRequest represents the body of an order edit.
// DueDate left empty and Notes left out keep the stored values.
// Example: {"dueDate": "2026-11-30", "notes": "entregar na escola",
// "items": [{"itemId": "6c1f...", "unitPrice": "45.90"}]}
type UpdateOrderRequest struct {
	DueDate string            `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	Notes   *string           `json:"notes"`
	Items   []ItemPriceUpdate `json:"items" validate:"dive"`
}

// PaymentLabelFor returns the payment label for what was paid against total.
// An order without a priced total is never settled.
func PaymentLabelFor(total, paid decimal.Decimal) PaymentStatus {
	switch {
	case !paid.IsPositive():
		return PaymentPending
	case total.IsPositive() && paid.GreaterThanOrEqual(total):
		return PaymentPaidInFull
	default:
		return PaymentPartial
	}
}

// OrderTotal sums quantity times unit price over the items
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DeliveryStatusFor derives the delivery status from the delivered quantities
func DeliveryStatusFor(items []OrderItem) string {
	ordered, delivered := 0, 0
	for _, item := range items {
		ordered += item.Quantity
		delivered += item.QuantityDelivered
	}
	switch {
	case delivered == 0:
		return DeliveryPending
	case delivered >= ordered:
		return DeliveryDelivered
	default:
		return DeliveryPartial
	}
}
