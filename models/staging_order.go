package models

import "strings"

// Sentinel values written when the parser cannot recover a field from the text
const (
	UnknownCustomer = "Cliente Desconhecido"
	UndefinedItem   = "Item Indefinido"
	StandardSize    = "Padrão"
)

// PaymentStatus is the payment label detected in the imported text.
// Values match the labels already used by orders.payment_status.
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "Pendente"
	PaymentPartial    PaymentStatus = "Parcial"
	PaymentPaidInFull PaymentStatus = "Pago Total"
)

func (p PaymentStatus) rank() int {
	switch p {
	case PaymentPartial:
		return 1
	case PaymentPaidInFull:
		return 2
	default:
		return 0
	}
}

// Upgrade returns the stronger of the two statuses.
// Pendente < Parcial < Pago Total; a status never moves backwards.
func (p PaymentStatus) Upgrade(next PaymentStatus) PaymentStatus {
	if next.rank() > p.rank() {
		return next
	}
	if p == "" {
		return PaymentPending
	}
	return p
}

// ImportStatus is the lifecycle state of a staging row
type ImportStatus string

const (
	ImportPending  ImportStatus = "pending"
	ImportApproved ImportStatus = "approved"
	ImportIgnored  ImportStatus = "ignored"
)

// ParsedItem is one normalized line of an imported order
type ParsedItem struct {
	Quantity int    `json:"quantity" validate:"required,min=1"`
	Product  string `json:"product" validate:"required"`
	Size     string `json:"size" validate:"required"`
}

// StagingOrder is a parser-produced candidate order waiting for review.
// Stored in the imported_orders table.
type StagingOrder struct {
	ID            string        `json:"id,omitempty"`
	RawHeader     string        `json:"rawHeader,omitempty"`
	School        string        `json:"school"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	CustomerName  string        `json:"customerName"`
	Phone         string        `json:"phone"`
	Items         []string      `json:"items"`
	ParsedItems   []ParsedItem  `json:"parsedItems"`
	RawLines      []string      `json:"rawLines"`
	Status        ImportStatus  `json:"status"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	// Warnings are computed for reviewers and never stored
	Warnings []string `json:"warnings,omitempty"`
}

// OriginalText joins the raw block the way it is stored in original_text
func (o StagingOrder) OriginalText() string {
	return strings.Join(o.RawLines, "\n")
}

// UpdateStagingOrderRequest carries the reviewer's corrections for a staging row
// Example: {"school": "TRINUM", "customerName": "Maria", "phone": "98999999999",
// "paymentStatus": "Parcial", "parsedItems": [{"quantity": 2, "product": "polo", "size": "6"}]}
type UpdateStagingOrderRequest struct {
	School        string       `json:"school" validate:"required"`
	CustomerName  string       `json:"customerName" validate:"required"`
	Phone         string       `json:"phone" validate:"omitempty,numeric"`
	PaymentStatus string       `json:"paymentStatus"`
	ParsedItems   []ParsedItem `json:"parsedItems" validate:"dive"`
}

// ApproveStagingOrderRequest is the optional body of an approval.
// When Edits is set the corrections are saved before the order is created.
type ApproveStagingOrderRequest struct {
	Edits *UpdateStagingOrderRequest `json:"edits,omitempty"`
}

// IgnoreStagingOrderRequest must carry an explicit confirmation
type IgnoreStagingOrderRequest struct {
	Confirm bool `json:"confirm"`
}

// ApprovalResult describes the records produced by an approval
type ApprovalResult struct {
	StagingOrderID  string `json:"stagingOrderId"`
	CustomerID      string `json:"customerId"`
	CustomerCreated bool   `json:"customerCreated"`
	ResolvedBy      string `json:"resolvedBy"` // phone, name or created
	OrderID         string `json:"orderId"`
	ItemCount       int    `json:"itemCount"`
}

// ImportResult is returned after a text file was parsed and staged
type ImportResult struct {
	Parsed int            `json:"parsed"`
	Staged int            `json:"staged"`
	Orders []StagingOrder `json:"orders"`
}

// StagingOrderListResponse wraps the pending queue
type StagingOrderListResponse struct {
	Orders []StagingOrder `json:"orders"`
}
