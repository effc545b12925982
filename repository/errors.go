package repository

import "errors"

var (
	ErrStagingOrderNotFound   = errors.New("staging order not found")
	ErrStagingOrderNotPending = errors.New("staging order is no longer pending")
	ErrInvalidImportStatus    = errors.New("status must be 'approved' or 'ignored'")
	ErrOrderNotFound          = errors.New("order not found")
	ErrOrderItemNotFound      = errors.New("order item does not belong to the order")
	ErrInvalidDelivery        = errors.New("delivered quantity must be between 0 and the ordered quantity")
	ErrInvalidPayment         = errors.New("payment amount must be greater than 0")
	ErrInvalidPrice           = errors.New("unit price cannot be negative")
)
