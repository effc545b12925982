package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"crescer-uniformes/models"
)

const orderColumns = `id, customer_id, COALESCE(school, ''), purchase_date, due_date,
	COALESCE(payment_status, ''), delivery_status, COALESCE(notes, ''),
	total_amount, amount_paid, created_at`

const orderItemColumns = `id, order_id, product_name, size, quantity, unit_price, quantity_delivered`

// OrderRepository handles database operations for orders and order items
type OrderRepository struct {
	conn *sql.DB
}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository(conn *sql.DB) *OrderRepository {
	return &OrderRepository{conn: conn}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// Create inserts a new order
func (r *OrderRepository) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	logrus.Infof("📦 CreateOrder: Creating order for customer_id=%s, school=%s", req.CustomerID, req.School)

	deliveryStatus := req.DeliveryStatus
	if deliveryStatus == "" {
		deliveryStatus = models.DeliveryPending
	}

	query := `
		INSERT INTO orders (customer_id, school, purchase_date, payment_status, delivery_status, notes, total_amount, amount_paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + orderColumns

	order, err := scanOrder(r.conn.QueryRowContext(ctx, query,
		req.CustomerID,
		sql.NullString{String: req.School, Valid: req.School != ""},
		sql.NullString{String: req.PurchaseDate, Valid: req.PurchaseDate != ""},
		sql.NullString{String: req.PaymentStatus, Valid: req.PaymentStatus != ""},
		deliveryStatus,
		sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		req.TotalAmount,
		req.AmountPaid,
	))
	if err != nil {
		logrus.Errorf("❌ CreateOrder: Error inserting order: %v", err)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logrus.WithField("id", order.ID).Info("✅ CreateOrder: Order created")
	return order, nil
}

// InsertItems writes all items of an order in a single statement
func (r *OrderRepository) InsertItems(ctx context.Context, orderID string, items []models.OrderItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	logrus.Infof("📦 InsertItems: Inserting %d items into order_id=%s", len(items), orderID)

	const columnsPerRow = 6
	placeholders := make([]string, 0, len(items))
	args := make([]interface{}, 0, len(items)*columnsPerRow)
	for i, item := range items {
		base := i * columnsPerRow
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, orderID, item.ProductName, item.Size, item.Quantity, item.UnitPrice, item.QuantityDelivered)
	}

	query := `
		INSERT INTO order_items (order_id, product_name, size, quantity, unit_price, quantity_delivered)
		VALUES ` + strings.Join(placeholders, ", ")

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		logrus.Errorf("❌ InsertItems: Error inserting items for order_id=%s: %v", orderID, err)
		return 0, fmt.Errorf("failed to insert order items: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return len(items), nil
	}
	logrus.Infof("✅ InsertItems: Inserted %d items into order_id=%s", affected, orderID)
	return int(affected), nil
}

// GetByID retrieves an order with its items
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.OrderResponse, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		logrus.Errorf("❌ GetOrder: Error fetching order id=%s: %v", id, err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	items, err := r.listItems(ctx, r.conn, id, false)
	if err != nil {
		return nil, err
	}

	return &models.OrderResponse{Order: *order, Items: items}, nil
}

// RegisterPayment adds amount to amount_paid and relabels the payment status
func (r *OrderRepository) RegisterPayment(ctx context.Context, id string, amount decimal.Decimal) (*models.Order, error) {
	logrus.Infof("💰 RegisterPayment: order_id=%s, amount=%s", id, amount.StringFixed(2))

	if !amount.IsPositive() {
		return nil, ErrInvalidPayment
	}

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var total, paid decimal.Decimal
	err = tx.QueryRowContext(ctx, `SELECT total_amount, amount_paid FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&total, &paid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	newPaid := paid.Add(amount)
	label := models.PaymentLabelFor(total, newPaid)

	query := `
		UPDATE orders SET amount_paid = $1, payment_status = $2
		WHERE id = $3
		RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRowContext(ctx, query, newPaid, string(label), id))
	if err != nil {
		logrus.Errorf("❌ RegisterPayment: Error updating order id=%s: %v", id, err)
		return nil, fmt.Errorf("failed to update order payment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.Infof("✅ RegisterPayment: order_id=%s paid=%s status=%s", id, newPaid.StringFixed(2), label)
	return order, nil
}

// UpdateDeliveries records delivered quantities and recomputes the order's delivery status
func (r *OrderRepository) UpdateDeliveries(ctx context.Context, id string, updates []models.DeliveryUpdate) (*models.OrderResponse, error) {
	logrus.Infof("🚚 UpdateDeliveries: order_id=%s, %d items", id, len(updates))

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	if !exists {
		return nil, ErrOrderNotFound
	}

	items, err := r.listItems(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(items))
	for i := range items {
		byID[items[i].ID] = i
	}

	for _, u := range updates {
		idx, ok := byID[u.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item_id=%s", ErrOrderItemNotFound, u.ItemID)
		}
		if u.QuantityDelivered < 0 || u.QuantityDelivered > items[idx].Quantity {
			return nil, fmt.Errorf("%w: item_id=%s, ordered=%d, delivered=%d",
				ErrInvalidDelivery, u.ItemID, items[idx].Quantity, u.QuantityDelivered)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE order_items SET quantity_delivered = $1 WHERE id = $2`, u.QuantityDelivered, u.ItemID); err != nil {
			return nil, fmt.Errorf("failed to update delivered quantity: %w", err)
		}
		items[idx].QuantityDelivered = u.QuantityDelivered
	}

	status := models.DeliveryStatusFor(items)
	query := `UPDATE orders SET delivery_status = $1 WHERE id = $2 RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRowContext(ctx, query, status, id))
	if err != nil {
		return nil, fmt.Errorf("failed to update delivery status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.Infof("✅ UpdateDeliveries: order_id=%s delivery_status=%s", id, status)
	return &models.OrderResponse{Order: *order, Items: items}, nil
}

// UpdateOrder sets item unit prices, due date and notes, then recomputes the
// total from the items. The payment label follows the amounts once the order
// has a priced total; until then the label given at import time is kept.
func (r *OrderRepository) UpdateOrder(ctx context.Context, id string, req *models.UpdateOrderRequest) (*models.OrderResponse, error) {
	logrus.Infof("📝 UpdateOrder: order_id=%s, %d item prices", id, len(req.Items))

	tx, err := r.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		paid          decimal.Decimal
		paymentStatus string
	)
	err = tx.QueryRowContext(ctx, `SELECT amount_paid, COALESCE(payment_status, '') FROM orders WHERE id = $1 FOR UPDATE`, id).
		Scan(&paid, &paymentStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	items, err := r.listItems(ctx, tx, id, true)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(items))
	for i := range items {
		byID[items[i].ID] = i
	}

	for _, u := range req.Items {
		idx, ok := byID[u.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item_id=%s", ErrOrderItemNotFound, u.ItemID)
		}
		if u.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: item_id=%s, unit_price=%s", ErrInvalidPrice, u.ItemID, u.UnitPrice)
		}

		if _, err := tx.ExecContext(ctx, `UPDATE order_items SET unit_price = $1 WHERE id = $2`, u.UnitPrice, u.ItemID); err != nil {
			return nil, fmt.Errorf("failed to update unit price: %w", err)
		}
		items[idx].UnitPrice = u.UnitPrice
	}

	total := models.OrderTotal(items)
	if total.IsPositive() {
		paymentStatus = string(models.PaymentLabelFor(total, paid))
	}

	var notes sql.NullString
	if req.Notes != nil {
		notes = sql.NullString{String: strings.TrimSpace(*req.Notes), Valid: true}
	}

	query := `
		UPDATE orders
		SET total_amount = $1, payment_status = $2, due_date = COALESCE($3, due_date), notes = COALESCE($4, notes)
		WHERE id = $5
		RETURNING ` + orderColumns
	order, err := scanOrder(tx.QueryRowContext(ctx, query,
		total,
		sql.NullString{String: paymentStatus, Valid: paymentStatus != ""},
		sql.NullString{String: req.DueDate, Valid: req.DueDate != ""},
		notes,
		id,
	))
	if err != nil {
		logrus.Errorf("❌ UpdateOrder: Error updating order id=%s: %v", id, err)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logrus.Infof("✅ UpdateOrder: order_id=%s total=%s status=%s", id, total.StringFixed(2), order.PaymentStatus)
	return &models.OrderResponse{Order: *order, Items: items}, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

func (r *OrderRepository) listItems(ctx context.Context, q queryer, orderID string, lock bool) ([]models.OrderItem, error) {
	query := `SELECT ` + orderItemColumns + ` FROM order_items WHERE order_id = $1 ORDER BY id`
	if lock {
		query += ` FOR UPDATE`
	}

	rows, err := q.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch order items: %w", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductName,
			&item.Size,
			&item.Quantity,
			&item.UnitPrice,
			&item.QuantityDelivered,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order items: %w", err)
	}
	return items, nil
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order                 models.Order
		purchaseDate, dueDate sql.NullTime
	)
	err := row.Scan(
		&order.ID,
		&order.CustomerID,
		&order.School,
		&purchaseDate,
		&dueDate,
		&order.PaymentStatus,
		&order.DeliveryStatus,
		&order.Notes,
		&order.TotalAmount,
		&order.AmountPaid,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if purchaseDate.Valid {
		order.PurchaseDate = purchaseDate.Time.Format("2006-01-02")
	}
	if dueDate.Valid {
		order.DueDate = dueDate.Time.Format("2006-01-02")
	}
	return &order, nil
}
