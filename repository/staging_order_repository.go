package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"crescer-uniformes/models"
)

// BulkInsertChunkSize is the number of rows written per INSERT statement
const BulkInsertChunkSize = 20

const stagingOrderColumns = `id, COALESCE(raw_header, ''), COALESCE(customer_name, ''), COALESCE(phone, ''),
	COALESCE(school, ''), COALESCE(payment_status, ''), COALESCE(original_text, ''),
	raw_items, parsed_items, status, created_at`

// StagingOrderRepository handles database operations for imported_orders
type StagingOrderRepository struct {
	conn *sql.DB
}

// NewStagingOrderRepository creates a new StagingOrderRepository
func NewStagingOrderRepository(conn *sql.DB) *StagingOrderRepository {
	return &StagingOrderRepository{conn: conn}
}

// Ensure StagingOrderRepository implements StagingOrderRepositoryInterface
var _ StagingOrderRepositoryInterface = (*StagingOrderRepository)(nil)

// BulkInsert stores parsed orders with status pending, BulkInsertChunkSize rows per statement.
// It stops at the first failing chunk and returns how many rows were written before it.
func (r *StagingOrderRepository) BulkInsert(ctx context.Context, orders []models.StagingOrder) (int, error) {
	logrus.Infof("📦 BulkInsert: Staging %d imported orders", len(orders))

	inserted := 0
	for start := 0; start < len(orders); start += BulkInsertChunkSize {
		end := start + BulkInsertChunkSize
		if end > len(orders) {
			end = len(orders)
		}

		n, err := r.insertChunk(ctx, orders[start:end])
		if err != nil {
			logrus.Errorf("❌ BulkInsert: Error inserting rows %d-%d: %v", start, end, err)
			return inserted, fmt.Errorf("failed to insert imported orders %d-%d: %w", start, end, err)
		}
		inserted += n
		logrus.Debugf("💾 BulkInsert: Inserted rows %d-%d", start, end)
	}

	logrus.Infof("✅ BulkInsert: Successfully staged %d imported orders", inserted)
	return inserted, nil
}

func (r *StagingOrderRepository) insertChunk(ctx context.Context, chunk []models.StagingOrder) (int, error) {
	const columnsPerRow = 8

	var (
		placeholders []string
		args         []interface{}
	)
	for i, order := range chunk {
		rawItems, err := json.Marshal(nonNilStrings(order.Items))
		if err != nil {
			return 0, fmt.Errorf("failed to encode raw items: %w", err)
		}
		parsedItems, err := json.Marshal(nonNilItems(order.ParsedItems))
		if err != nil {
			return 0, fmt.Errorf("failed to encode parsed items: %w", err)
		}

		base := i * columnsPerRow
		placeholders = append(placeholders, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, 'pending')",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8))
		args = append(args,
			sql.NullString{String: order.RawHeader, Valid: order.RawHeader != ""},
			order.CustomerName,
			sql.NullString{String: order.Phone, Valid: order.Phone != ""},
			order.School,
			string(order.PaymentStatus),
			order.OriginalText(),
			string(rawItems),
			string(parsedItems),
		)
	}

	query := `
		INSERT INTO imported_orders (raw_header, customer_name, phone, school, payment_status, original_text, raw_items, parsed_items, status)
		VALUES ` + strings.Join(placeholders, ", ")

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return len(chunk), nil
	}
	return int(affected), nil
}

// ListPending returns the pending queue, oldest first
func (r *StagingOrderRepository) ListPending(ctx context.Context) ([]models.StagingOrder, error) {
	logrus.Debug("📦 ListPending: Fetching pending imported orders")

	query := `SELECT ` + stagingOrderColumns + `
		FROM imported_orders
		WHERE status = 'pending'
		ORDER BY created_at ASC`

	rows, err := r.conn.QueryContext(ctx, query)
	if err != nil {
		logrus.Errorf("❌ ListPending: Error querying imported orders: %v", err)
		return nil, fmt.Errorf("failed to query imported orders: %w", err)
	}
	defer rows.Close()

	orders := []models.StagingOrder{}
	for rows.Next() {
		order, err := scanStagingOrder(rows)
		if err != nil {
			logrus.Errorf("❌ ListPending: Error scanning imported order: %v", err)
			return nil, fmt.Errorf("failed to scan imported order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate imported orders: %w", err)
	}

	logrus.Debugf("✅ ListPending: Found %d pending imported orders", len(orders))
	return orders, nil
}

// GetByID retrieves one staging row
func (r *StagingOrderRepository) GetByID(ctx context.Context, id string) (*models.StagingOrder, error) {
	query := `SELECT ` + stagingOrderColumns + `
		FROM imported_orders
		WHERE id = $1`

	order, err := scanStagingOrder(r.conn.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStagingOrderNotFound
		}
		logrus.Errorf("❌ GetByID: Error fetching imported order id=%s: %v", id, err)
		return nil, fmt.Errorf("failed to fetch imported order: %w", err)
	}
	return order, nil
}

// Update saves the reviewer's corrections. Only pending rows can change.
func (r *StagingOrderRepository) Update(ctx context.Context, id string, req *models.UpdateStagingOrderRequest) (*models.StagingOrder, error) {
	logrus.WithField("id", id).Info("📝 Update: Updating imported order")

	parsedItems, err := json.Marshal(nonNilItems(req.ParsedItems))
	if err != nil {
		return nil, fmt.Errorf("failed to encode parsed items: %w", err)
	}

	query := `
		UPDATE imported_orders
		SET school = $1, customer_name = $2, phone = $3, payment_status = $4, parsed_items = $5
		WHERE id = $6 AND status = 'pending'
		RETURNING ` + stagingOrderColumns

	order, err := scanStagingOrder(r.conn.QueryRowContext(ctx, query,
		strings.TrimSpace(req.School),
		strings.TrimSpace(req.CustomerName),
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		req.PaymentStatus,
		string(parsedItems),
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, r.explainMissedUpdate(ctx, id)
		}
		logrus.Errorf("❌ Update: Error updating imported order id=%s: %v", id, err)
		return nil, fmt.Errorf("failed to update imported order: %w", err)
	}

	logrus.WithField("id", id).Info("✅ Update: Imported order updated")
	return order, nil
}

// SetStatus closes a pending row as approved or ignored
func (r *StagingOrderRepository) SetStatus(ctx context.Context, id string, status models.ImportStatus) error {
	if status != models.ImportApproved && status != models.ImportIgnored {
		return ErrInvalidImportStatus
	}

	query := `UPDATE imported_orders SET status = $1 WHERE id = $2 AND status = 'pending'`
	result, err := r.conn.ExecContext(ctx, query, string(status), id)
	if err != nil {
		logrus.Errorf("❌ SetStatus: Error setting status=%s on imported order id=%s: %v", status, id, err)
		return fmt.Errorf("failed to update imported order status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return r.explainMissedUpdate(ctx, id)
	}

	logrus.WithFields(logrus.Fields{"id": id, "status": status}).Info("✅ SetStatus: Imported order closed")
	return nil
}

// explainMissedUpdate tells a missing row apart from one that already left pending
func (r *StagingOrderRepository) explainMissedUpdate(ctx context.Context, id string) error {
	var status string
	err := r.conn.QueryRowContext(ctx, `SELECT status FROM imported_orders WHERE id = $1`, id).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrStagingOrderNotFound
		}
		return fmt.Errorf("failed to fetch imported order status: %w", err)
	}
	return fmt.Errorf("%w (status=%s)", ErrStagingOrderNotPending, status)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanStagingOrder(row rowScanner) (*models.StagingOrder, error) {
	var (
		order                 models.StagingOrder
		paymentStatus, status string
		originalText          string
		rawItems, parsedItems []byte
	)

	err := row.Scan(
		&order.ID,
		&order.RawHeader,
		&order.CustomerName,
		&order.Phone,
		&order.School,
		&paymentStatus,
		&originalText,
		&rawItems,
		&parsedItems,
		&status,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	order.PaymentStatus = models.PaymentStatus(paymentStatus)
	order.Status = models.ImportStatus(status)
	order.RawLines = []string{}
	if originalText != "" {
		order.RawLines = strings.Split(originalText, "\n")
	}

	order.Items = []string{}
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode raw items: %w", err)
		}
	}
	order.ParsedItems = []models.ParsedItem{}
	if len(parsedItems) > 0 {
		if err := json.Unmarshal(parsedItems, &order.ParsedItems); err != nil {
			return nil, fmt.Errorf("failed to decode parsed items: %w", err)
		}
	}
	return &order, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilItems(items []models.ParsedItem) []models.ParsedItem {
	if items == nil {
		return []models.ParsedItem{}
	}
	return items
}
