package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"crescer-uniformes/models"
)

// CustomerRepository handles database operations for customers
type CustomerRepository struct {
	conn *sql.DB
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(conn *sql.DB) *CustomerRepository {
	return &CustomerRepository{conn: conn}
}

// Ensure CustomerRepository implements CustomerRepositoryInterface
var _ CustomerRepositoryInterface = (*CustomerRepository)(nil)

// FindByPhone returns the oldest customer whose phone has exactly these digits.
// Stored phones may carry punctuation, so they are compared digits-only.
// Returns nil when nobody matches.
func (r *CustomerRepository) FindByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(school, ''), created_at
		FROM customers
		WHERE regexp_replace(COALESCE(phone, ''), '\D', '', 'g') = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.findOne(ctx, "FindByPhone", query, phone)
}

// FindByName returns the oldest customer with the same name, ignoring case.
// Returns nil when nobody matches.
func (r *CustomerRepository) FindByName(ctx context.Context, name string) (*models.Customer, error) {
	query := `
		SELECT id, name, COALESCE(phone, ''), COALESCE(school, ''), created_at
		FROM customers
		WHERE lower(name) = lower($1)
		ORDER BY created_at ASC
		LIMIT 1
	`
	return r.findOne(ctx, "FindByName", query, strings.TrimSpace(name))
}

func (r *CustomerRepository) findOne(ctx context.Context, op, query string, arg string) (*models.Customer, error) {
	var customer models.Customer
	err := r.conn.QueryRowContext(ctx, query, arg).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.School,
		&customer.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logrus.Debugf("🔍 %s: No customer matches %q", op, arg)
			return nil, nil
		}
		logrus.Errorf("❌ %s: Error looking up customer: %v", op, err)
		return nil, fmt.Errorf("failed to look up customer: %w", err)
	}

	logrus.Debugf("🔍 %s: Found customer id=%s", op, customer.ID)
	return &customer, nil
}

// Create inserts a new customer
func (r *CustomerRepository) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("customer name cannot be empty")
	}

	query := `
		INSERT INTO customers (name, phone, school)
		VALUES ($1, $2, $3)
		RETURNING id, name, COALESCE(phone, ''), COALESCE(school, ''), created_at
	`

	var customer models.Customer
	err := r.conn.QueryRowContext(ctx, query,
		name,
		sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		sql.NullString{String: req.School, Valid: req.School != ""},
	).Scan(
		&customer.ID,
		&customer.Name,
		&customer.Phone,
		&customer.School,
		&customer.CreatedAt,
	)
	if err != nil {
		logrus.Errorf("❌ CreateCustomer: Error inserting customer: %v", err)
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logrus.WithField("id", customer.ID).Info("✅ CreateCustomer: Customer created")
	return &customer, nil
}
