package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crescer-uniformes/models"
)

var customerColumns = []string{"id", "name", "phone", "school", "created_at"}

func TestCustomerRepository_FindByPhone(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewCustomerRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("regexp_replace(COALESCE(phone, ''), '\\D', '', 'g') = $1")).
		WithArgs("98999999999").
		WillReturnRows(sqlmock.NewRows(customerColumns).
			AddRow("c1", "Maria", "(98) 99999-9999", "TRINUM", "2026-01-02T00:00:00Z"))

	customer, err := repo.FindByPhone(context.Background(), "98999999999")
	require.NoError(t, err)
	require.NotNil(t, customer)
	assert.Equal(t, "c1", customer.ID)
	assert.Equal(t, "(98) 99999-9999", customer.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_FindByNameNoMatch(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewCustomerRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE lower(name) = lower($1)")).
		WithArgs("Joana").
		WillReturnRows(sqlmock.NewRows(customerColumns))

	customer, err := repo.FindByName(context.Background(), "  Joana ")
	require.NoError(t, err)
	assert.Nil(t, customer)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_FindByNameQueryError(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewCustomerRepository(conn)

	mock.ExpectQuery("FROM customers").WillReturnError(errors.New("timeout"))

	customer, err := repo.FindByName(context.Background(), "Joana")
	require.Error(t, err)
	assert.Nil(t, customer)
}

func TestCustomerRepository_Create(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewCustomerRepository(conn)

	mock.ExpectQuery("INSERT INTO customers").
		WithArgs("Maria", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(customerColumns).
			AddRow("c9", "Maria", "98999999999", "TRINUM", "2026-10-15T00:00:00Z"))

	customer, err := repo.Create(context.Background(), &models.CreateCustomerRequest{
		Name:   " Maria ",
		Phone:  "98999999999",
		School: "TRINUM",
	})
	require.NoError(t, err)
	assert.Equal(t, "c9", customer.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_CreateRequiresName(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewCustomerRepository(conn)

	_, err := repo.Create(context.Background(), &models.CreateCustomerRequest{Name: "   "})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
