package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crescer-uniformes/models"
)

var stagingColumns = []string{
	"id", "raw_header", "customer_name", "phone", "school", "payment_status",
	"original_text", "raw_items", "parsed_items", "status", "created_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, mock
}

func stagingBatch(n int) []models.StagingOrder {
	orders := make([]models.StagingOrder, n)
	for i := range orders {
		orders[i] = models.StagingOrder{
			School:        "TRINUM",
			CustomerName:  "Maria",
			PaymentStatus: models.PaymentPending,
			ParsedItems:   []models.ParsedItem{{Quantity: 1, Product: "polo", Size: "6"}},
		}
	}
	return orders
}

func TestStagingOrderRepository_BulkInsertChunks(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	mock.ExpectExec("INSERT INTO imported_orders").WillReturnResult(sqlmock.NewResult(0, 20))
	mock.ExpectExec("INSERT INTO imported_orders").WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.BulkInsert(context.Background(), stagingBatch(25))
	require.NoError(t, err)
	assert.Equal(t, 25, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_BulkInsertStopsAtFailedChunk(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	mock.ExpectExec("INSERT INTO imported_orders").WillReturnResult(sqlmock.NewResult(0, 20))
	mock.ExpectExec("INSERT INTO imported_orders").WillReturnError(errors.New("connection reset"))

	n, err := repo.BulkInsert(context.Background(), stagingBatch(45))
	require.Error(t, err)
	assert.Equal(t, 20, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_BulkInsertEmpty(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	n, err := repo.BulkInsert(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_ListPending(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	rows := sqlmock.NewRows(stagingColumns).
		AddRow("a1", "TRINUM - pago", "Maria", "9899999999", "TRINUM", "Pago Total",
			"Maria 98 99999999\n2 vestidos tam 4", []byte(`["2 vestidos tam 4"]`),
			[]byte(`[{"quantity":2,"product":"vestidos","size":"4"}]`), "pending", "2026-10-15T10:00:00Z").
		AddRow("a2", "", "Cliente Desconhecido", "", "UNKNOWN", "Pendente",
			"", []byte(`[]`), []byte(`[]`), "pending", "2026-10-15T10:00:01Z")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'pending'")).WillReturnRows(rows)

	orders, err := repo.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Equal(t, "a1", orders[0].ID)
	assert.Equal(t, models.PaymentPaidInFull, orders[0].PaymentStatus)
	assert.Equal(t, []string{"Maria 98 99999999", "2 vestidos tam 4"}, orders[0].RawLines)
	assert.Equal(t, []string{"2 vestidos tam 4"}, orders[0].Items)
	assert.Equal(t, []models.ParsedItem{{Quantity: 2, Product: "vestidos", Size: "4"}}, orders[0].ParsedItems)
	assert.Equal(t, models.ImportPending, orders[0].Status)

	assert.Empty(t, orders[1].RawLines)
	assert.Empty(t, orders[1].ParsedItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_GetByIDNotFound(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("FROM imported_orders")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(stagingColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrStagingOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_UpdateRejectsClosedRow(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE imported_orders")).
		WillReturnRows(sqlmock.NewRows(stagingColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM imported_orders WHERE id = $1")).
		WithArgs("a1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("approved"))

	_, err := repo.Update(context.Background(), "a1", &models.UpdateStagingOrderRequest{
		School:       "TRINUM",
		CustomerName: "Maria",
	})
	assert.ErrorIs(t, err, ErrStagingOrderNotPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_Update(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	rows := sqlmock.NewRows(stagingColumns).
		AddRow("a1", "TRINUM", "Maria Souza", "98999999999", "AUDAZ", "Parcial",
			"Maria", []byte(`[]`), []byte(`[{"quantity":3,"product":"polo","size":"8"}]`), "pending", "2026-10-15T10:00:00Z")
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE imported_orders")).
		WithArgs("AUDAZ", "Maria Souza", sqlmock.AnyArg(), "Parcial", `[{"quantity":3,"product":"polo","size":"8"}]`, "a1").
		WillReturnRows(rows)

	order, err := repo.Update(context.Background(), "a1", &models.UpdateStagingOrderRequest{
		School:        " AUDAZ ",
		CustomerName:  "Maria Souza",
		Phone:         "98999999999",
		PaymentStatus: "Parcial",
		ParsedItems:   []models.ParsedItem{{Quantity: 3, Product: "polo", Size: "8"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "AUDAZ", order.School)
	assert.Equal(t, models.PaymentPartial, order.PaymentStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_SetStatus(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE imported_orders SET status = $1 WHERE id = $2 AND status = 'pending'")).
		WithArgs("ignored", "a1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SetStatus(context.Background(), "a1", models.ImportIgnored))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_SetStatusMissingRow(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE imported_orders SET status")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT status FROM imported_orders")).
		WillReturnRows(sqlmock.NewRows([]string{"status"}))

	err := repo.SetStatus(context.Background(), "gone", models.ImportApproved)
	assert.ErrorIs(t, err, ErrStagingOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStagingOrderRepository_SetStatusRejectsPending(t *testing.T) {
	conn, mock := newMock(t)
	repo := NewStagingOrderRepository(conn)

	err := repo.SetStatus(context.Background(), "a1", models.ImportPending)
	assert.ErrorIs(t, err, ErrInvalidImportStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRenderInsertScript(t *testing.T) {
	script, err := RenderInsertScript([]models.StagingOrder{
		{
			School:        "TRINUM",
			CustomerName:  "Maria D'Ávila",
			PaymentStatus: models.PaymentPaidInFull,
			RawLines:      []string{"Maria D'Ávila"},
		},
		{School: "UNKNOWN", CustomerName: models.UnknownCustomer, PaymentStatus: models.PaymentPending},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(script), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "'Maria D''Ávila'")
	assert.Contains(t, lines[0], "'Pago Total'")
	assert.Contains(t, lines[0], "VALUES (NULL, ")
	assert.Contains(t, lines[1], "'[]', '[]', 'pending');")
}
