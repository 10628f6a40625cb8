package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
)

func newTransactionRepoMock(t *testing.T) (*TransactionRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(mock.Close)
	return NewTransactionRepository(mock), mock
}

func TestTransactionRepository_List_AppliesFilters(t *testing.T) {
	repo, mock := newTransactionRepoMock(t)

	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Now()
	rows := pgxmock.NewRows([]string{
		"id", "user_id", "description", "category_id", "type",
		"amount_cents", "occurred_on", "created_at", "updated_at",
	}).AddRow("t-1", "u-1", "Weekly shop", "c-1", entity.TransactionExpense, int64(6200), month.AddDate(0, 0, 13), now, now)

	// Filter arguments keep their positional order: user, month, type, limit.
	mock.ExpectQuery(`SELECT .+ FROM transactions WHERE user_id = \$1 AND date_trunc\('month', occurred_on\) = date_trunc\('month', \$2::date\) AND type = \$3 ORDER BY occurred_on DESC, created_at DESC LIMIT \$4`).
		WithArgs("u-1", month, entity.TransactionExpense, 10).
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), "u-1", repository.TransactionFilter{
		Month: month,
		Type:  entity.TransactionExpense,
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Weekly shop", got[0].Description)
	assert.Equal(t, entity.TransactionExpense, got[0].Type)
	assert.Equal(t, int64(6200), got[0].AmountCents)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_SumByType(t *testing.T) {
	repo, mock := newTransactionRepoMock(t)

	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"income", "expense"}).AddRow(int64(850000), int64(308000))
	mock.ExpectQuery(`SELECT\s+COALESCE\(SUM\(amount_cents\) FILTER \(WHERE type = 'income'\), 0\)`).
		WithArgs("u-1", month).
		WillReturnRows(rows)

	income, expense, err := repo.SumByType(context.Background(), "u-1", month)
	require.NoError(t, err)
	assert.Equal(t, int64(850000), income)
	assert.Equal(t, int64(308000), expense)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_ExpenseByCategory(t *testing.T) {
	repo, mock := newTransactionRepoMock(t)

	month := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"name", "total"}).
		AddRow("Groceries", int64(62000)).
		AddRow("Rent", int64(215000))
	mock.ExpectQuery(`SELECT c\.name, COALESCE\(SUM\(t\.amount_cents\), 0\)`).
		WithArgs("u-1", month).
		WillReturnRows(rows)

	got, err := repo.ExpenseByCategory(context.Background(), "u-1", month)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Groceries": 62000, "Rent": 215000}, got)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_Delete_Missing(t *testing.T) {
	repo, mock := newTransactionRepoMock(t)

	mock.ExpectExec(`DELETE FROM transactions WHERE user_id = \$1 AND id = \$2`).
		WithArgs("u-1", "t-404").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "u-1", "t-404")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
