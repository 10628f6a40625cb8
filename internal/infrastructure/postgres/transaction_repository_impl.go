package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
)

type TransactionRepository struct {
	db DB
}

func NewTransactionRepository(db DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, description, category_id, type, amount_cents, occurred_on, created_at, updated_at`

func (r *TransactionRepository) Create(ctx context.Context, t *entity.Transaction) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO transactions (user_id, description, category_id, type, amount_cents, occurred_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, t.UserID, t.Description, t.CategoryID, t.Type, t.AmountCents, t.OccurredOn)

	return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TransactionRepository) GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1 AND id = $2
	`, userID, id)

	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TransactionRepository) List(ctx context.Context, userID string, f repository.TransactionFilter) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	if !f.Month.IsZero() {
		args = append(args, f.Month)
		query += fmt.Sprintf(" AND date_trunc('month', occurred_on) = date_trunc('month', $%d::date)", len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		query += fmt.Sprintf(" AND category_id = $%d", len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	query += " ORDER BY occurred_on DESC, created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepository) Update(ctx context.Context, t *entity.Transaction) error {
	t.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE transactions
		SET description = $1, category_id = $2, type = $3, amount_cents = $4, occurred_on = $5, updated_at = $6
		WHERE user_id = $7 AND id = $8
	`, t.Description, t.CategoryID, t.Type, t.AmountCents, t.OccurredOn, t.UpdatedAt, t.UserID, t.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM transactions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) SumByType(ctx context.Context, userID string, month time.Time) (int64, int64, error) {
	var income, expense int64
	row := r.db.QueryRow(ctx, `
		SELECT
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'income'), 0),
			COALESCE(SUM(amount_cents) FILTER (WHERE type = 'expense'), 0)
		FROM transactions
		WHERE user_id = $1 AND date_trunc('month', occurred_on) = date_trunc('month', $2::date)
	`, userID, month)
	if err := row.Scan(&income, &expense); err != nil {
		return 0, 0, err
	}
	return income, expense, nil
}

func (r *TransactionRepository) ExpenseByCategory(ctx context.Context, userID string, month time.Time) (map[string]int64, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.name, COALESCE(SUM(t.amount_cents), 0)
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1
		  AND t.type = 'expense'
		  AND date_trunc('month', t.occurred_on) = date_trunc('month', $2::date)
		GROUP BY c.name
	`, userID, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int64{}
	for rows.Next() {
		var name string
		var total int64
		if err := rows.Scan(&name, &total); err != nil {
			return nil, err
		}
		out[name] = total
	}
	return out, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.Transaction, error) {
	t := &entity.Transaction{}
	err := row.Scan(&t.ID, &t.UserID, &t.Description, &t.CategoryID, &t.Type,
		&t.AmountCents, &t.OccurredOn, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return t, nil
}

var _ repository.TransactionRepository = (*TransactionRepository)(nil)
