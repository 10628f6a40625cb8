package repository

import (
	"context"
	"time"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
)

// TransactionFilter narrows List results. Zero values mean "no filter".
type TransactionFilter struct {
	Month      time.Time // any day inside the wanted month
	CategoryID string
	Type       entity.TransactionType
	Limit      int
}

type TransactionRepository interface {
	Create(ctx context.Context, t *entity.Transaction) error
	GetByID(ctx context.Context, userID, id string) (*entity.Transaction, error)
	List(ctx context.Context, userID string, f TransactionFilter) ([]*entity.Transaction, error)
	Update(ctx context.Context, t *entity.Transaction) error
	Delete(ctx context.Context, userID, id string) error

	// SumByType returns income and expense totals for the month.
	SumByType(ctx context.Context, userID string, month time.Time) (income, expense int64, err error)
	// ExpenseByCategory returns expense totals per category name for the month.
	ExpenseByCategory(ctx context.Context, userID string, month time.Time) (map[string]int64, error)
}
