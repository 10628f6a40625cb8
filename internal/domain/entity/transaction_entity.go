package entity

import "time"

// TransactionType splits money movements the way the ledger displays them.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Transaction is a single ledger entry owned by one user.
// Amounts are stored in cents; the sign is carried by Type.
type Transaction struct {
	ID          string
	UserID      string
	Description string
	CategoryID  string
	Type        TransactionType
	AmountCents int64
	OccurredOn  time.Time // date precision
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
