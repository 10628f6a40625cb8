package repository

import (
	"context"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
)

// UserRepository defines the interface for user persistence.
// Create relies on the storage engine's unique index on email: concurrent
// inserts of the same address race at the database and exactly one wins,
// the loser surfaces ErrDuplicateEmail. There is deliberately no
// lookup-before-insert here.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
