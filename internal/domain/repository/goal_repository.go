package repository

import (
	"context"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
)

type GoalRepository interface {
	Create(ctx context.Context, g *entity.Goal) error
	GetByID(ctx context.Context, userID, id string) (*entity.Goal, error)
	List(ctx context.Context, userID string) ([]*entity.Goal, error)
	Update(ctx context.Context, g *entity.Goal) error
	Delete(ctx context.Context, userID, id string) error
}
