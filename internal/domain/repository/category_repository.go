package repository

import (
	"context"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, userID, id string) (*entity.Category, error)
	List(ctx context.Context, userID string) ([]*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, userID, id string) error
}
