package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
)

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO categories (user_id, name, icon)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, c.UserID, c.Name, c.Icon)

	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return translateUnique(err, repository.ErrDuplicateName)
	}
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, userID, id string) (*entity.Category, error) {
	c := &entity.Category{}
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, icon, created_at, updated_at
		FROM categories
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, userID string) ([]*entity.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, icon, created_at, updated_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		c := &entity.Category{}
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Icon, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	c.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = $1, icon = $2, updated_at = $3
		WHERE user_id = $4 AND id = $5
	`, c.Name, c.Icon, c.UpdatedAt, c.UserID, c.ID)
	if err != nil {
		return translateUnique(err, repository.ErrDuplicateName)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM categories WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)
