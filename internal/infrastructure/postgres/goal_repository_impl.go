package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
)

type GoalRepository struct {
	db DB
}

func NewGoalRepository(db DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, g *entity.Goal) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO goals (user_id, name, label, target_cents, saved_cents, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, g.UserID, g.Name, g.Label, g.TargetCents, g.SavedCents, g.Deadline)

	return row.Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (r *GoalRepository) GetByID(ctx context.Context, userID, id string) (*entity.Goal, error) {
	g := &entity.Goal{}
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, name, label, target_cents, saved_cents, deadline, created_at, updated_at
		FROM goals
		WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Label, &g.TargetCents,
		&g.SavedCents, &g.Deadline, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *GoalRepository) List(ctx context.Context, userID string) ([]*entity.Goal, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, name, label, target_cents, saved_cents, deadline, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY deadline
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Goal
	for rows.Next() {
		g := &entity.Goal{}
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.Label, &g.TargetCents,
			&g.SavedCents, &g.Deadline, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GoalRepository) Update(ctx context.Context, g *entity.Goal) error {
	g.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE goals
		SET name = $1, label = $2, target_cents = $3, saved_cents = $4, deadline = $5, updated_at = $6
		WHERE user_id = $7 AND id = $8
	`, g.Name, g.Label, g.TargetCents, g.SavedCents, g.Deadline, g.UpdatedAt, g.UserID, g.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *GoalRepository) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.GoalRepository = (*GoalRepository)(nil)
