package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	repo "github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

type GoalService struct {
	Repo   repo.GoalRepository
	Redis  *redis.Client
	Logger *logrus.Logger

	validate *validator.Validate
}

func NewGoalService(r repo.GoalRepository, rdb *redis.Client, logger *logrus.Logger) *GoalService {
	return &GoalService{Repo: r, Redis: rdb, Logger: logger, validate: validation.New()}
}

type GoalInput struct {
	Name        string    `json:"name" validate:"required,min=1"`
	Label       string    `json:"label" validate:"omitempty,min=1"`
	TargetCents int64     `json:"target_cents" validate:"required,gt=0"`
	SavedCents  int64     `json:"saved_cents" validate:"gte=0"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

func (s *GoalService) List(ctx context.Context, userID string) ([]*entity.Goal, error) {
	return s.Repo.List(ctx, userID)
}

func (s *GoalService) Create(ctx context.Context, userID string, in GoalInput) (*entity.Goal, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Label = strings.TrimSpace(in.Label)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	g := &entity.Goal{
		UserID:      userID,
		Name:        in.Name,
		Label:       in.Label,
		TargetCents: in.TargetCents,
		SavedCents:  in.SavedCents,
		Deadline:    in.Deadline,
	}
	if err := s.Repo.Create(ctx, g); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return g, nil
}

func (s *GoalService) Update(ctx context.Context, userID, id string, in GoalInput) (*entity.Goal, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Label = strings.TrimSpace(in.Label)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	g, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	g.Name = in.Name
	g.Label = in.Label
	g.TargetCents = in.TargetCents
	g.SavedCents = in.SavedCents
	g.Deadline = in.Deadline
	if err := s.Repo.Update(ctx, g); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return g, nil
}

// AddSavings increments the saved amount, the common path from the goals page.
func (s *GoalService) AddSavings(ctx context.Context, userID, id string, amountCents int64) (*entity.Goal, error) {
	if amountCents <= 0 {
		return nil, &validation.Error{Fields: map[string]string{"amount_cents": "must be greater than 0"}}
	}
	g, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, err
	}
	g.SavedCents += amountCents
	if err := s.Repo.Update(ctx, g); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrGoalNotFound
		}
		return err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return nil
}
