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

type TransactionService struct {
	Repo       repo.TransactionRepository
	Categories repo.CategoryRepository
	Redis      *redis.Client
	Logger     *logrus.Logger

	validate *validator.Validate
}

func NewTransactionService(r repo.TransactionRepository, cr repo.CategoryRepository, rdb *redis.Client, logger *logrus.Logger) *TransactionService {
	return &TransactionService{Repo: r, Categories: cr, Redis: rdb, Logger: logger, validate: validation.New()}
}

type TransactionInput struct {
	Description string    `json:"description" validate:"required,min=1"`
	CategoryID  string    `json:"category_id" validate:"required,uuid"`
	Type        string    `json:"type" validate:"required,oneof=income expense"`
	AmountCents int64     `json:"amount_cents" validate:"required,gt=0"`
	OccurredOn  time.Time `json:"occurred_on" validate:"required"`
}

// ListFilter mirrors the dashboard table filters.
type ListFilter struct {
	Month      time.Time
	CategoryID string
	Type       string
	Limit      int
}

func (s *TransactionService) List(ctx context.Context, userID string, f ListFilter) ([]*entity.Transaction, error) {
	return s.Repo.List(ctx, userID, repo.TransactionFilter{
		Month:      f.Month,
		CategoryID: f.CategoryID,
		Type:       entity.TransactionType(f.Type),
		Limit:      f.Limit,
	})
}

// ownCategory ensures the referenced category exists and belongs to the user.
// The FK only guarantees existence.
func (s *TransactionService) ownCategory(ctx context.Context, userID, categoryID string) error {
	_, err := s.Categories.GetByID(ctx, userID, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCategoryNotFound
	}
	return err
}

func (s *TransactionService) Create(ctx context.Context, userID string, in TransactionInput) (*entity.Transaction, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}
	if err := s.ownCategory(ctx, userID, in.CategoryID); err != nil {
		return nil, err
	}

	t := &entity.Transaction{
		UserID:      userID,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		Type:        entity.TransactionType(in.Type),
		AmountCents: in.AmountCents,
		OccurredOn:  in.OccurredOn,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return t, nil
}

func (s *TransactionService) Update(ctx context.Context, userID, id string, in TransactionInput) (*entity.Transaction, error) {
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}
	if err := s.ownCategory(ctx, userID, in.CategoryID); err != nil {
		return nil, err
	}

	t, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	t.Description = in.Description
	t.CategoryID = in.CategoryID
	t.Type = entity.TransactionType(in.Type)
	t.AmountCents = in.AmountCents
	t.OccurredOn = in.OccurredOn
	if err := s.Repo.Update(ctx, t); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return nil
}
