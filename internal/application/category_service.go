package application

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	repo "github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

type CategoryService struct {
	Repo   repo.CategoryRepository
	Redis  *redis.Client
	Logger *logrus.Logger

	validate *validator.Validate
}

func NewCategoryService(r repo.CategoryRepository, rdb *redis.Client, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Repo: r, Redis: rdb, Logger: logger, validate: validation.New()}
}

type CategoryInput struct {
	Name string `json:"name" validate:"required,min=1"`
	Icon string `json:"icon" validate:"required,oneof=home market work transport coffee energy gift savings bookmark"`
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]*entity.Category, error) {
	return s.Repo.List(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID string, in CategoryInput) (*entity.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	c := &entity.Category{UserID: userID, Name: in.Name, Icon: in.Icon}
	if err := s.Repo.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			return nil, ErrCategoryNameTaken
		}
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, in CategoryInput) (*entity.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	c, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	c.Name = in.Name
	c.Icon = in.Icon
	if err := s.Repo.Update(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicateName) {
			return nil, ErrCategoryNameTaken
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	invalidateSummary(ctx, s.Redis, s.Logger, userID)
	return nil
}
