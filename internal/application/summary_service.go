package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	repo "github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
)

// Overview is the dashboard payload: month totals, where the money went,
// and how the goals are tracking.
type Overview struct {
	Month             string           `json:"month"` // YYYY-MM
	IncomeCents       int64            `json:"income_cents"`
	ExpenseCents      int64            `json:"expense_cents"`
	BalanceCents      int64            `json:"balance_cents"`
	ExpenseByCategory map[string]int64 `json:"expense_by_category"`
	Goals             []GoalProgress   `json:"goals"`
}

type GoalProgress struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TargetCents int64  `json:"target_cents"`
	SavedCents  int64  `json:"saved_cents"`
	Progress    int    `json:"progress"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

// SummaryService computes the overview and keeps a short-lived Redis cache
// in front of it. Mutating services bump a per-user version counter instead
// of enumerating cached months.
type SummaryService struct {
	Transactions repo.TransactionRepository
	Goals        repo.GoalRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	CacheTTL     time.Duration
}

func NewSummaryService(tr repo.TransactionRepository, gr repo.GoalRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *SummaryService {
	return &SummaryService{Transactions: tr, Goals: gr, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

func summaryVersionKey(userID string) string {
	return "summary:ver:" + userID
}

// invalidateSummary bumps the user's summary version so every cached
// overview for that user goes stale at once. Best effort.
func invalidateSummary(ctx context.Context, rdb *redis.Client, logger *logrus.Logger, userID string) {
	if rdb == nil {
		return
	}
	if err := rdb.Incr(ctx, summaryVersionKey(userID)).Err(); err != nil && logger != nil {
		logger.WithError(err).WithField("user_id", userID).Warn("summary invalidation failed")
	}
}

func (s *SummaryService) cacheKey(ctx context.Context, userID string, month time.Time) string {
	ver := int64(0)
	if s.Redis != nil {
		if v, err := s.Redis.Get(ctx, summaryVersionKey(userID)).Int64(); err == nil {
			ver = v
		}
	}
	return fmt.Sprintf("summary:%s:%s:v%d", userID, month.Format("2006-01"), ver)
}

// Overview returns the dashboard summary for the month, served from cache
// when a fresh copy exists.
func (s *SummaryService) Overview(ctx context.Context, userID string, month time.Time) (*Overview, error) {
	key := s.cacheKey(ctx, userID, month)
	if s.Redis != nil {
		var cached Overview
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, key, &cached); err == nil && ok {
			return &cached, nil
		}
	}

	income, expense, err := s.Transactions.SumByType(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	byCategory, err := s.Transactions.ExpenseByCategory(ctx, userID, month)
	if err != nil {
		return nil, err
	}
	goals, err := s.Goals.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	ov := &Overview{
		Month:             month.Format("2006-01"),
		IncomeCents:       income,
		ExpenseCents:      expense,
		BalanceCents:      income - expense,
		ExpenseByCategory: byCategory,
		Goals:             make([]GoalProgress, 0, len(goals)),
	}
	for _, g := range goals {
		ov.Goals = append(ov.Goals, GoalProgress{
			ID:          g.ID,
			Name:        g.Name,
			TargetCents: g.TargetCents,
			SavedCents:  g.SavedCents,
			Progress:    g.Progress(),
			Deadline:    g.Deadline.Format("2006-01-02"),
		})
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, key, ov, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("summary cache write failed")
		}
	}
	return ov, nil
}
