package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	repo "github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
	"github.com/CaioSouzalimaa/clearbalance/pkg/mailer"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

// PasswordHasher is the one-way adaptive hash collaborator.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// Identity is the projection of a user that is safe to hand to callers.
// It never carries password material.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// AuthService owns registration and credential validation, and composes
// the session side (JWT pair + Redis session hash) the way login needs it.
type AuthService struct {
	Repo   repo.UserRepository
	Hasher PasswordHasher
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Logger *logrus.Logger
	Pub    *helpers.RabbitPublisher

	MailEnabled bool

	validate *validator.Validate
}

func NewAuthService(r repo.UserRepository, hasher PasswordHasher, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, pub *helpers.RabbitPublisher, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:        r,
		Hasher:      hasher,
		JWT:         jwt,
		Redis:       rdb,
		Logger:      logger,
		Pub:         pub,
		MailEnabled: mailEnabled,
		validate:    validation.New(),
	}
}

type RegisterInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     *string `json:"name" validate:"omitnil,min=1"`
}

type credentialsInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func sessionKey(userID string) string {
	return "user:session:" + userID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Register validates, hashes and inserts exactly once. Shape problems fail
// before any hashing or I/O; the duplicate-email race is settled by the
// repository's unique constraint, not by a pre-check lookup.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*Identity, error) {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:        in.Email,
		PasswordHash: digest,
	}
	if in.Name != nil {
		u.Name = *in.Name
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.sendWelcome(ctx, u)

	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}

// sendWelcome enqueues the welcome email. Registration never fails or blocks
// on the mail pipeline.
func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if !s.MailEnabled || s.Pub == nil {
		return
	}
	job := mailer.NewWelcomeJob(u.Email, u.Name)
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
	}
}

// Authenticate validates email/password and returns the identity, or nil
// when there is no match. A missing user and a wrong password are the same
// non-exceptional outcome; only malformed input and infrastructure failures
// surface as errors.
//
// Unknown emails return before any hash comparison. That skips the cost of
// bcrypt but makes "no such user" observably faster than "wrong password".
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	in := credentialsInput{Email: email, Password: password}
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, nil
	}
	return &Identity{ID: u.ID, Email: u.Email, Name: u.Name}, nil
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

// IssueTokens generates an access/refresh pair and records the session in Redis.
func (s *AuthService) IssueTokens(ctx context.Context, id *Identity) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(id.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(id.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := sessionKey(id.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    id.ID,
			"email":      id.Email,
			"name":       id.Name,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Login composes Authenticate and IssueTokens.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Identity, TokenPair, error) {
	id, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	if id == nil {
		return nil, TokenPair{}, ErrInvalidCredentials
	}
	pair, err := s.IssueTokens(ctx, id)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return id, pair, nil
}

// Refresh rotates the session id and token pair when the refresh token is
// valid and still matches the recorded session.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	u, err := s.Repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, sessionKey(u.ID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}
	return s.IssueTokens(ctx, &Identity{ID: u.ID, Email: u.Email, Name: u.Name})
}

// Logout drops the recorded session.
func (s *AuthService) Logout(ctx context.Context, userID string) {
	if s.Redis == nil || userID == "" {
		return
	}
	if err := s.Redis.Del(ctx, sessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

// GetProfile returns the stored user for the dashboard header and settings page.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

type UpdateProfileInput struct {
	Name string `json:"name" validate:"required,min=1"`
}

// UpdateProfile changes the display name and refreshes the session hash so
// the header picks the new name up without re-login.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.validate.Struct(in); err != nil {
		return nil, validation.Wrap(err)
	}

	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Name = in.Name
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := sessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"name":       u.Name,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return u, nil
}
