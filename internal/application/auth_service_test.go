package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	repo "github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
	"github.com/CaioSouzalimaa/clearbalance/pkg/validation"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	byEmail map[string]*entity.User

	createCalls     int
	getByEmailCalls int

	createErr error
	getErr    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	stored := *u
	f.byEmail[u.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getByEmailCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, stored := range f.byEmail {
		if stored.ID == u.ID {
			*stored = *u
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeHasher struct {
	hashCalls   int
	verifyCalls int
	hashErr     error
}

func (h *fakeHasher) Hash(plain string) (string, error) {
	h.hashCalls++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "digest:" + plain, nil
}

func (h *fakeHasher) Verify(plain, digest string) bool {
	h.verifyCalls++
	return digest == "digest:"+plain
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAuthService(r repo.UserRepository, h PasswordHasher) *AuthService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	return NewAuthService(r, h, jwt, nil, testLogger(), nil, false)
}

func strPtr(s string) *string { return &s }

func TestRegister_Success(t *testing.T) {
	r := newFakeUserRepo()
	h := &fakeHasher{}
	svc := newTestAuthService(r, h)

	id, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "correct horse battery",
		Name:     strPtr("Alice"),
	})
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.NotEmpty(t, id.ID)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "Alice", id.Name)

	stored := r.byEmail["alice@example.com"]
	require.NotNil(t, stored)
	assert.Equal(t, "digest:correct horse battery", stored.PasswordHash)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, &fakeHasher{})

	in := RegisterInput{Email: "alice@example.com", Password: "password123"}
	_, err := svc.Register(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, 2, r.createCalls, "duplicate is settled by the repository, not a pre-check")
}

func TestRegister_ShortPassword_FailsBeforeSideEffects(t *testing.T) {
	r := newFakeUserRepo()
	h := &fakeHasher{}
	svc := newTestAuthService(r, h)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "short",
	})
	ve, ok := validation.IsError(err)
	require.True(t, ok, "want validation error, got %v", err)
	assert.Contains(t, ve.Fields, "password")

	assert.Zero(t, h.hashCalls, "must not hash an invalid password")
	assert.Zero(t, r.createCalls, "must not touch storage on invalid input")
}

func TestRegister_CollectsAllFieldErrors(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), &fakeHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "bad-email",
		Password: "short",
	})
	ve, ok := validation.IsError(err)
	require.True(t, ok, "want validation error, got %v", err)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
}

func TestRegister_NameOptional(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), &fakeHasher{})

	id, err := svc.Register(context.Background(), RegisterInput{
		Email:    "noname@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Empty(t, id.Name)

	// A present name must survive trimming. Whitespace-only is rejected.
	_, err = svc.Register(context.Background(), RegisterInput{
		Email:    "blank@example.com",
		Password: "password123",
		Name:     strPtr("   "),
	})
	ve, ok := validation.IsError(err)
	require.True(t, ok, "want validation error, got %v", err)
	assert.Contains(t, ve.Fields, "name")
}

func TestRegister_HasherFailure(t *testing.T) {
	r := newFakeUserRepo()
	h := &fakeHasher{hashErr: errors.New("cost out of range")}
	svc := newTestAuthService(r, h)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.Zero(t, r.createCalls)
}

func TestAuthenticate_RoundTrip(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, helpers.NewBcryptHasher(bcrypt.MinCost))

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
		Name:     strPtr("Alice"),
	})
	require.NoError(t, err)

	id, err := svc.Authenticate(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "alice@example.com", id.Email)
	assert.Equal(t, "Alice", id.Name)

	id, err = svc.Authenticate(context.Background(), "alice@example.com", "password124")
	require.NoError(t, err, "a wrong password is not an error")
	assert.Nil(t, id)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	h := &fakeHasher{}
	svc := newTestAuthService(newFakeUserRepo(), h)

	id, err := svc.Authenticate(context.Background(), "ghost@example.com", "whatever1")
	require.NoError(t, err, "an unknown email is not an error")
	assert.Nil(t, id)
	assert.Zero(t, h.verifyCalls, "unknown email returns before any hash comparison")
}

func TestAuthenticate_MalformedEmail(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, &fakeHasher{})

	_, err := svc.Authenticate(context.Background(), "not-an-email", "password123")
	_, ok := validation.IsError(err)
	assert.True(t, ok, "want validation error, got %v", err)
	assert.Zero(t, r.getByEmailCalls)
}

func TestAuthenticate_StorageFailure(t *testing.T) {
	r := newFakeUserRepo()
	r.getErr = errors.New("connection refused")
	svc := newTestAuthService(r, &fakeHasher{})

	id, err := svc.Authenticate(context.Background(), "alice@example.com", "password123")
	require.Error(t, err)
	assert.Nil(t, id)
	_, ok := validation.IsError(err)
	assert.False(t, ok, "infrastructure failures are not validation errors")
}

func TestIdentity_CarriesNoPasswordMaterial(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, &fakeHasher{})

	id, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	b, err := json.Marshal(id)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password123")
	assert.NotContains(t, string(b), "digest:")
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), &fakeHasher{})

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, &fakeHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	id, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)
	require.NotNil(t, id)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.RefreshTokenExpiry.After(pair.AccessTokenExpiry))

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.ID, claims.UserID)
	assert.NotEmpty(t, claims.SessionID)
}

func TestRefresh_RotatesPair(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, &fakeHasher{})

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	id, pair, err := svc.Login(context.Background(), "alice@example.com", "password123")
	require.NoError(t, err)

	next, err := svc.Refresh(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, next.AccessToken)

	claims, err := svc.JWT.ParseAccessToken(next.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id.ID, claims.UserID)

	old, err := svc.JWT.ParseRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, old.SessionID, claims.SessionID, "session id rotates on refresh")
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo(), &fakeHasher{})

	_, err := svc.Refresh(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfile_TrimsAndValidates(t *testing.T) {
	r := newFakeUserRepo()
	svc := newTestAuthService(r, &fakeHasher{})

	id, err := svc.Register(context.Background(), RegisterInput{
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	u, err := svc.UpdateProfile(context.Background(), id.ID, UpdateProfileInput{Name: "  Alice Doe  "})
	require.NoError(t, err)
	assert.Equal(t, "Alice Doe", u.Name)

	_, err = svc.UpdateProfile(context.Background(), id.ID, UpdateProfileInput{Name: "   "})
	_, ok := validation.IsError(err)
	assert.True(t, ok, "want validation error, got %v", err)
}
