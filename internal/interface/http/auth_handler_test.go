package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	"github.com/CaioSouzalimaa/clearbalance/internal/domain/entity"
	repo "github.com/CaioSouzalimaa/clearbalance/internal/domain/repository"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
)

type memUserRepo struct {
	byEmail map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*entity.User{}}
}

func (m *memUserRepo) Create(ctx context.Context, u *entity.User) error {
	if _, ok := m.byEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	cp := *u
	m.byEmail[u.Email] = &cp
	return nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) Update(ctx context.Context, u *entity.User) error {
	for _, stored := range m.byEmail {
		if stored.ID == u.ID {
			*stored = *u
			return nil
		}
	}
	return repo.ErrNotFound
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "digest:" + plain, nil }
func (plainHasher) Verify(plain, digest string) bool  { return digest == "digest:"+plain }

func newAuthRouter(t *testing.T) (*gin.Engine, *memUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	users := newMemUserRepo()
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	svc := application.NewAuthService(users, plainHasher{}, jwt, nil, logger, nil, false)
	h := NewAuthHandler(svc, logger, "", false)

	r := gin.New()
	r.POST("/api/register", h.Register)
	r.POST("/api/login", h.Login)
	r.POST("/api/refresh", h.Refresh)
	r.POST("/api/logout", h.Logout)
	return r, users
}

type envelope struct {
	Status  int               `json:"status"`
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Error   map[string]string `json:"error"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func TestAuthHandler_Register(t *testing.T) {
	r, users := newAuthRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/register",
		`{"email":"alice@example.com","password":"password123","name":"Alice"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)

	var id struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &id))
	assert.NotEmpty(t, id.ID)
	assert.Equal(t, "alice@example.com", id.Email)

	assert.NotContains(t, w.Body.String(), "password123", "response must not leak password material")
	assert.NotContains(t, w.Body.String(), "digest:")
	require.Contains(t, users.byEmail, "alice@example.com")
}

func TestAuthHandler_Register_FieldErrors(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/register",
		`{"email":"bad-email","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "email")
	assert.Contains(t, env.Error, "password")
}

func TestAuthHandler_Register_MalformedJSON(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/api/register", `{"email":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error, "payload")
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	r, _ := newAuthRouter(t)

	body := `{"email":"alice@example.com","password":"password123"}`
	w, _ := doJSON(t, r, http.MethodPost, "/api/register", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already in use", env.Message)
}

func TestAuthHandler_Login(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	cookies := w.Result().Cookies()
	names := map[string]bool{}
	for _, c := range cookies {
		names[c.Name] = c.HttpOnly
	}
	assert.True(t, names["access_token"], "access_token cookie must be set HttpOnly")
	assert.True(t, names["refresh_token"], "refresh_token cookie must be set HttpOnly")
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"password124"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", env.Message)
	assert.Empty(t, w.Result().Cookies(), "no cookies on failed login")
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"ghost@example.com","password":"password123"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh_MissingCookie(t *testing.T) {
	r, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	r, _ := newAuthRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/register",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w, _ = doJSON(t, r, http.MethodPost, "/api/login",
		`{"email":"alice@example.com","password":"password123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var refresh *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			refresh = c
		}
	}
	require.NotNil(t, refresh)

	req := httptest.NewRequest(http.MethodPost, "/api/refresh", nil)
	req.AddCookie(refresh)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rotated := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" && c.Value != refresh.Value {
			rotated = true
		}
	}
	assert.True(t, rotated, "refresh must rotate the refresh token cookie")
}
