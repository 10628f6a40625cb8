package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/CaioSouzalimaa/clearbalance/internal/interface/http"
	"github.com/CaioSouzalimaa/clearbalance/internal/interface/middleware"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/register, /api/login, /api/refresh
// Protected: POST /api/logout, GET/PUT /api/profile
type AuthModule struct {
	Auth  *handlers.AuthHandler
	User  *handlers.UserHandler
	JWT   *helpers.JWTManager
	Redis *redis.Client
}

func NewAuthModule(auth *handlers.AuthHandler, user *handlers.UserHandler, jwt *helpers.JWTManager, rdb *redis.Client) *AuthModule {
	return &AuthModule{Auth: auth, User: user, JWT: jwt, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP())
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP())

	rg.POST("/register", registerLimiter, m.Auth.Register)
	rg.POST("/login", loginLimiter, m.Auth.Login)
	rg.POST("/refresh", refreshLimiter, m.Auth.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()))
	{
		auth.POST("/logout", m.Auth.Logout)
		auth.GET("/profile", m.User.GetProfile)
		auth.PUT("/profile", m.User.UpdateProfile)
	}
}
