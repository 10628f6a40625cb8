package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/CaioSouzalimaa/clearbalance/internal/interface/http"
	"github.com/CaioSouzalimaa/clearbalance/internal/interface/middleware"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
)

// FinanceModule wires the dashboard resources. Everything here requires an
// authenticated session.
type FinanceModule struct {
	Transactions *handlers.TransactionHandler
	Categories   *handlers.CategoryHandler
	Goals        *handlers.GoalHandler
	Dashboard    *handlers.DashboardHandler
	JWT          *helpers.JWTManager
	Redis        *redis.Client
}

func NewFinanceModule(tx *handlers.TransactionHandler, cat *handlers.CategoryHandler, goal *handlers.GoalHandler, dash *handlers.DashboardHandler, jwt *helpers.JWTManager, rdb *redis.Client) *FinanceModule {
	return &FinanceModule{Transactions: tx, Categories: cat, Goals: goal, Dashboard: dash, JWT: jwt, Redis: rdb}
}

func (m *FinanceModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(
		middleware.RateLimit(m.Redis, 300, time.Minute, middleware.KeyByIP()),
		middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID()),
	)
	{
		auth.GET("/transactions", m.Transactions.List)
		auth.POST("/transactions", m.Transactions.Create)
		auth.PUT("/transactions/:id", m.Transactions.Update)
		auth.DELETE("/transactions/:id", m.Transactions.Delete)

		auth.GET("/categories", m.Categories.List)
		auth.POST("/categories", m.Categories.Create)
		auth.PUT("/categories/:id", m.Categories.Update)
		auth.DELETE("/categories/:id", m.Categories.Delete)

		auth.GET("/goals", m.Goals.List)
		auth.POST("/goals", m.Goals.Create)
		auth.PUT("/goals/:id", m.Goals.Update)
		auth.POST("/goals/:id/savings", m.Goals.AddSavings)
		auth.DELETE("/goals/:id", m.Goals.Delete)

		auth.GET("/dashboard/summary", m.Dashboard.Summary)
	}
}
