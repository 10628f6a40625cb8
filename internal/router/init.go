package router

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/CaioSouzalimaa/clearbalance/config"
	"github.com/CaioSouzalimaa/clearbalance/internal/application"
	pginfra "github.com/CaioSouzalimaa/clearbalance/internal/infrastructure/postgres"
	handlers "github.com/CaioSouzalimaa/clearbalance/internal/interface/http"
	"github.com/CaioSouzalimaa/clearbalance/internal/router/modules"
	"github.com/CaioSouzalimaa/clearbalance/pkg/helpers"
)

// Deps carries the process-wide collaborators built by main. Everything is
// injected explicitly; there is no shared container.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
}

// InitModules builds repositories, services and handlers, and registers all
// feature modules with the router registry.
func InitModules(r *Registry, d Deps) {
	userRepo := pginfra.NewUserRepository(d.Pool)
	txRepo := pginfra.NewTransactionRepository(d.Pool)
	catRepo := pginfra.NewCategoryRepository(d.Pool)
	goalRepo := pginfra.NewGoalRepository(d.Pool)

	hasher := helpers.NewBcryptHasher(d.Cfg.BcryptCost)

	authSvc := application.NewAuthService(userRepo, hasher, d.JWT, d.Redis, d.Logger, d.Pub, d.Cfg.MailSendEnabled)
	txSvc := application.NewTransactionService(txRepo, catRepo, d.Redis, d.Logger)
	catSvc := application.NewCategoryService(catRepo, d.Redis, d.Logger)
	goalSvc := application.NewGoalService(goalRepo, d.Redis, d.Logger)
	summarySvc := application.NewSummaryService(txRepo, goalRepo, d.Redis, d.Logger, d.Cfg.SummaryCacheTTL)

	authHandler := handlers.NewAuthHandler(authSvc, d.Logger, d.Cfg.CookieDomain, d.Cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(authSvc, d.Logger)
	txHandler := handlers.NewTransactionHandler(txSvc, d.Logger)
	catHandler := handlers.NewCategoryHandler(catSvc, d.Logger)
	goalHandler := handlers.NewGoalHandler(goalSvc, d.Logger)
	dashHandler := handlers.NewDashboardHandler(summarySvc, d.Logger)

	r.Add(modules.NewAuthModule(authHandler, userHandler, d.JWT, d.Redis))
	r.Add(modules.NewFinanceModule(txHandler, catHandler, goalHandler, dashHandler, d.JWT, d.Redis))
}
