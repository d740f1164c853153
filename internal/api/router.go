package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/idently/auth-api/internal/api/handler"
	"github.com/idently/auth-api/internal/api/middleware"
	"github.com/idently/auth-api/internal/core/domain"
	"github.com/idently/auth-api/internal/core/ports"
	"github.com/idently/auth-api/internal/core/service"
	"github.com/idently/auth-api/internal/infrastructure/config"
	mongodb "github.com/idently/auth-api/internal/infrastructure/db/mongo"
	redisdb "github.com/idently/auth-api/internal/infrastructure/db/redis"
)

// guardedGroup mounts routes behind the Auth middleware. Identity-scoped
// handlers are only ever registered through one of these, so a route cannot
// exist without a principal-producing step in front of it.
type guardedGroup struct {
	group *echo.Group
}

func newGuardedGroup(e *echo.Echo, prefix string, tokens ports.TokenService, extra ...echo.MiddlewareFunc) *guardedGroup {
	mw := append([]echo.MiddlewareFunc{middleware.Auth(tokens)}, extra...)
	return &guardedGroup{group: e.Group(prefix, mw...)}
}

func (g *guardedGroup) GET(path string, h echo.HandlerFunc) {
	g.group.GET(path, h)
}

func (g *guardedGroup) POST(path string, h echo.HandlerFunc) {
	g.group.POST(path, h)
}

func (g *guardedGroup) DELETE(path string, h echo.HandlerFunc) {
	g.group.DELETE(path, h)
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, log)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, cfg.Login.Window)
	accounts := service.NewAccountService(userRepo, hasher, tokens, limiter, log)

	authHandler := handler.NewAuthHandler(accounts)
	adminHandler := handler.NewAdminHandler(accounts)

	// --- Public auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Authenticated routes ---
	authed := newGuardedGroup(e, "/api/auth", tokens)
	authed.GET("/me", authHandler.Me)
	authed.POST("/logout", authHandler.Logout)

	// --- Admin routes ---
	admin := newGuardedGroup(e, "/api/admin", tokens, middleware.RBAC(domain.RoleAdmin))
	admin.GET("", adminHandler.Dashboard)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
