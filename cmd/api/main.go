package main

import (
	"context"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/utaskhq/utask/internal/alerts"
	"github.com/utaskhq/utask/internal/auth"
	"github.com/utaskhq/utask/internal/config"
	"github.com/utaskhq/utask/internal/db"
	"github.com/utaskhq/utask/internal/marketplace"
	"github.com/utaskhq/utask/internal/middleware"
	"github.com/utaskhq/utask/internal/notifications"
	"github.com/utaskhq/utask/internal/store"
	"github.com/utaskhq/utask/internal/wallet"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newLogger(cfg.LogMode)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		zap.S().Fatalw("database connection failed", "error", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		zap.S().Fatalw("schema setup failed", "error", err)
	}

	st := store.New(pool)

	alertClient := alerts.NewClient(cfg.RedisAddr)
	defer alertClient.Close()

	processor := alerts.NewProcessor(cfg.RedisAddr, alerts.NewMailer(cfg))
	processor.Start()
	defer processor.Shutdown()

	authHandler := auth.NewHandler(st, cfg.JWTSecret, alertClient)
	marketHandler := marketplace.NewHandler(st, alertClient)
	notifHandler := notifications.NewHandler(st)
	walletHandler := wallet.NewHandler(st)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/ready", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "not_ready"})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ready"})
	})

	// Rate limited to slow down credential stuffing on signup/login.
	authGroup := e.Group("/auth")
	authGroup.Use(echomw.RateLimiter(echomw.NewRateLimiterMemoryStore(20)))
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)

	e.GET("/categories", marketHandler.ListCategories)
	e.GET("/services", marketHandler.ListServices)
	e.GET("/services/nearby", marketHandler.NearbyServices)
	e.GET("/services/:id", marketHandler.GetService)

	api := e.Group("")
	api.Use(middleware.JWT(cfg.JWTSecret))

	api.GET("/auth/me", authHandler.Me)

	api.POST("/services", marketHandler.CreateService)
	api.PUT("/services/:id", marketHandler.UpdateService)
	api.DELETE("/services/:id", marketHandler.DeleteService)

	api.POST("/services/:id/proposals", marketHandler.CreateProposal)
	api.GET("/services/:id/proposals", marketHandler.ListProposals)
	api.POST("/proposals/:id/accept", marketHandler.AcceptProposal)
	api.POST("/proposals/:id/reject", marketHandler.RejectProposal)
	api.POST("/proposals/:id/counter", marketHandler.CounterProposal)

	api.GET("/favorites", marketHandler.ListFavorites)
	api.POST("/favorites", marketHandler.AddFavorite)
	api.DELETE("/favorites/:serviceId", marketHandler.RemoveFavorite)

	api.GET("/notifications", notifHandler.List)
	api.POST("/notifications/:id/read", notifHandler.MarkRead)
	api.POST("/notifications/read-all", notifHandler.MarkAllRead)

	api.GET("/wallet", walletHandler.Summary)
	api.GET("/wallet/transactions", walletHandler.Transactions)

	if err := e.Start(":" + cfg.Port); err != nil {
		zap.S().Fatalw("server stopped", "error", err)
	}
}

func newLogger(mode string) *zap.Logger {
	if mode == "production" {
		logger, _ := zap.NewProduction()
		return logger
	}
	logger, _ := zap.NewDevelopment()
	return logger
}
