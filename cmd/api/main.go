package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/Abhivandan7/DashCash/internal/adapter/embedder"
	"github.com/Abhivandan7/DashCash/internal/adapter/handler"
	"github.com/Abhivandan7/DashCash/internal/adapter/middleware"
	"github.com/Abhivandan7/DashCash/internal/adapter/storage/postgres"
	"github.com/Abhivandan7/DashCash/internal/adapter/storage/sqlite"
	"github.com/Abhivandan7/DashCash/internal/core/biometric"
	"github.com/Abhivandan7/DashCash/internal/core/config"
	"github.com/Abhivandan7/DashCash/internal/core/ledger"
	"github.com/Abhivandan7/DashCash/internal/core/ports"
	"github.com/Abhivandan7/DashCash/internal/core/service"
	"github.com/Abhivandan7/DashCash/internal/core/worker"
)

func main() {
	// 1. Load Config
	cfg := config.LoadConfig()

	// 2. Setup Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 3. Open the store: Postgres when DATABASE_URL is set, embedded
	// SQLite for single-machine kiosk units otherwise.
	var store ports.Store
	var err error
	if cfg.DatabaseURL != "" {
		store, err = postgres.Connect(context.Background(), cfg.DatabaseURL)
	} else {
		store, err = sqlite.Open(cfg.SQLitePath)
	}
	if err != nil {
		slog.Error("Store initialization failed", "error", err)
		os.Exit(1)
	}

	// 4. Wire services
	provider := embedder.New(cfg.EmbedderURL, cfg.EmbedderTimeout)
	resolver := biometric.NewResolver(store, cfg.MatchThreshold, cfg.AmbiguityMargin)
	engine := ledger.NewEngine(store, store, cfg.WebhookURL)

	enrollmentHandler := &handler.EnrollmentHandler{
		Service: service.NewEnrollmentService(provider, store, store, cfg.MinOpeningDeposit),
	}
	authHandler := &handler.AuthHandler{
		Service: service.NewAuthService(provider, resolver, store, store),
	}
	transactionHandler := &handler.TransactionHandler{Engine: engine, Accounts: store}

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	app.Use(cors.New())

	// 6. Routes
	api := app.Group("/v1")

	// Public
	api.Post("/accounts", enrollmentHandler.Enroll)
	api.Post("/login", authHandler.Login)

	// Protected
	private := api.Use(middleware.Protected(store))
	private.Post("/transactions", middleware.Idempotency(store), transactionHandler.Transact)
	private.Get("/accounts/:id", transactionHandler.GetAccount)
	private.Get("/accounts/:id/transactions", transactionHandler.GetHistory)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// 7. Start Worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker.StartWebhookWorker(workerCtx, store, cfg.WebhookSecret)

	// Graceful shutdown: stop accepting requests, then close the store.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "env", cfg.Env, "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("Server forced to shutdown", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutting down server...")

	stopWorker()

	if err := app.Shutdown(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	if err := store.Close(); err != nil {
		slog.Error("Store close failed", "error", err)
	}

	slog.Info("Server exited")
}
