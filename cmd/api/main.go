package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/employee-manager/backend/internal/config"
	"github.com/employee-manager/backend/internal/db"
	apphttp "github.com/employee-manager/backend/internal/http"
	"github.com/employee-manager/backend/internal/http/handlers"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/employee-manager/backend/internal/services"
	"github.com/employee-manager/backend/migrations"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, migrations.Files, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	employeeRepo := repositories.NewEmployeeRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Services
	employeeService := services.NewEmployeeService(employeeRepo, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg, log)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, cfg, log)
	auditHandler := handlers.NewAuditHandler(auditRepo, cfg, log)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"success": false, "message": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, userRepo, auditRepo, authHandler, employeeHandler, auditHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
