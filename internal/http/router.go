package http

import (
	"time"

	"github.com/employee-manager/backend/internal/config"
	"github.com/employee-manager/backend/internal/http/handlers"
	"github.com/employee-manager/backend/internal/middleware"
	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	userRepo *repositories.UserRepo,
	auditRepo *repositories.AuditRepo,
	authHandler *handlers.AuthHandler,
	employeeHandler *handlers.EmployeeHandler,
	auditHandler *handlers.AuditHandler,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Liveness probe
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Use(middleware.RateLimitMiddleware(rdb, cfg.RateLimitPerMinute, time.Minute))

	authRequired := middleware.AuthMiddleware(cfg, userRepo, log)
	adminOnly := middleware.RequireAdmin()

	// Auth
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login",
		middleware.Audit(models.ActionLogin, models.ResourceAuth, auditRepo, log),
		authHandler.Login)
	authGroup.Get("/profile", authRequired, authHandler.GetProfile)
	authGroup.Put("/profile", authRequired, authHandler.UpdateProfile)
	authGroup.Put("/change-password", authRequired, authHandler.ChangePassword)

	// Employees
	employees := api.Group("/employees", authRequired)
	employees.Post("/", adminOnly,
		middleware.Audit(models.ActionCreate, models.ResourceEmployee, auditRepo, log),
		employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/stats", employeeHandler.Stats)
	employees.Get("/analytics", employeeHandler.Analytics)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", adminOnly,
		middleware.Audit(models.ActionUpdate, models.ResourceEmployee, auditRepo, log),
		employeeHandler.Update)
	employees.Delete("/:id", adminOnly,
		middleware.Audit(models.ActionDelete, models.ResourceEmployee, auditRepo, log),
		employeeHandler.Delete)

	// Audit trail (admin only)
	audit := api.Group("/audit", authRequired, adminOnly)
	audit.Get("/logs", auditHandler.ListLogs)
	audit.Get("/export", auditHandler.ExportCSV)
}
