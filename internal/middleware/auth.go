package middleware

import (
	"strings"

	"github.com/employee-manager/backend/internal/auth"
	"github.com/employee-manager/backend/internal/config"
	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// AuthMiddleware verifies the bearer token and re-checks the account
// against the store: a token for a deleted or deactivated user is
// rejected even before it expires.
func AuthMiddleware(cfg *config.Config, userRepo *repositories.UserRepo, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Access token required"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid or expired token"})
		}

		user, err := userRepo.GetByID(c.Context(), claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "Invalid token - user not found"})
		}
		if user.Status == models.StatusInactive {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "User account is inactive"})
		}

		c.Locals(CtxUserID, user.ID)
		c.Locals(CtxUsername, user.Username)
		c.Locals(CtxRole, user.Role)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUsername(c *fiber.Ctx) string {
	name, _ := c.Locals(CtxUsername).(string)
	return name
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

// RequireAdmin gates admin-only routes. Runs after AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetRole(c) != models.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "Admin access required"})
		}
		return c.Next()
	}
}
