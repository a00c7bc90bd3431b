package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/employee-manager/backend/internal/auth"
	"github.com/employee-manager/backend/internal/config"
	"github.com/employee-manager/backend/internal/http/dto"
	"github.com/employee-manager/backend/internal/middleware"
	"github.com/employee-manager/backend/internal/models"
	"github.com/employee-manager/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, cfg: cfg, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	if req.Username == "" || req.Password == "" || req.Role == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Username, password, and role are required"})
	}
	role := strings.ToLower(req.Role)
	if !models.IsValidRole(role) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: `Role must be either "admin" or "hr"`})
	}
	if len(req.Password) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Password must be at least 6 characters long"})
	}

	username := strings.ToLower(strings.TrimSpace(req.Username))
	if _, err := h.userRepo.GetByUsername(c.Context(), username); err == nil {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "Username already exists"})
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return h.internalError(c, "Registration error", err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return h.internalError(c, "Registration error", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		// Usernames are email-shaped; the local part doubles as the
		// display name until the profile is edited.
		Name:   strings.SplitN(username, "@", 2)[0],
		Email:  username,
		Role:   role,
		Status: models.StatusActive,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		return h.internalError(c, "Registration error", err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Username and password are required"})
	}

	user, err := h.userRepo.GetByUsername(c.Context(), strings.ToLower(strings.TrimSpace(req.Username)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Invalid credentials"})
		}
		return h.internalError(c, "Login error", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Invalid credentials"})
	}

	now := time.Now()
	if err := h.userRepo.TouchLastLogin(c.Context(), user.ID, now); err != nil {
		h.log.Warn("failed to update last login", zap.Error(err))
	}
	user.LastLogin = &now

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Username, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		return h.internalError(c, "Login error", err)
	}

	// Identify the actor for the audit entry on this route.
	c.Locals(middleware.CtxUserID, user.ID)
	c.Locals(middleware.CtxUsername, user.Username)
	c.Locals(middleware.CtxRole, user.Role)
	middleware.SetAuditResourceID(c, user.ID.String())

	return c.JSON(dto.Response{
		Success: true,
		Message: "Login successful",
		Data: dto.LoginResponse{
			Token: token,
			User:  user,
		},
	})
}

func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.userRepo.GetByID(c.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
		}
		return h.internalError(c, "Get profile error", err)
	}

	return c.JSON(dto.Response{
		Success: true,
		Message: "Profile retrieved successfully",
		Data:    user,
	})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	user, err := h.userRepo.GetByID(c.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
		}
		return h.internalError(c, "Update profile error", err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := h.userRepo.GetByEmail(c.Context(), req.Email); err == nil {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Message: "Email already in use"})
		} else if !errors.Is(err, repositories.ErrNotFound) {
			return h.internalError(c, "Update profile error", err)
		}
		user.Email = req.Email
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Current password is required to set a new password"})
		}
		if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Current password is incorrect"})
		}
		if len(req.NewPassword) < 6 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "New password must be at least 6 characters long"})
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return h.internalError(c, "Update profile error", err)
		}
		user.PasswordHash = hash
	}

	if err := h.userRepo.UpdateProfile(c.Context(), user); err != nil {
		return h.internalError(c, "Update profile error", err)
	}

	return c.JSON(dto.Response{
		Success: true,
		Message: "Profile updated successfully",
		Data:    user,
	})
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}

	if req.CurrentPassword == "" || req.NewPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Current password and new password are required"})
	}
	if len(req.NewPassword) < 6 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "New password must be at least 6 characters long"})
	}

	user, err := h.userRepo.GetByID(c.Context(), middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "User not found"})
		}
		return h.internalError(c, "Change password error", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Current password is incorrect"})
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return h.internalError(c, "Change password error", err)
	}
	if err := h.userRepo.UpdatePassword(c.Context(), user.ID, hash); err != nil {
		return h.internalError(c, "Change password error", err)
	}

	return c.JSON(dto.Response{
		Success: true,
		Message: "Password changed successfully",
	})
}

func (h *AuthHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	h.log.Error(msg, zap.Error(err))
	resp := dto.ErrorResponse{Message: "Internal server error"}
	if !h.cfg.IsProduction() {
		resp.Error = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}
