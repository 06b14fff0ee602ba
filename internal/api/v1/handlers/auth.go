package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

// Auth handlers

func (h *Handler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := h.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	session, err := h.Sessions.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateEmail) {
			logger.SecurityLogger.Warn("Duplicate email", zap.String("email", req.Email))
			return c.Status(400).JSON(fiber.Map{"message": "User already exists or invalid data"})
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error creating user"})
	}

	logger.AuditLogger.Info("User registered successfully", zap.String("user_id", session.User.ID))
	return c.JSON(fiber.Map{
		"user":  session.User,
		"token": session.Token,
	})
}

func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}

	if err := h.Validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	session, err := h.Sessions.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			logger.SecurityLogger.Warn("Invalid credentials", zap.String("email", req.Email))
			return c.Status(401).JSON(fiber.Map{"message": "Invalid credentials"})
		}
		logger.ErrorLogger.Error("Error during login", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error during login"})
	}

	logger.AuditLogger.Info("Login success", zap.String("user_id", session.User.ID))
	return c.JSON(fiber.Map{
		"user":  session.User,
		"token": session.Token,
	})
}
