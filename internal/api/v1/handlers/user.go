package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

// Profile handlers. The target user is always the authenticated one;
// there is no cross-user profile access.

func (h *Handler) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	user, err := h.Sessions.GetUser(c.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching user"})
	}
	return c.JSON(user)
}

func (h *Handler) UpdateMe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	type UpdateProfileRequest struct {
		Name string `json:"name" validate:"required"`
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update profile", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	updated, err := h.Sessions.UpdateProfile(c.Context(), models.User{ID: userID, Name: req.Name})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "User not found"})
		}
		logger.ErrorLogger.Error("Error updating profile", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error updating profile"})
	}

	logger.AuditLogger.Info("Profile updated", zap.String("user_id", userID))
	return c.JSON(updated)
}
