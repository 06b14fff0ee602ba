package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

// Suggestion handlers. Note the asymmetry: subtask generation reports
// service failures to the client, analysis always answers.

func (h *Handler) GenerateSubtasks(c *fiber.Ctx) error {
	type GenerateRequest struct {
		Goal string `json:"goal" validate:"required"`
	}

	var req GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	suggestions, err := h.Suggest.GenerateSubtasks(c.Context(), req.Goal)
	if err != nil {
		logger.ErrorLogger.Error("Suggestion service failure", zap.Error(err))
		return c.Status(502).JSON(fiber.Map{"message": "Suggestion service unavailable"})
	}
	return c.JSON(suggestions)
}

func (h *Handler) AnalyzeTask(c *fiber.Ctx) error {
	type AnalyzeRequest struct {
		Description string `json:"description" validate:"required"`
	}

	var req AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}
	if err := h.Validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}

	return c.JSON(h.Suggest.AnalyzeTask(c.Context(), req.Description))
}
