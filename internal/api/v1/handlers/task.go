package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/task"
	"github.com/shaik1234567/TaskFlow-AI/internal/ws"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

// Task handlers

func (h *Handler) ListTasks(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(string)

	tasks, err := h.Tasks.List(c.Context(), ownerID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error fetching tasks"})
	}
	return c.JSON(tasks)
}

func (h *Handler) CreateTask(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(string)

	type TaskRequest struct {
		Title       string              `json:"title" validate:"required"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}
	if err := h.Validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation error",
			"errors":  err.Error(),
		})
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid status"})
	}
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid priority"})
	}

	created, err := h.Tasks.Create(c.Context(), ownerID, task.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error creating task"})
	}

	logger.AuditLogger.Info("Task created successfully", zap.String("task_id", created.ID))
	h.publish(ownerID, ws.Event{Type: ws.EventTaskCreated, Task: &created})
	return c.JSON(created)
}

func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(string)
	taskID := c.Params("id")

	// Pointer fields: absent keys leave the stored value alone.
	type UpdateTaskRequest struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status"`
		Priority    *models.TaskPriority `json:"priority"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return c.Status(400).JSON(fiber.Map{"message": "Bad request"})
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid status"})
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return c.Status(400).JSON(fiber.Map{"message": "Invalid priority"})
	}

	updated, err := h.Tasks.Update(c.Context(), ownerID, taskID, task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrTaskNotFound) {
			return c.Status(404).JSON(fiber.Map{"message": "Task not found"})
		}
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error updating task"})
	}

	logger.AuditLogger.Info("Task updated", zap.String("task_id", taskID))
	h.publish(ownerID, ws.Event{Type: ws.EventTaskUpdated, Task: &updated})
	return c.JSON(updated)
}

func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	ownerID := c.Locals("userID").(string)
	taskID := c.Params("id")

	if err := h.Tasks.Delete(c.Context(), ownerID, taskID); err != nil {
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return c.Status(500).JSON(fiber.Map{"message": "Error deleting task"})
	}

	logger.AuditLogger.Info("Task deleted", zap.String("task_id", taskID))
	h.publish(ownerID, ws.Event{Type: ws.EventTaskDeleted, TaskID: taskID})
	return c.JSON(fiber.Map{"message": "Deleted"})
}
