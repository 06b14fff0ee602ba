package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/shaik1234567/TaskFlow-AI/internal/api/v1/handlers"
	"github.com/shaik1234567/TaskFlow-AI/internal/middleware"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handler, jwtSecret []byte) {
	api := app.Group("/api")

	// Auth
	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)

	// Tasks
	taskRoutes := api.Group("/tasks", middleware.UseToken(jwtSecret))
	taskRoutes.Get("/", h.ListTasks)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)

	// Profile
	userRoutes := api.Group("/users", middleware.UseToken(jwtSecret))
	userRoutes.Get("/me", h.GetMe)
	userRoutes.Put("/me", h.UpdateMe)

	// AI suggestions
	suggestRoutes := api.Group("/suggestions", middleware.UseToken(jwtSecret))
	suggestRoutes.Post("/subtasks", h.GenerateSubtasks)
	suggestRoutes.Post("/analyze", h.AnalyzeTask)
}
