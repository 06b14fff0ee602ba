// Package handlers contains the HTTP handlers for the v1 API. All
// task operations take their owner id from the validated token in
// Locals, set by the auth middleware.
package handlers

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/shaik1234567/TaskFlow-AI/internal/auth"
	"github.com/shaik1234567/TaskFlow-AI/internal/suggest"
	"github.com/shaik1234567/TaskFlow-AI/internal/task"
	"github.com/shaik1234567/TaskFlow-AI/internal/ws"
)

// SuggestionService is satisfied by *suggest.Gateway.
type SuggestionService interface {
	GenerateSubtasks(ctx context.Context, goal string) ([]suggest.Suggestion, error)
	AnalyzeTask(ctx context.Context, description string) suggest.Analysis
}

type Handler struct {
	Sessions *auth.Manager
	Tasks    task.Repository
	Suggest  SuggestionService
	Events   *ws.Hub // optional; nil disables the event feed
	Validate *validator.Validate
}

func New(sessions *auth.Manager, tasks task.Repository, suggestions SuggestionService, events *ws.Hub) *Handler {
	return &Handler{
		Sessions: sessions,
		Tasks:    tasks,
		Suggest:  suggestions,
		Events:   events,
		Validate: validator.New(),
	}
}

func (h *Handler) publish(ownerID string, event ws.Event) {
	if h.Events != nil {
		h.Events.Publish(ownerID, event)
	}
}
