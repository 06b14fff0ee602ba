// Package task implements owner-scoped task persistence. Every query
// and mutation filters by the owner id the caller derived from a
// validated credential; a task id alone is never enough to reach
// another user's record.
package task

import (
	"context"

	"github.com/shaik1234567/TaskFlow-AI/internal/models"
)

// CreateInput carries caller-supplied fields for a new task. Zero
// values for Status and Priority fall back to TODO and MEDIUM.
type CreateInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
}

// UpdateInput is a partial update: nil fields keep the stored value,
// so a status-only change never clobbers title or description.
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority
}

type Repository interface {
	// List returns the owner's tasks sorted by creation time, newest first.
	List(ctx context.Context, ownerID string) ([]models.Task, error)
	Create(ctx context.Context, ownerID string, in CreateInput) (models.Task, error)
	// Update fails with ErrTaskNotFound when the id does not exist for
	// this owner.
	Update(ctx context.Context, ownerID, taskID string, in UpdateInput) (models.Task, error)
	// Delete is a no-op when the task is already absent.
	Delete(ctx context.Context, ownerID, taskID string) error
}

func applyDefaults(in CreateInput) CreateInput {
	if in.Status == "" {
		in.Status = models.StatusTodo
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	return in
}

func merge(stored models.Task, in UpdateInput) models.Task {
	if in.Title != nil {
		stored.Title = *in.Title
	}
	if in.Description != nil {
		stored.Description = *in.Description
	}
	if in.Status != nil {
		stored.Status = *in.Status
	}
	if in.Priority != nil {
		stored.Priority = *in.Priority
	}
	return stored
}
