// Package app holds the in-memory state for the active view and
// orchestrates the session manager, task repository, and suggestion
// gateway. Mutations refresh the task list wholesale from storage;
// nothing is patched optimistically.
package app

import (
	"context"
	"strings"
	"sync"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/auth"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/suggest"
	"github.com/shaik1234567/TaskFlow-AI/internal/task"
)

// FilterAll disables status filtering in FilteredTasks.
const FilterAll = "ALL"

// State is what the presentation layer reads. Loading is true only
// between construction and the first Init.
type State struct {
	Session *models.Session
	Tasks   []models.Task
	Loading bool
}

// Notifier receives user-visible messages. Level is one of "success",
// "error", "info".
type Notifier func(message, level string)

// TaskForm is the complete set of editable task fields, as submitted
// by the task dialog.
type TaskForm struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
}

// SuggestionService is what the controller needs from the suggestion
// gateway; satisfied by *suggest.Gateway.
type SuggestionService interface {
	GenerateSubtasks(ctx context.Context, goal string) ([]suggest.Suggestion, error)
	AnalyzeTask(ctx context.Context, description string) suggest.Analysis
}

type Controller struct {
	sessions *auth.Manager
	tasks    task.Repository
	gateway  SuggestionService
	notify   Notifier

	mu    sync.Mutex
	state State
}

func NewController(sessions *auth.Manager, tasks task.Repository, gateway SuggestionService, notify Notifier) *Controller {
	if notify == nil {
		notify = func(string, string) {}
	}
	return &Controller{
		sessions: sessions,
		tasks:    tasks,
		gateway:  gateway,
		notify:   notify,
		state:    State{Loading: true},
	}
}

// State returns a copy; the caller can read it without holding any
// lock.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	snapshot := c.state
	snapshot.Tasks = append([]models.Task(nil), c.state.Tasks...)
	return snapshot
}

// Init restores the persisted session, loads its tasks, and flips
// loading off. Called once on start.
func (c *Controller) Init(ctx context.Context) error {
	session, err := c.sessions.CurrentSession(ctx)
	if err != nil {
		c.setState(nil, nil, false)
		return err
	}
	if session == nil {
		c.setState(nil, nil, false)
		return nil
	}
	tasks, err := c.tasks.List(ctx, session.User.ID)
	if err != nil {
		c.setState(session, nil, false)
		return err
	}
	c.setState(session, tasks, false)
	return nil
}

func (c *Controller) setState(session *models.Session, tasks []models.Task, loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = State{Session: session, Tasks: tasks, Loading: loading}
}

func (c *Controller) currentOwner() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Session == nil {
		return "", false
	}
	return c.state.Session.User.ID, true
}

// refresh re-fetches the owner's full list and replaces the in-memory
// tasks wholesale.
func (c *Controller) refresh(ctx context.Context) error {
	owner, ok := c.currentOwner()
	if !ok {
		return nil
	}
	tasks, err := c.tasks.List(ctx, owner)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.Tasks = tasks
	c.mu.Unlock()
	return nil
}

func (c *Controller) Login(ctx context.Context, email, password string) error {
	session, err := c.sessions.Login(ctx, email, password)
	if err != nil {
		c.notify(err.Error(), "error")
		return err
	}
	c.setState(&session, nil, false)
	c.notify("Welcome back!", "success")
	return c.refresh(ctx)
}

func (c *Controller) Register(ctx context.Context, name, email, password string) error {
	session, err := c.sessions.Register(ctx, name, email, password)
	if err != nil {
		c.notify(err.Error(), "error")
		return err
	}
	c.setState(&session, nil, false)
	c.notify("Account created successfully!", "success")
	return nil
}

func (c *Controller) Logout(ctx context.Context) error {
	if err := c.sessions.Logout(ctx); err != nil {
		return err
	}
	c.setState(nil, nil, false)
	c.notify("Signed out successfully", "info")
	return nil
}

// SaveTask routes to create or update depending on whether an existing
// task is being edited, then refreshes the list.
func (c *Controller) SaveTask(ctx context.Context, form TaskForm, editing *models.Task) error {
	owner, ok := c.currentOwner()
	if !ok {
		return apperrors.ErrUnauthenticated
	}

	var err error
	if editing == nil {
		_, err = c.tasks.Create(ctx, owner, task.CreateInput{
			Title:       form.Title,
			Description: form.Description,
			Status:      form.Status,
			Priority:    form.Priority,
		})
	} else {
		_, err = c.tasks.Update(ctx, owner, editing.ID, task.UpdateInput{
			Title:       &form.Title,
			Description: &form.Description,
			Status:      &form.Status,
			Priority:    &form.Priority,
		})
	}
	if err != nil {
		c.notify(err.Error(), "error")
		return err
	}
	return c.refresh(ctx)
}

func (c *Controller) DeleteTask(ctx context.Context, taskID string) error {
	owner, ok := c.currentOwner()
	if !ok {
		return apperrors.ErrUnauthenticated
	}
	if err := c.tasks.Delete(ctx, owner, taskID); err != nil {
		c.notify(err.Error(), "error")
		return err
	}
	return c.refresh(ctx)
}

// GenerateFromGoal asks the gateway for subtasks and creates them one
// at a time. A failure partway through leaves the earlier tasks
// committed; the returned count says how many landed.
func (c *Controller) GenerateFromGoal(ctx context.Context, goal string) (int, error) {
	owner, ok := c.currentOwner()
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}

	suggestions, err := c.gateway.GenerateSubtasks(ctx, goal)
	if err != nil {
		c.notify("Could not generate tasks, please try again", "error")
		return 0, err
	}

	created := 0
	for _, s := range suggestions {
		_, err := c.tasks.Create(ctx, owner, task.CreateInput{
			Title:       s.Title,
			Description: s.Description,
			Priority:    s.Priority,
		})
		if err != nil {
			c.notify(err.Error(), "error")
			_ = c.refresh(ctx)
			return created, err
		}
		created++
	}
	if err := c.refresh(ctx); err != nil {
		return created, err
	}
	return created, nil
}

// AnalyzeDescription never fails; see the gateway for the fallback
// policy.
func (c *Controller) AnalyzeDescription(ctx context.Context, description string) suggest.Analysis {
	return c.gateway.AnalyzeTask(ctx, description)
}

// FilteredTasks is a pure function of current state and the filter
// inputs: case-insensitive substring match on title or description,
// intersected with an exact status filter.
func (c *Controller) FilteredTasks(searchTerm string, statusFilter string) []models.Task {
	state := c.State()
	needle := strings.ToLower(searchTerm)

	filtered := []models.Task{}
	for _, t := range state.Tasks {
		matchesSearch := strings.Contains(strings.ToLower(t.Title), needle) ||
			strings.Contains(strings.ToLower(t.Description), needle)
		matchesStatus := statusFilter == FilterAll || string(t.Status) == statusFilter
		if matchesSearch && matchesStatus {
			filtered = append(filtered, t)
		}
	}
	return filtered
}
