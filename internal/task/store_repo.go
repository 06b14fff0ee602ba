package task

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/internal/store"
)

// StoreRepository keeps all tasks in one document in the key-value
// store (local mode). Reads filter by owner before anything leaves the
// repository.
type StoreRepository struct {
	kv  store.Store
	now func() time.Time
}

func NewStoreRepository(kv store.Store) *StoreRepository {
	return &StoreRepository{kv: kv, now: time.Now}
}

func (r *StoreRepository) load() ([]models.Task, error) {
	var tasks []models.Task
	if _, err := r.kv.Get(store.KeyTasks, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *StoreRepository) List(_ context.Context, ownerID string) ([]models.Task, error) {
	all, err := r.load()
	if err != nil {
		return nil, err
	}
	owned := []models.Task{}
	for _, t := range all {
		if t.UserID == ownerID {
			owned = append(owned, t)
		}
	}
	sort.SliceStable(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})
	return owned, nil
}

func (r *StoreRepository) Create(_ context.Context, ownerID string, in CreateInput) (models.Task, error) {
	all, err := r.load()
	if err != nil {
		return models.Task{}, err
	}
	in = applyDefaults(in)
	task := models.Task{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   r.now(),
	}
	if err := r.kv.Put(store.KeyTasks, append(all, task)); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

func (r *StoreRepository) Update(_ context.Context, ownerID, taskID string, in UpdateInput) (models.Task, error) {
	all, err := r.load()
	if err != nil {
		return models.Task{}, err
	}
	for i, t := range all {
		if t.ID == taskID && t.UserID == ownerID {
			all[i] = merge(t, in)
			if err := r.kv.Put(store.KeyTasks, all); err != nil {
				return models.Task{}, err
			}
			return all[i], nil
		}
	}
	return models.Task{}, apperrors.ErrTaskNotFound
}

func (r *StoreRepository) Delete(_ context.Context, ownerID, taskID string) error {
	all, err := r.load()
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, t := range all {
		if t.ID == taskID && t.UserID == ownerID {
			continue
		}
		kept = append(kept, t)
	}
	return r.kv.Put(store.KeyTasks, kept)
}
