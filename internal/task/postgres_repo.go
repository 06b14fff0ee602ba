package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shaik1234567/TaskFlow-AI/internal/apperrors"
	"github.com/shaik1234567/TaskFlow-AI/internal/models"
	"github.com/shaik1234567/TaskFlow-AI/pkg/logger"
)

const listCacheTTL = time.Hour

// PostgresRepository stores tasks in the tasks table (server mode),
// with the owner's task list cached in Redis. The cache client may be
// nil, in which case every read hits the database.
type PostgresRepository struct {
	db    *sql.DB
	cache *redis.Client
	now   func() time.Time
}

func NewPostgresRepository(db *sql.DB, cache *redis.Client) *PostgresRepository {
	return &PostgresRepository{db: db, cache: cache, now: time.Now}
}

func listCacheKey(ownerID string) string {
	return fmt.Sprintf("tasks:%s", ownerID)
}

func (r *PostgresRepository) List(ctx context.Context, ownerID string) ([]models.Task, error) {
	if r.cache != nil {
		if cached, err := r.cache.Get(ctx, listCacheKey(ownerID)).Result(); err == nil {
			var tasks []models.Task
			if err := json.Unmarshal([]byte(cached), &tasks); err == nil {
				return tasks, nil
			}
		}
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, user_id, title, description, status, priority, created_at FROM tasks WHERE user_id = $1 ORDER BY created_at DESC",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}

	if r.cache != nil {
		if raw, err := json.Marshal(tasks); err == nil {
			if err := r.cache.Set(ctx, listCacheKey(ownerID), raw, listCacheTTL).Err(); err != nil {
				// Cache failures never fail the read.
				logger.ErrorLogger.Error("Error caching task list", zap.Error(err))
			}
		}
	}
	return tasks, nil
}

func (r *PostgresRepository) invalidate(ctx context.Context, ownerID string) {
	if r.cache != nil {
		r.cache.Del(ctx, listCacheKey(ownerID))
	}
}

func (r *PostgresRepository) Create(ctx context.Context, ownerID string, in CreateInput) (models.Task, error) {
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
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (id, user_id, title, description, status, priority, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		task.ID, task.UserID, task.Title, task.Description, task.Status, task.Priority, task.CreatedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	r.invalidate(ctx, ownerID)
	return task, nil
}

func (r *PostgresRepository) Update(ctx context.Context, ownerID, taskID string, in UpdateInput) (models.Task, error) {
	var stored models.Task
	err := r.db.QueryRowContext(ctx,
		"SELECT id, user_id, title, description, status, priority, created_at FROM tasks WHERE id = $1 AND user_id = $2",
		taskID, ownerID).
		Scan(&stored.ID, &stored.UserID, &stored.Title, &stored.Description, &stored.Status, &stored.Priority, &stored.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Task{}, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}

	merged := merge(stored, in)
	_, err = r.db.ExecContext(ctx,
		"UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4 WHERE id = $5 AND user_id = $6",
		merged.Title, merged.Description, merged.Status, merged.Priority, taskID, ownerID)
	if err != nil {
		return models.Task{}, fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	r.invalidate(ctx, ownerID)
	return merged, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, taskID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM tasks WHERE id = $1 AND user_id = $2", taskID, ownerID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorage, err)
	}
	r.invalidate(ctx, ownerID)
	return nil
}
