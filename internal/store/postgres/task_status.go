package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type TaskStatusRepo struct {
	db DB
}

func NewTaskStatusRepo(db DB) *TaskStatusRepo {
	return &TaskStatusRepo{db: db}
}

func (r *TaskStatusRepo) Create(ctx context.Context, ts *domain.TaskStatus) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO task_statuses (id, task_id, status_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		ts.ID, ts.TaskID, ts.StatusID, ts.CreatedAt, ts.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("taskStatusRepo.Create: %w", domain.ErrConflict)
		}
		return fmt.Errorf("taskStatusRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskStatusRepo) FindByTask(ctx context.Context, taskID uuid.UUID) (*domain.TaskStatus, error) {
	var ts domain.TaskStatus

	err := r.db.QueryRow(ctx,
		`SELECT id, task_id, status_id, created_at, updated_at, deleted_at
		 FROM task_statuses WHERE task_id = $1`,
		taskID,
	).Scan(&ts.ID, &ts.TaskID, &ts.StatusID, &ts.CreatedAt, &ts.UpdatedAt, &ts.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskStatusRepo.FindByTask: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskStatusRepo.FindByTask: %w", err)
	}

	return &ts, nil
}

func (r *TaskStatusRepo) SetStatus(ctx context.Context, taskID, statusID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE task_statuses SET status_id = $1, deleted_at = NULL, updated_at = now()
		 WHERE task_id = $2`,
		statusID, taskID,
	)
	if err != nil {
		return fmt.Errorf("taskStatusRepo.SetStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskStatusRepo.SetStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskStatusRepo) IDsByTasks(ctx context.Context, taskIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM task_statuses
		 WHERE task_id = ANY($1) AND (deleted_at IS NOT NULL) = $2`,
		taskIDs, trashed,
	)
	if err != nil {
		return nil, fmt.Errorf("taskStatusRepo.IDsByTasks: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows, "taskStatusRepo.IDsByTasks")
}

func (r *TaskStatusRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE task_statuses SET deleted_at = $2, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NULL`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("taskStatusRepo.MarkTrashed: %w", err)
	}

	return nil
}

func (r *TaskStatusRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE task_statuses SET deleted_at = NULL, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NOT NULL`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("taskStatusRepo.ClearTrashed: %w", err)
	}

	return nil
}
