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

type TaskRepo struct {
	db DB
}

func NewTaskRepo(db DB) *TaskRepo {
	return &TaskRepo{db: db}
}

// taskSelect joins the task's list (for the name projection and owner
// scoping) and its active status link. The status columns are left joins so
// a task whose status link was independently cleared still scans.
const taskSelect = `
	SELECT t.id, t.list_id, t.title, t.description, t.is_done, t.position,
	       ts.status_id, st.name, s.id, l.name, t.created_at, t.updated_at, t.deleted_at
	FROM tasks t
	JOIN lists l ON l.id = t.list_id
	JOIN spaces s ON s.id = l.space_id
	LEFT JOIN task_statuses ts ON ts.task_id = t.id AND ts.deleted_at IS NULL
	LEFT JOIN statuses st ON st.id = ts.status_id`

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tasks (id, list_id, title, description, is_done, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.ListID, t.Title, t.Description, t.IsDone, t.Position, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return r.get(ctx, "taskRepo.GetByID",
		taskSelect+` WHERE s.owner_id = $1 AND t.id = $2 AND t.deleted_at IS NULL`,
		ownerID, id)
}

func (r *TaskRepo) Find(ctx context.Context, ownerID, id uuid.UUID) (*domain.Task, error) {
	return r.get(ctx, "taskRepo.Find",
		taskSelect+` WHERE s.owner_id = $1 AND t.id = $2`,
		ownerID, id)
}

func (r *TaskRepo) get(ctx context.Context, caller, query string, args ...any) (*domain.Task, error) {
	var (
		t          domain.Task
		statusName *string
	)

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&t.ID, &t.ListID, &t.Title, &t.Description, &t.IsDone, &t.Position,
		&t.StatusID, &statusName, &t.SpaceID, &t.ListName, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", caller, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", caller, err)
	}

	if statusName != nil {
		t.StatusName = *statusName
	}

	return &t, nil
}

func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		taskSelect+` WHERE s.owner_id = $1 AND t.deleted_at IS NULL
		 ORDER BY t.created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByOwner: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByOwner")
}

func (r *TaskRepo) ListByList(ctx context.Context, ownerID, listID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		taskSelect+` WHERE s.owner_id = $1 AND t.list_id = $2 AND t.deleted_at IS NULL
		 ORDER BY ts.status_id, t.position`,
		ownerID, listID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByList: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByList")
}

func (r *TaskRepo) ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx,
		taskSelect+` WHERE s.owner_id = $1 AND t.deleted_at IS NOT NULL
		 ORDER BY t.deleted_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListTrashedByOwner: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListTrashedByOwner")
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, is_done = $3, list_id = $4, updated_at = now()
		 WHERE id = $5 AND deleted_at IS NULL`,
		t.Title, t.Description, t.IsDone, t.ListID, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

// LockLists takes row locks on the given list rows, serializing column
// mutations under those lists for the rest of the transaction. Callers pass
// ids in a deterministic order.
func (r *TaskRepo) LockLists(ctx context.Context, listIDs ...uuid.UUID) error {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM lists WHERE id = ANY($1) ORDER BY id FOR UPDATE`,
		listIDs,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.LockLists: %w", err)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return fmt.Errorf("taskRepo.LockLists: %w", err)
	}

	return nil
}

func (r *TaskRepo) MaxPosition(ctx context.Context, c domain.Column, exclude uuid.UUID) (int, error) {
	var maxPos int

	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(MAX(t.position), -1)
		 FROM tasks t
		 JOIN task_statuses ts ON ts.task_id = t.id
		 WHERE t.list_id = $1 AND t.deleted_at IS NULL AND t.id <> $3
		   AND ts.deleted_at IS NULL AND ts.status_id = $2`,
		c.ListID, c.StatusID, exclude,
	).Scan(&maxPos)
	if err != nil {
		return 0, fmt.Errorf("taskRepo.MaxPosition: %w", err)
	}

	return maxPos, nil
}

func (r *TaskRepo) ShiftDown(ctx context.Context, c domain.Column, after int, exclude uuid.UUID) error {
	return r.shift(ctx, "taskRepo.ShiftDown",
		`UPDATE tasks SET position = position - 1, updated_at = now()
		 WHERE list_id = $1 AND deleted_at IS NULL AND position > $2 AND id <> $3
		   AND id IN (SELECT ts.task_id FROM task_statuses ts
		              WHERE ts.deleted_at IS NULL AND ts.status_id = $4)`,
		c, after, exclude)
}

func (r *TaskRepo) ShiftUp(ctx context.Context, c domain.Column, from int, exclude uuid.UUID) error {
	return r.shift(ctx, "taskRepo.ShiftUp",
		`UPDATE tasks SET position = position + 1, updated_at = now()
		 WHERE list_id = $1 AND deleted_at IS NULL AND position >= $2 AND id <> $3
		   AND id IN (SELECT ts.task_id FROM task_statuses ts
		              WHERE ts.deleted_at IS NULL AND ts.status_id = $4)`,
		c, from, exclude)
}

func (r *TaskRepo) shift(ctx context.Context, caller, query string, c domain.Column, boundary int, exclude uuid.UUID) error {
	_, err := r.db.Exec(ctx, query, c.ListID, boundary, exclude, c.StatusID)
	if err != nil {
		return fmt.Errorf("%s: %w", caller, err)
	}

	return nil
}

func (r *TaskRepo) Place(ctx context.Context, id, listID uuid.UUID, position int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE tasks SET list_id = $1, position = $2, updated_at = now()
		 WHERE id = $3 AND deleted_at IS NULL`,
		listID, position, id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Place: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) IDsByLists(ctx context.Context, listIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id FROM tasks
		 WHERE list_id = ANY($1) AND (deleted_at IS NOT NULL) = $2`,
		listIDs, trashed,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.IDsByLists: %w", err)
	}
	defer rows.Close()

	return scanIDs(rows, "taskRepo.IDsByLists")
}

func (r *TaskRepo) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET deleted_at = $2, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NULL`,
		ids, at,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.MarkTrashed: %w", err)
	}

	return nil
}

func (r *TaskRepo) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tasks SET deleted_at = NULL, updated_at = now()
		 WHERE id = ANY($1) AND deleted_at IS NOT NULL`,
		ids,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.ClearTrashed: %w", err)
	}

	return nil
}

func (r *TaskRepo) Purge(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("taskRepo.Purge: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Purge: %w", domain.ErrNotFound)
	}

	return nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var (
			t          domain.Task
			statusName *string
		)
		if err := rows.Scan(
			&t.ID, &t.ListID, &t.Title, &t.Description, &t.IsDone, &t.Position,
			&t.StatusID, &statusName, &t.SpaceID, &t.ListName, &t.CreatedAt, &t.UpdatedAt, &t.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		if statusName != nil {
			t.StatusName = *statusName
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
