package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Task is a card on the board. Position is the dense zero-based index of the
// task within its column; StatusID/StatusName/SpaceID/ListName are projections
// joined in by the repository for response construction.
type Task struct {
	ID          uuid.UUID
	ListID      uuid.UUID
	Title       string
	Description string
	IsDone      bool
	Position    int
	StatusID    *uuid.UUID
	SpaceID     uuid.UUID
	ListName    string
	StatusName  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// TaskStatus links a task to its current status. The row is soft-deletable
// independently of the task ("status cleared" is distinct from "task in
// trash") and persists for the task's lifetime once created.
type TaskStatus struct {
	ID        uuid.UUID
	TaskID    uuid.UUID
	StatusID  uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Column identifies the set of tasks sharing a (list, status) pair: the unit
// over which positions are dense and unique.
type Column struct {
	ListID   uuid.UUID
	StatusID uuid.UUID
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	// GetByID returns an active task owned (via its space) by ownerID, with
	// list and status projections populated.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Task, error)
	// Find returns the task in any lifecycle state.
	Find(ctx context.Context, ownerID, id uuid.UUID) (*Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Task, error)
	ListByList(ctx context.Context, ownerID, listID uuid.UUID) ([]*Task, error)
	ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Task, error)
	Update(ctx context.Context, t *Task) error

	// Ordering primitives. All operate on active tasks only and exclude the
	// task identified by exclude from their scans; shifts must run inside the
	// same transaction as the moved task's own relocation.
	LockLists(ctx context.Context, listIDs ...uuid.UUID) error
	MaxPosition(ctx context.Context, c Column, exclude uuid.UUID) (int, error)
	ShiftDown(ctx context.Context, c Column, after int, exclude uuid.UUID) error
	ShiftUp(ctx context.Context, c Column, from int, exclude uuid.UUID) error
	Place(ctx context.Context, id, listID uuid.UUID, position int) error

	// Lifecycle primitives.
	IDsByLists(ctx context.Context, listIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
	MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error
	ClearTrashed(ctx context.Context, ids []uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
}

type TaskStatusRepository interface {
	Create(ctx context.Context, ts *TaskStatus) error
	// FindByTask returns the link row in any lifecycle state.
	FindByTask(ctx context.Context, taskID uuid.UUID) (*TaskStatus, error)
	// SetStatus repoints the link row at statusID, restoring it first if it
	// had been soft-deleted.
	SetStatus(ctx context.Context, taskID, statusID uuid.UUID) error

	IDsByTasks(ctx context.Context, taskIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
	MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error
	ClearTrashed(ctx context.Context, ids []uuid.UUID) error
}
