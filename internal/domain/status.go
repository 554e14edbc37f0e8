package domain

import (
	"context"

	"github.com/google/uuid"
)

// Status is immutable reference data: the fixed vocabulary of task states
// ("todo", "in-progress", "done") seeded by migration. Statuses are global,
// not owner-scoped.
type Status struct {
	ID   uuid.UUID
	Name string
}

// Seeded status names.
const (
	StatusTodo       = "todo"
	StatusInProgress = "in-progress"
	StatusDone       = "done"
)

type StatusRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Status, error)
	GetByName(ctx context.Context, name string) (*Status, error)
	List(ctx context.Context) ([]*Status, error)
}
