package domain

import (
	"context"

	"github.com/google/uuid"
)

// StatsSummary aggregates a user's active board state.
type StatsSummary struct {
	Spaces     int
	Todo       int
	InProgress int
	Done       int
}

type StatsRepository interface {
	SummaryByOwner(ctx context.Context, ownerID uuid.UUID) (*StatsSummary, error)
}

// DataStore is the repository accessor surface the services and handlers are
// written against. *postgres.Store satisfies it. InTx runs fn against a
// transaction-bound DataStore; the transaction commits when fn returns nil and
// rolls back otherwise, so multi-repository sequences (cascaded trash, the
// move shift pair) apply atomically or not at all.
type DataStore interface {
	Users() UserRepository
	Spaces() SpaceRepository
	Lists() ListRepository
	Statuses() StatusRepository
	Tasks() TaskRepository
	TaskStatuses() TaskStatusRepository
	Stats() StatsRepository

	InTx(ctx context.Context, fn func(ctx context.Context, ds DataStore) error) error
}
