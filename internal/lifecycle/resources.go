package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// SpaceResource adapts spaces to the lifecycle state machine.
// Cascade chain: Space -> List -> Task -> TaskStatus.
func SpaceResource(ds domain.DataStore) Resource { return spaceResource{ds} }

// ListResource adapts lists. Cascade chain: List -> Task -> TaskStatus.
func ListResource(ds domain.DataStore) Resource { return listResource{ds} }

// TaskResource adapts tasks. Cascade chain: Task -> TaskStatus.
func TaskResource(ds domain.DataStore) Resource { return taskResource{ds} }

type spaceResource struct {
	ds domain.DataStore
}

func (r spaceResource) Label() string { return "Space" }

func (r spaceResource) Find(ctx context.Context, ownerID, id uuid.UUID) (*Entity, error) {
	s, err := r.ds.Spaces().Find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &Entity{ID: s.ID, DeletedAt: s.DeletedAt}, nil
}

func (r spaceResource) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return r.ds.Spaces().MarkTrashed(ctx, ids, at)
}

func (r spaceResource) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return r.ds.Spaces().ClearTrashed(ctx, ids)
}

func (r spaceResource) Purge(ctx context.Context, id uuid.UUID) error {
	return r.ds.Spaces().Purge(ctx, id)
}

func (r spaceResource) Child() Resource { return listResource{r.ds} }

func (r spaceResource) ChildIDs(ctx context.Context, parentIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	return r.ds.Lists().IDsBySpaces(ctx, parentIDs, trashed)
}

type listResource struct {
	ds domain.DataStore
}

func (r listResource) Label() string { return "List" }

func (r listResource) Find(ctx context.Context, ownerID, id uuid.UUID) (*Entity, error) {
	l, err := r.ds.Lists().Find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &Entity{ID: l.ID, DeletedAt: l.DeletedAt}, nil
}

func (r listResource) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return r.ds.Lists().MarkTrashed(ctx, ids, at)
}

func (r listResource) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return r.ds.Lists().ClearTrashed(ctx, ids)
}

func (r listResource) Purge(ctx context.Context, id uuid.UUID) error {
	return r.ds.Lists().Purge(ctx, id)
}

func (r listResource) Child() Resource { return taskResource{r.ds} }

func (r listResource) ChildIDs(ctx context.Context, parentIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	return r.ds.Tasks().IDsByLists(ctx, parentIDs, trashed)
}

type taskResource struct {
	ds domain.DataStore
}

func (r taskResource) Label() string { return "Task" }

func (r taskResource) Find(ctx context.Context, ownerID, id uuid.UUID) (*Entity, error) {
	t, err := r.ds.Tasks().Find(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	return &Entity{ID: t.ID, DeletedAt: t.DeletedAt}, nil
}

func (r taskResource) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return r.ds.Tasks().MarkTrashed(ctx, ids, at)
}

func (r taskResource) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return r.ds.Tasks().ClearTrashed(ctx, ids)
}

func (r taskResource) Purge(ctx context.Context, id uuid.UUID) error {
	return r.ds.Tasks().Purge(ctx, id)
}

func (r taskResource) Child() Resource { return taskStatusResource{r.ds} }

func (r taskResource) ChildIDs(ctx context.Context, parentIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error) {
	return r.ds.TaskStatuses().IDsByTasks(ctx, parentIDs, trashed)
}

// taskStatusResource is the leaf of every cascade chain. Task-status rows are
// never addressed by the manager directly, only swept along with their task.
type taskStatusResource struct {
	ds domain.DataStore
}

func (r taskStatusResource) Label() string { return "TaskStatus" }

func (r taskStatusResource) Find(_ context.Context, _, id uuid.UUID) (*Entity, error) {
	return nil, fmt.Errorf("lifecycle: task status #%s is not directly addressable: %w", id, domain.ErrNotFound)
}

func (r taskStatusResource) MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	return r.ds.TaskStatuses().MarkTrashed(ctx, ids, at)
}

func (r taskStatusResource) ClearTrashed(ctx context.Context, ids []uuid.UUID) error {
	return r.ds.TaskStatuses().ClearTrashed(ctx, ids)
}

func (r taskStatusResource) Purge(_ context.Context, id uuid.UUID) error {
	// Removed by the tasks foreign key cascade.
	return fmt.Errorf("lifecycle: task status #%s is not directly purgeable: %w", id, domain.ErrNotFound)
}

func (r taskStatusResource) Child() Resource { return nil }

func (r taskStatusResource) ChildIDs(_ context.Context, _ []uuid.UUID, _ bool) ([]uuid.UUID, error) {
	return nil, nil
}
