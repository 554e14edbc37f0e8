// Package lifecycle implements the Active -> Trashed -> Purged state machine
// shared by spaces, lists, and tasks. The three-state logic and its
// parent-to-child cascade are written once against the Resource capability
// interface; per-entity adapters live in resources.go.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Entity is the lifecycle-relevant projection of a row: its id and trash
// marker.
type Entity struct {
	ID        uuid.UUID
	DeletedAt *time.Time
}

// Resource exposes the minimal capabilities the state machine needs from an
// entity kind. Implementations are bound to a DataStore; inside a cascade the
// manager rebuilds the resource chain over the transaction-scoped store so
// every mutation runs on the same transaction.
type Resource interface {
	// Label is the user-facing entity kind ("Space", "List", "Task").
	Label() string
	// Find resolves id in any lifecycle state, scoped to ownerID.
	// Returns domain.ErrNotFound if the id does not resolve to a row.
	Find(ctx context.Context, ownerID, id uuid.UUID) (*Entity, error)
	// MarkTrashed sets the trash marker on the given rows; rows already
	// trashed are left untouched.
	MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error
	// ClearTrashed removes the trash marker from the given rows.
	ClearTrashed(ctx context.Context, ids []uuid.UUID) error
	// Purge hard-deletes the row. Children go with it via storage-level
	// referential cascade.
	Purge(ctx context.Context, id uuid.UUID) error
	// Child returns the dependent resource kind, or nil at the leaf.
	Child() Resource
	// ChildIDs returns ids of direct children of the given parents, filtered
	// by lifecycle state (trashed or active).
	ChildIDs(ctx context.Context, parentIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
}

// Factory builds a resource chain over a DataStore. SpaceResource,
// ListResource, and TaskResource satisfy it.
type Factory func(ds domain.DataStore) Resource

// Manager applies the trash lifecycle to one entity kind.
type Manager struct {
	store    domain.DataStore
	resource Factory
}

func NewManager(store domain.DataStore, resource Factory) *Manager {
	return &Manager{store: store, resource: resource}
}

// SoftDelete moves the entity and its active descendants to the trash as one
// atomic unit. Soft-deleting an entity that is already in the trash is an
// idempotent success.
func (m *Manager) SoftDelete(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	res := m.resource(m.store)

	ent, err := res.Find(ctx, ownerID, id)
	if err != nil {
		return "", fmt.Errorf("lifecycle.SoftDelete: %w", err)
	}

	if ent.DeletedAt == nil {
		now := time.Now()
		err = m.store.InTx(ctx, func(ctx context.Context, ds domain.DataStore) error {
			return trashCascade(ctx, m.resource(ds), []uuid.UUID{id}, now)
		})
		if err != nil {
			return "", fmt.Errorf("lifecycle.SoftDelete: %w", err)
		}
	}

	return fmt.Sprintf("%s #%s moved to trash", res.Label(), id), nil
}

// Restore brings the entity back from the trash, clearing the trash marker on
// the entity and on all its currently-trashed descendants. Restoring an
// active entity is a no-op success.
func (m *Manager) Restore(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	res := m.resource(m.store)

	ent, err := res.Find(ctx, ownerID, id)
	if err != nil {
		return "", fmt.Errorf("lifecycle.Restore: %w", err)
	}

	if ent.DeletedAt != nil {
		err = m.store.InTx(ctx, func(ctx context.Context, ds domain.DataStore) error {
			return restoreCascade(ctx, m.resource(ds), []uuid.UUID{id})
		})
		if err != nil {
			return "", fmt.Errorf("lifecycle.Restore: %w", err)
		}
	}

	return fmt.Sprintf("%s #%s restored", res.Label(), id), nil
}

// RemovePermanent irreversibly deletes a trashed entity and everything under
// it. Calling it on an active entity fails with domain.ErrNotTrashed and
// leaves the entity untouched.
func (m *Manager) RemovePermanent(ctx context.Context, ownerID, id uuid.UUID) (string, error) {
	res := m.resource(m.store)

	ent, err := res.Find(ctx, ownerID, id)
	if err != nil {
		return "", fmt.Errorf("lifecycle.RemovePermanent: %w", err)
	}

	if ent.DeletedAt == nil {
		return "", fmt.Errorf("lifecycle.RemovePermanent: %s #%s: %w", res.Label(), id, domain.ErrNotTrashed)
	}

	if err := res.Purge(ctx, id); err != nil {
		return "", fmt.Errorf("lifecycle.RemovePermanent: %w", err)
	}

	return fmt.Sprintf("%s #%s permanently deleted", res.Label(), id), nil
}

// trashCascade marks the given rows and, depth-first, their active
// descendants. Children already in the trash keep their original trash
// timestamp.
func trashCascade(ctx context.Context, res Resource, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	if child := res.Child(); child != nil {
		childIDs, err := res.ChildIDs(ctx, ids, false)
		if err != nil {
			return err
		}
		if err := trashCascade(ctx, child, childIDs, at); err != nil {
			return err
		}
	}

	return res.MarkTrashed(ctx, ids, at)
}

// restoreCascade clears the trash marker on the given rows and on all trashed
// descendants, regardless of whether those descendants were trashed by the
// parent's cascade or independently beforehand.
func restoreCascade(ctx context.Context, res Resource, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if err := res.ClearTrashed(ctx, ids); err != nil {
		return err
	}

	if child := res.Child(); child != nil {
		childIDs, err := res.ChildIDs(ctx, ids, true)
		if err != nil {
			return err
		}
		if err := restoreCascade(ctx, child, childIDs); err != nil {
			return err
		}
	}

	return nil
}
