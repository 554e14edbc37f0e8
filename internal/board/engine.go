// Package board maintains the dense zero-based ordering of tasks within a
// (list, status) column and executes atomic moves between columns.
package board

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
)

// Engine is the position ordering engine. Every active task in a column
// occupies exactly one position in 0..n-1; Create appends at the tail and
// Move relocates a task between columns while closing the gap it leaves and
// opening a slot where it lands. All multi-row sequences run inside a single
// transaction with the owning list rows locked, so concurrent column
// mutations serialize instead of racing into duplicate or gapped positions.
type Engine struct {
	store           domain.DataStore
	defaultStatusID uuid.UUID
}

func NewEngine(store domain.DataStore, defaultStatusID uuid.UUID) *Engine {
	return &Engine{store: store, defaultStatusID: defaultStatusID}
}

// DefaultStatusID returns the status assigned to tasks created without one.
func (e *Engine) DefaultStatusID() uuid.UUID { return e.defaultStatusID }

// Create inserts a new task at the tail of its column and links it to
// statusID (the default status when statusID is nil). The target list and
// status must exist.
func (e *Engine) Create(ctx context.Context, ownerID uuid.UUID, t *domain.Task, statusID *uuid.UUID) (*domain.Task, error) {
	if _, err := e.store.Lists().GetByID(ctx, ownerID, t.ListID); err != nil {
		return nil, fmt.Errorf("board.Create: list: %w", err)
	}

	sid := e.defaultStatusID
	if statusID != nil {
		sid = *statusID
		if _, err := e.store.Statuses().GetByID(ctx, sid); err != nil {
			return nil, fmt.Errorf("board.Create: status: %w", err)
		}
	}

	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	var created *domain.Task
	err := e.store.InTx(ctx, func(ctx context.Context, ds domain.DataStore) error {
		// Serializes concurrent creates and moves in this list's columns.
		if err := ds.Tasks().LockLists(ctx, t.ListID); err != nil {
			return err
		}

		maxPos, err := ds.Tasks().MaxPosition(ctx, domain.Column{ListID: t.ListID, StatusID: sid}, uuid.Nil)
		if err != nil {
			return err
		}
		t.Position = maxPos + 1

		if err := ds.Tasks().Create(ctx, t); err != nil {
			return err
		}

		ts := &domain.TaskStatus{
			ID:        uuid.New(),
			TaskID:    t.ID,
			StatusID:  sid,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := ds.TaskStatuses().Create(ctx, ts); err != nil {
			return err
		}

		created, err = ds.Tasks().GetByID(ctx, ownerID, t.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("board.Create: %w", err)
	}

	return created, nil
}

// Move relocates a task to (toListID, toStatusID) at toPos, clamped to
// max(0, toPos). The source column's gap is closed, the destination column's
// slot is opened, and the task's own row plus its status link are updated,
// all in one transaction; positions beyond the destination tail degrade to an
// append. Returns the moved task reloaded with its projections.
func (e *Engine) Move(ctx context.Context, ownerID, taskID, toListID, toStatusID uuid.UUID, toPos int) (*domain.Task, error) {
	if _, err := e.store.Lists().GetByID(ctx, ownerID, toListID); err != nil {
		return nil, fmt.Errorf("board.Move: list: %w", err)
	}
	if _, err := e.store.Statuses().GetByID(ctx, toStatusID); err != nil {
		return nil, fmt.Errorf("board.Move: status: %w", err)
	}

	toPos = max(0, toPos)

	var moved *domain.Task
	err := e.store.InTx(ctx, func(ctx context.Context, ds domain.DataStore) error {
		task, err := ds.Tasks().GetByID(ctx, ownerID, taskID)
		if err != nil {
			return err
		}
		if task.StatusID == nil {
			return fmt.Errorf("task #%s has no active status link: %w", taskID, domain.ErrNotFound)
		}

		from := domain.Column{ListID: task.ListID, StatusID: *task.StatusID}
		to := domain.Column{ListID: toListID, StatusID: toStatusID}

		// Lock both owning lists in deterministic order to avoid deadlock
		// between two opposed cross-list moves.
		listIDs := []uuid.UUID{from.ListID}
		if to.ListID != from.ListID {
			listIDs = append(listIDs, to.ListID)
			slices.SortFunc(listIDs, func(a, b uuid.UUID) int {
				return slices.Compare(a[:], b[:])
			})
		}
		if err := ds.Tasks().LockLists(ctx, listIDs...); err != nil {
			return err
		}

		// Clamp a position past the destination tail to an append. The moving
		// task never counts toward the destination length, so a same-column
		// move to the end stays in range.
		destMax, err := ds.Tasks().MaxPosition(ctx, to, task.ID)
		if err != nil {
			return err
		}
		toPos = min(toPos, destMax+1)

		// Close the gap the task leaves behind, then open a slot where it
		// lands. The moving task is excluded from both scans; its own row is
		// rewritten below.
		if err := ds.Tasks().ShiftDown(ctx, from, task.Position, task.ID); err != nil {
			return err
		}
		if err := ds.Tasks().ShiftUp(ctx, to, toPos, task.ID); err != nil {
			return err
		}

		if err := ds.Tasks().Place(ctx, task.ID, to.ListID, toPos); err != nil {
			return err
		}

		if to.StatusID != from.StatusID {
			if err := ds.TaskStatuses().SetStatus(ctx, task.ID, to.StatusID); err != nil {
				return err
			}
		}

		moved, err = ds.Tasks().GetByID(ctx, ownerID, task.ID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("board.Move: %w", err)
	}

	return moved, nil
}
