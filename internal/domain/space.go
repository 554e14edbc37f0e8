package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Space is the top-level container a user owns. Lists live inside a space.
// A nil DeletedAt means the space is active; a set DeletedAt means it sits
// in the trash and can be restored or permanently deleted.
type Space struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type SpaceRepository interface {
	Create(ctx context.Context, s *Space) error
	// GetByID returns an active space owned by ownerID.
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Space, error)
	// Find returns the space in any lifecycle state.
	Find(ctx context.Context, ownerID, id uuid.UUID) (*Space, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Space, error)
	ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Space, error)
	Update(ctx context.Context, s *Space) error

	// Lifecycle primitives. MarkTrashed only touches active rows and
	// ClearTrashed only trashed rows, so cascades cannot flip unrelated state.
	MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error
	ClearTrashed(ctx context.Context, ids []uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
}
