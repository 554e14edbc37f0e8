package domain

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
)

// List is a named group of tasks inside a space, addressable by a
// space-unique key.
type List struct {
	ID        uuid.UUID
	SpaceID   uuid.UUID
	Name      string
	Key       string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

const keyAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewListKey derives a key from the list name with a random suffix so that
// two lists with the same name in one space still get distinct keys.
func NewListKey(name string) string {
	base := slugify(name)
	if base == "" {
		base = "list"
	}

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = keyAlphabet[rand.IntN(len(keyAlphabet))]
	}

	return base + "-" + string(suffix)
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	lastHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_':
			if !lastHyphen && b.Len() > 0 {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

type ListRepository interface {
	Create(ctx context.Context, l *List) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*List, error)
	Find(ctx context.Context, ownerID, id uuid.UUID) (*List, error)
	ListBySpace(ctx context.Context, ownerID, spaceID uuid.UUID) ([]*List, error)
	ListTrashedByOwner(ctx context.Context, ownerID uuid.UUID) ([]*List, error)
	Update(ctx context.Context, l *List) error

	// IDsBySpaces returns list ids under the given spaces, filtered by
	// lifecycle state (trashed or active). Used by the cascade walker.
	IDsBySpaces(ctx context.Context, spaceIDs []uuid.UUID, trashed bool) ([]uuid.UUID, error)
	MarkTrashed(ctx context.Context, ids []uuid.UUID, at time.Time) error
	ClearTrashed(ctx context.Context, ids []uuid.UUID) error
	Purge(ctx context.Context, id uuid.UUID) error
}
