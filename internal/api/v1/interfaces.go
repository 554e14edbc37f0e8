package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// DataStore is the repository accessor surface handlers run against.
// *postgres.Store satisfies it; tests substitute a mock.
type DataStore = domain.DataStore

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateAccount(ctx context.Context, userID uuid.UUID, upd auth.AccountUpdate) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// BoardEngine abstracts the ordering engine for handler testing.
// *board.Engine satisfies this interface.
type BoardEngine interface {
	DefaultStatusID() uuid.UUID
	Create(ctx context.Context, ownerID uuid.UUID, t *domain.Task, statusID *uuid.UUID) (*domain.Task, error)
	Move(ctx context.Context, ownerID, taskID, toListID, toStatusID uuid.UUID, toPos int) (*domain.Task, error)
}

// EventPublisher fans board events out to live subscribers. *redis.PubSub
// satisfies this interface; a nil publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}
