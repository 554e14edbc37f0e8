package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/lifecycle"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
)

type TrashItemInput struct {
	ID uuid.UUID `path:"id" doc:"Entity ID"`
}

type MessageOutput struct {
	Body struct {
		Message string `json:"message"`
	}
}

func messageOutput(msg string) *MessageOutput {
	out := &MessageOutput{}
	out.Body.Message = msg
	return out
}

// registerTrashRoutes wires the three lifecycle transitions for one entity
// kind: DELETE {prefix}/{id} (to trash), POST {prefix}/{id}/restore, and
// DELETE {prefix}/{id}/permanent. onChange, when non-nil, runs after a
// successful transition so callers can publish board events.
func registerTrashRoutes(api huma.API, prefix, kind string, mgr *lifecycle.Manager, onChange func(ctx context.Context, ownerID, id uuid.UUID, event string)) {
	tag := kind + "s"
	lower := strings.ToLower(kind)

	huma.Register(api, huma.Operation{
		OperationID: "trash-" + lower,
		Method:      http.MethodDelete,
		Path:        prefix + "/{id}",
		Summary:     fmt.Sprintf("Move a %s to the trash", lower),
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TrashItemInput) (*MessageOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		msg, err := mgr.SoftDelete(ctx, ownerID, input.ID)
		if err != nil {
			return nil, lifecycleError(err, kind, input.ID)
		}

		if onChange != nil {
			onChange(ctx, ownerID, input.ID, lower+".trashed")
		}
		return messageOutput(msg), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "restore-" + lower,
		Method:      http.MethodPost,
		Path:        prefix + "/{id}/restore",
		Summary:     fmt.Sprintf("Restore a %s from the trash", lower),
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TrashItemInput) (*MessageOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		msg, err := mgr.Restore(ctx, ownerID, input.ID)
		if err != nil {
			return nil, lifecycleError(err, kind, input.ID)
		}

		if onChange != nil {
			onChange(ctx, ownerID, input.ID, lower+".restored")
		}
		return messageOutput(msg), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-" + lower,
		Method:      http.MethodDelete,
		Path:        prefix + "/{id}/permanent",
		Summary:     fmt.Sprintf("Permanently delete a trashed %s", lower),
		Tags:        []string{tag},
	}, func(ctx context.Context, input *TrashItemInput) (*MessageOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		msg, err := mgr.RemovePermanent(ctx, ownerID, input.ID)
		if err != nil {
			return nil, lifecycleError(err, kind, input.ID)
		}

		if onChange != nil {
			onChange(ctx, ownerID, input.ID, lower+".purged")
		}
		return messageOutput(msg), nil
	})
}

func lifecycleError(err error, kind string, id uuid.UUID) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return huma.Error404NotFound(fmt.Sprintf("%s #%s not found", kind, id))
	case errors.Is(err, domain.ErrNotTrashed):
		return huma.Error409Conflict(fmt.Sprintf("%s #%s must be in trash before permanent delete", kind, id))
	}
	return huma.Error500InternalServerError("lifecycle operation failed", err)
}
