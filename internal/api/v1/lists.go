package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/lifecycle"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
)

type CreateListInput struct {
	Body struct {
		SpaceID uuid.UUID `json:"space_id" doc:"Space ID"`
		Name    string    `json:"name" minLength:"1" maxLength:"255" doc:"List name"`
	}
}

type CreateListOutput struct {
	Body *domain.List
}

type ListListsInput struct {
	SpaceID uuid.UUID `query:"space_id" required:"true" doc:"Space ID"`
}

type ListListsOutput struct {
	Body []*domain.List
}

type TrashedListsOutput struct {
	Body []*domain.List
}

type UpdateListInput struct {
	ID   uuid.UUID `path:"id" doc:"List ID"`
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"List name"`
	}
}

type UpdateListOutput struct {
	Body *domain.List
}

func RegisterListRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-list",
		Method:      http.MethodPost,
		Path:        "/lists",
		Summary:     "Create a new list in a space",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *CreateListInput) (*CreateListOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if _, err := store.Spaces().GetByID(ctx, ownerID, input.Body.SpaceID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("space not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate space", err)
		}

		now := time.Now()
		l := &domain.List{
			ID:        uuid.New(),
			SpaceID:   input.Body.SpaceID,
			Name:      input.Body.Name,
			Key:       domain.NewListKey(input.Body.Name),
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Lists().Create(ctx, l); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("list key already exists in space")
			}
			return nil, huma.Error500InternalServerError("failed to create list", err)
		}

		return &CreateListOutput{Body: l}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-lists",
		Method:      http.MethodGet,
		Path:        "/lists",
		Summary:     "List the lists in a space",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *ListListsInput) (*ListListsOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		lists, err := store.Lists().ListBySpace(ctx, ownerID, input.SpaceID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list lists", err)
		}

		return &ListListsOutput{Body: lists}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-trashed-lists",
		Method:      http.MethodGet,
		Path:        "/lists/trash",
		Summary:     "List the authenticated user's trashed lists",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, _ *struct{}) (*TrashedListsOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		lists, err := store.Lists().ListTrashedByOwner(ctx, ownerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list trashed lists", err)
		}

		return &TrashedListsOutput{Body: lists}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-list",
		Method:      http.MethodPatch,
		Path:        "/lists/{id}",
		Summary:     "Rename a list",
		Tags:        []string{"Lists"},
	}, func(ctx context.Context, input *UpdateListInput) (*UpdateListOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		l, err := store.Lists().GetByID(ctx, ownerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("list not found")
			}
			return nil, huma.Error500InternalServerError("failed to get list", err)
		}

		// Renaming keeps the key stable so existing client references survive.
		l.Name = input.Body.Name
		l.UpdatedAt = time.Now()

		if err := store.Lists().Update(ctx, l); err != nil {
			return nil, huma.Error500InternalServerError("failed to update list", err)
		}

		return &UpdateListOutput{Body: l}, nil
	})

	registerTrashRoutes(api, "/lists", "List", lifecycle.NewManager(store, lifecycle.ListResource), nil)
}
