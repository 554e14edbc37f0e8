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

type CreateSpaceInput struct {
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Space name"`
	}
}

type CreateSpaceOutput struct {
	Body *domain.Space
}

type ListSpacesOutput struct {
	Body []*domain.Space
}

type UpdateSpaceInput struct {
	ID   uuid.UUID `path:"id" doc:"Space ID"`
	Body struct {
		Name string `json:"name" minLength:"1" maxLength:"255" doc:"Space name"`
	}
}

type UpdateSpaceOutput struct {
	Body *domain.Space
}

func RegisterSpaceRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-space",
		Method:      http.MethodPost,
		Path:        "/spaces",
		Summary:     "Create a new space",
		Tags:        []string{"Spaces"},
	}, func(ctx context.Context, input *CreateSpaceInput) (*CreateSpaceOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		now := time.Now()
		s := &domain.Space{
			ID:        uuid.New(),
			OwnerID:   ownerID,
			Name:      input.Body.Name,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := store.Spaces().Create(ctx, s); err != nil {
			return nil, huma.Error500InternalServerError("failed to create space", err)
		}

		return &CreateSpaceOutput{Body: s}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-spaces",
		Method:      http.MethodGet,
		Path:        "/spaces",
		Summary:     "List the authenticated user's spaces",
		Tags:        []string{"Spaces"},
	}, func(ctx context.Context, _ *struct{}) (*ListSpacesOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		spaces, err := store.Spaces().ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list spaces", err)
		}

		return &ListSpacesOutput{Body: spaces}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-trashed-spaces",
		Method:      http.MethodGet,
		Path:        "/spaces/trash",
		Summary:     "List the authenticated user's trashed spaces",
		Tags:        []string{"Spaces"},
	}, func(ctx context.Context, _ *struct{}) (*ListSpacesOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		spaces, err := store.Spaces().ListTrashedByOwner(ctx, ownerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list trashed spaces", err)
		}

		return &ListSpacesOutput{Body: spaces}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-space",
		Method:      http.MethodPatch,
		Path:        "/spaces/{id}",
		Summary:     "Rename a space",
		Tags:        []string{"Spaces"},
	}, func(ctx context.Context, input *UpdateSpaceInput) (*UpdateSpaceOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		s, err := store.Spaces().GetByID(ctx, ownerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("space not found")
			}
			return nil, huma.Error500InternalServerError("failed to get space", err)
		}

		s.Name = input.Body.Name
		s.UpdatedAt = time.Now()

		if err := store.Spaces().Update(ctx, s); err != nil {
			return nil, huma.Error500InternalServerError("failed to update space", err)
		}

		return &UpdateSpaceOutput{Body: s}, nil
	})

	registerTrashRoutes(api, "/spaces", "Space", lifecycle.NewManager(store, lifecycle.SpaceResource), nil)
}
