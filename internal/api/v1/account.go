package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
)

type GetAccountOutput struct {
	Body *domain.User
}

type UpdateAccountInput struct {
	Body struct {
		Email    *string `json:"email,omitempty" maxLength:"255" doc:"New email"`
		FullName *string `json:"full_name,omitempty" maxLength:"255" doc:"New display name"`
		Password *string `json:"password,omitempty" minLength:"8" maxLength:"128" doc:"New password"` //nolint:gosec // G117: credential DTO
	}
}

type UpdateAccountOutput struct {
	Body *domain.User
}

func RegisterAccountRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-account",
		Method:      http.MethodGet,
		Path:        "/account",
		Summary:     "Get the authenticated user's account",
		Tags:        []string{"Account"},
	}, func(ctx context.Context, _ *struct{}) (*GetAccountOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		user, err := authSvc.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("account not found")
			}
			return nil, huma.Error500InternalServerError("failed to load account", err)
		}

		return &GetAccountOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-account",
		Method:      http.MethodPatch,
		Path:        "/account",
		Summary:     "Update the authenticated user's account",
		Tags:        []string{"Account"},
	}, func(ctx context.Context, input *UpdateAccountInput) (*UpdateAccountOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		user, err := authSvc.UpdateAccount(ctx, userID, auth.AccountUpdate{
			Email:    input.Body.Email,
			FullName: input.Body.FullName,
			Password: input.Body.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("account not found")
			case errors.Is(err, auth.ErrEmailTaken):
				return nil, huma.Error409Conflict("email already registered")
			}
			return nil, huma.Error500InternalServerError("failed to update account", err)
		}

		return &UpdateAccountOutput{Body: user}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-account",
		Method:      http.MethodDelete,
		Path:        "/account",
		Summary:     "Delete the authenticated user's account",
		Tags:        []string{"Account"},
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if err := authSvc.DeleteAccount(ctx, userID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("account not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete account", err)
		}

		return nil, nil
	})
}
