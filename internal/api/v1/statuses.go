package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdeck/taskdeck/internal/domain"
)

type ListStatusesOutput struct {
	Body []*domain.Status
}

func RegisterStatusRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-statuses",
		Method:      http.MethodGet,
		Path:        "/statuses",
		Summary:     "List the available task statuses",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, _ *struct{}) (*ListStatusesOutput, error) {
		statuses, err := store.Statuses().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list statuses", err)
		}

		return &ListStatusesOutput{Body: statuses}, nil
	})
}
