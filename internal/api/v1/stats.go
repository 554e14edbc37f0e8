package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
)

type StatsSummaryOutput struct {
	Body *domain.StatsSummary
}

func RegisterStatsRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "stats-summary",
		Method:      http.MethodGet,
		Path:        "/stats/summary",
		Summary:     "Get active space and task counts for the authenticated user",
		Tags:        []string{"Stats"},
	}, func(ctx context.Context, _ *struct{}) (*StatsSummaryOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		summary, err := store.Stats().SummaryByOwner(ctx, ownerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to compute stats", err)
		}

		return &StatsSummaryOutput{Body: summary}, nil
	})
}
