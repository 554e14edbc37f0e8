package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
)

type GetBoardInput struct {
	ListID uuid.UUID `path:"listID" doc:"List ID"`
}

// Board groups a list's active tasks by status column, each column ordered by
// position.
type Board struct {
	Todo       []*domain.Task `json:"todo"`
	InProgress []*domain.Task `json:"in_progress"`
	Done       []*domain.Task `json:"done"`
}

type GetBoardOutput struct {
	Body *Board
}

func RegisterBoardRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "get-board",
		Method:      http.MethodGet,
		Path:        "/boards/{listID}",
		Summary:     "Get the kanban board for a list",
		Tags:        []string{"Boards"},
	}, func(ctx context.Context, input *GetBoardInput) (*GetBoardOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		if _, err := store.Lists().GetByID(ctx, ownerID, input.ListID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("list not found")
			}
			return nil, huma.Error500InternalServerError("failed to validate list", err)
		}

		tasks, err := store.Tasks().ListByList(ctx, ownerID, input.ListID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tasks for board", err)
		}

		board := &Board{
			Todo:       make([]*domain.Task, 0),
			InProgress: make([]*domain.Task, 0),
			Done:       make([]*domain.Task, 0),
		}

		// ListByList orders by (status, position), so each column comes out
		// already position-sorted.
		for _, t := range tasks {
			switch t.StatusName {
			case domain.StatusTodo:
				board.Todo = append(board.Todo, t)
			case domain.StatusInProgress:
				board.InProgress = append(board.InProgress, t)
			case domain.StatusDone:
				board.Done = append(board.Done, t)
			}
		}

		return &GetBoardOutput{Body: board}, nil
	})
}
