package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/lifecycle"
	"github.com/taskdeck/taskdeck/internal/server/middleware"
	redisstore "github.com/taskdeck/taskdeck/internal/store/redis"
)

type CreateTaskInput struct {
	Body struct {
		ListID      uuid.UUID  `json:"list_id" doc:"List ID"`
		Title       string     `json:"title" minLength:"1" maxLength:"500" doc:"Task title"`
		Description string     `json:"description,omitempty" doc:"Task description"`
		StatusID    *uuid.UUID `json:"status_id,omitempty" doc:"Initial status (defaults to todo)"`
	}
}

type CreateTaskOutput struct {
	Body *domain.Task
}

type ListTasksInput struct {
	ListID uuid.UUID `query:"list_id" doc:"Filter by list"`
}

type ListTasksOutput struct {
	Body []*domain.Task
}

type GetTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type GetTaskOutput struct {
	Body *domain.Task
}

type UpdateTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		Title       string  `json:"title,omitempty" maxLength:"500" doc:"Task title"`
		Description *string `json:"description,omitempty" doc:"Task description"`
		IsDone      *bool   `json:"is_done,omitempty" doc:"Completion flag"`
	}
}

type UpdateTaskOutput struct {
	Body *domain.Task
}

type MoveTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		ListID   uuid.UUID `json:"list_id" doc:"Destination list ID"`
		StatusID uuid.UUID `json:"status_id" doc:"Destination status ID"`
		Position int       `json:"position" doc:"Destination position (clamped to the column tail)"`
	}
}

type MoveTaskOutput struct {
	Body *domain.Task
}

// boardEvent is the payload published on a space's board channel.
type boardEvent struct {
	Type string       `json:"type"`
	ID   uuid.UUID    `json:"id"`
	Task *domain.Task `json:"task,omitempty"`
}

func publishBoardEvent(ctx context.Context, events EventPublisher, spaceID uuid.UUID, ev boardEvent) {
	if events == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		log.Warn().Err(err).Str("event", ev.Type).Msg("board event: marshal failed")
		return
	}

	// Best effort: a failed publish never fails the request.
	if err := events.Publish(ctx, redisstore.BoardChannel(spaceID), payload); err != nil {
		log.Warn().Err(err).Str("event", ev.Type).Str("space_id", spaceID.String()).Msg("board event: publish failed")
	}
}

func RegisterTaskRoutes(api huma.API, store DataStore, engine BoardEngine, events EventPublisher) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task at the tail of its column",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		t := &domain.Task{
			ListID:      input.Body.ListID,
			Title:       input.Body.Title,
			Description: input.Body.Description,
		}

		created, err := engine.Create(ctx, ownerID, t, input.Body.StatusID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("list or status not found")
			}
			return nil, huma.Error500InternalServerError("failed to create task", err)
		}

		publishBoardEvent(ctx, events, created.SpaceID, boardEvent{Type: "task.created", ID: created.ID, Task: created})

		return &CreateTaskOutput{Body: created}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks, optionally scoped to a list",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		var (
			tasks []*domain.Task
			err   error
		)
		if input.ListID != uuid.Nil {
			tasks, err = store.Tasks().ListByList(ctx, ownerID, input.ListID)
		} else {
			tasks, err = store.Tasks().ListByOwner(ctx, ownerID)
		}
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tasks", err)
		}

		return &ListTasksOutput{Body: tasks}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-trashed-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/trash",
		Summary:     "List the authenticated user's trashed tasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, _ *struct{}) (*ListTasksOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		tasks, err := store.Tasks().ListTrashedByOwner(ctx, ownerID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list trashed tasks", err)
		}

		return &ListTasksOutput{Body: tasks}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		t, err := store.Tasks().GetByID(ctx, ownerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to get task", err)
		}

		return &GetTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}",
		Summary:     "Update a task's fields",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*UpdateTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		existing, err := store.Tasks().GetByID(ctx, ownerID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to get task", err)
		}

		if input.Body.Title != "" {
			existing.Title = input.Body.Title
		}
		if input.Body.Description != nil {
			existing.Description = *input.Body.Description
		}
		if input.Body.IsDone != nil {
			existing.IsDone = *input.Body.IsDone
		}
		existing.UpdatedAt = time.Now()

		if err := store.Tasks().Update(ctx, existing); err != nil {
			return nil, huma.Error500InternalServerError("failed to update task", err)
		}

		publishBoardEvent(ctx, events, existing.SpaceID, boardEvent{Type: "task.updated", ID: existing.ID, Task: existing})

		return &UpdateTaskOutput{Body: existing}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/move",
		Summary:     "Move a task to a column position",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*MoveTaskOutput, error) {
		ownerID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error403Forbidden("missing user context")
		}

		moved, err := engine.Move(ctx, ownerID, input.ID, input.Body.ListID, input.Body.StatusID, input.Body.Position)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task, list, or status not found")
			}
			return nil, huma.Error500InternalServerError("failed to move task", err)
		}

		publishBoardEvent(ctx, events, moved.SpaceID, boardEvent{Type: "task.moved", ID: moved.ID, Task: moved})

		return &MoveTaskOutput{Body: moved}, nil
	})

	onChange := func(ctx context.Context, ownerID, id uuid.UUID, event string) {
		t, err := store.Tasks().Find(ctx, ownerID, id)
		if err != nil {
			// Purged tasks no longer resolve; nothing to publish to.
			return
		}
		publishBoardEvent(ctx, events, t.SpaceID, boardEvent{Type: event, ID: id})
	}

	registerTrashRoutes(api, "/tasks", "Task", lifecycle.NewManager(store, lifecycle.TaskResource), onChange)
}
