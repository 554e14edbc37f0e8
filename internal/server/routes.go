package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/taskdeck/taskdeck/internal/api/v1"
	"github.com/taskdeck/taskdeck/internal/api/ws"
	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/board"
	"github.com/taskdeck/taskdeck/internal/store/postgres"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service, engine *board.Engine, hub *ws.Hub) {
	v1.RegisterAccountRoutes(api, authSvc)
	v1.RegisterSpaceRoutes(api, store)
	v1.RegisterListRoutes(api, store)
	v1.RegisterStatusRoutes(api, store)
	v1.RegisterTaskRoutes(api, store, engine, hub)
	v1.RegisterBoardRoutes(api, store)
	v1.RegisterStatsRoutes(api, store)
}

func registerWSRoutes(r chi.Router, hub *ws.Hub) {
	r.Get("/board/{spaceID}", hub.ServeBoard)
}
