package server

import (
	"net/http"

	authcommands "github.com/eskrenkovic/table-scheduler/internal/modules/auth/commands"
	authqueries "github.com/eskrenkovic/table-scheduler/internal/modules/auth/queries"
	gamesessioncommands "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/commands"
	gamesessionqueries "github.com/eskrenkovic/table-scheduler/internal/modules/game-session/queries"
	tablecommands "github.com/eskrenkovic/table-scheduler/internal/modules/table/commands"
	tablequeries "github.com/eskrenkovic/table-scheduler/internal/modules/table/queries"

	"github.com/go-chi/chi"
)

func routes(r chi.Router, authenticated func(http.Handler) http.Handler) {
	// anonymous

	r.Post("/auth/registrations", authcommands.HandleRegistration)
	r.Post("/auth/login", authcommands.HandleLogin)
	r.Post("/auth/refresh", authcommands.HandleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(authenticated)

		// auth

		r.Post("/auth/logout", authcommands.HandleLogout)
		r.Put("/auth/password", authcommands.HandleChangePassword)

		r.Get("/users", authqueries.HandleSearchUsers)
		r.Get("/users/me", authqueries.HandleGetCurrentUser)
		r.Patch("/users/me", authcommands.HandleUpdateUser)
		r.Get("/users/me/tables", tablequeries.HandleGetUserTables)

		// table

		r.Post("/tables", tablecommands.HandleCreateTable)
		r.Get("/tables/{id}", tablequeries.HandleGetTable)
		r.Patch("/tables/{id}", tablecommands.HandleUpdateTable)
		r.Delete("/tables/{id}", tablecommands.HandleDeleteTable)

		r.Post("/tables/{id}/requests", tablecommands.HandleCreateTableRequest)
		r.Get("/tables/{id}/requests", tablequeries.HandleGetTableRequests)

		r.Put("/table-requests/{id}/actions/approve", tablecommands.HandleApproveTableRequest)
		r.Put("/table-requests/{id}/actions/reject", tablecommands.HandleRejectTableRequest)
		r.Delete("/table-requests/{id}", tablecommands.HandleCancelTableRequest)

		// game-session

		r.Post("/tables/{id}/sessions", gamesessioncommands.HandleCreateSession)
		r.Get("/tables/{id}/sessions", gamesessionqueries.HandleGetTableSessions)

		r.Get("/sessions/{id}", gamesessionqueries.HandleGetSession)
		r.Patch("/sessions/{id}", gamesessioncommands.HandleUpdateSession)
		r.Delete("/sessions/{id}", gamesessioncommands.HandleDeleteSession)

		r.Put("/sessions/{id}/intent", gamesessioncommands.HandleSetIntent)
		r.Delete("/sessions/{id}/intent", gamesessioncommands.HandleDeleteIntent)
		r.Get("/sessions/{id}/intents", gamesessionqueries.HandleGetSessionIntents)

		r.Post("/intents/{id}/checkin", gamesessioncommands.HandleCreateCheckin)
		r.Patch("/checkins/{id}", gamesessioncommands.HandleUpdateCheckin)
		r.Delete("/checkins/{id}", gamesessioncommands.HandleDeleteCheckin)
		r.Get("/checkins", gamesessionqueries.HandleGetCheckins)
	})
}
