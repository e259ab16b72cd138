package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.HandleFunc("GET /readyz", handler.Readyz)
}

func registerRegistryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("POST /v1/players", handler.RegisterPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("PATCH /v1/players/{playerID}", handler.RenamePlayer)
	mux.HandleFunc("GET /v1/players-with-teams", handler.ListPlayersWithTeams)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("POST /v1/teams", handler.CreateTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
}

func registerMatchRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/matches", handler.CreateMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("PUT /v1/matches/{matchID}", handler.AppendRounds)
	mux.HandleFunc("GET /v1/results/dates", handler.ListResultDates)
	mux.HandleFunc("GET /v1/results", handler.ListResultsByDay)
}

func registerStatsRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/stats/teams/{teamID}", handler.GetTeamStats)
	mux.HandleFunc("GET /v1/stats/players/{playerID}", handler.GetPlayerStats)
	mux.HandleFunc("GET /v1/stats/general", handler.GetGeneralStats)
}
