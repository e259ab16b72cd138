package httpapi

import (
	"net/http"

	"github.com/trixhub/trix-league/internal/domain/team"
)

type createTeamRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	PlayerIDs []int64 `json:"player_ids" validate:"required,len=2,dive,gt=0"`
}

type teamDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamWithPlayersDTO struct {
	ID      int64       `json:"id"`
	Name    string      `json:"name"`
	Players []playerDTO `json:"players"`
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req createTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.teamService.Create(ctx, req.Name, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(created))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	id, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.teamService.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(t))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name}
}

func teamWithPlayersToDTO(v team.WithPlayers) teamWithPlayersDTO {
	players := make([]playerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerToDTO(p))
	}

	return teamWithPlayersDTO{ID: v.ID, Name: v.Name, Players: players}
}
