package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/usecase"
)

type registerPlayerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type renamePlayerRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type playerDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type teamRefDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type playerWithTeamsDTO struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Teams []teamRefDTO `json:"teams"`
}

func (h *Handler) RegisterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterPlayer")
	defer span.End()

	var req registerPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.playerService.Register(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "register player failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, playerToDTO(created))
}

func (h *Handler) RenamePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenamePlayer")
	defer span.End()

	id, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req renamePlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	renamed, err := h.playerService.Rename(ctx, id, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename player failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(renamed))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	id, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.playerService.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	var teamID *int64
	if raw := strings.TrimSpace(r.URL.Query().Get("team_id")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid team_id %q", usecase.ErrInvalidInput, raw))
			return
		}
		teamID = &parsed
	}

	players, err := h.playerService.List(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListPlayersWithTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayersWithTeams")
	defer span.End()

	players, err := h.playerService.ListWithTeams(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list players with teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerWithTeamsDTO, 0, len(players))
	for _, p := range players {
		teams := make([]teamRefDTO, 0, len(p.Teams))
		for _, t := range p.Teams {
			teams = append(teams, teamRefDTO{ID: t.ID, Name: t.Name})
		}
		items = append(items, playerWithTeamsDTO{ID: p.ID, Name: p.Name, Teams: teams})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{ID: v.ID, Name: v.Name}
}
