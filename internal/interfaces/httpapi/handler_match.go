package httpapi

import (
	"net/http"
	"time"

	"github.com/trixhub/trix-league/internal/domain/match"
	"github.com/trixhub/trix-league/internal/usecase"
)

type createMatchRequest struct {
	TeamAID         int64  `json:"teamA_id" validate:"required,gt=0"`
	TeamBID         int64  `json:"teamB_id" validate:"required,gt=0"`
	MatchDate       string `json:"match_date" validate:"required"`
	StarterPlayerID *int64 `json:"starter_player_id" validate:"omitempty,gt=0"`
	Notes           string `json:"notes" validate:"max=500"`
}

type roundInputRequest struct {
	GameType     string  `json:"game_type" validate:"required,max=50"`
	RoundScore   int     `json:"round_score"`
	RoundDetails *string `json:"round_details"`
}

type appendRoundsRequest struct {
	StarterPlayerID *int64              `json:"starter_player_id" validate:"omitempty,gt=0"`
	Rounds          []roundInputRequest `json:"rounds" validate:"dive"`
	Finish          bool                `json:"finish"`
}

type matchDTO struct {
	ID              int64  `json:"id"`
	TeamAID         int64  `json:"teamA_id"`
	TeamBID         int64  `json:"teamB_id"`
	MatchDate       string `json:"match_date"`
	StarterPlayerID *int64 `json:"starter_player_id"`
	WinnerTeamID    *int64 `json:"winner_team_id"`
	FinalScore      int    `json:"final_score"`
	Notes           string `json:"notes"`
}

type roundDTO struct {
	ID           int64   `json:"id"`
	MatchID      int64   `json:"match_id"`
	RoundNumber  int     `json:"round_number"`
	GameType     string  `json:"game_type"`
	RoundScore   int     `json:"round_score"`
	RoundDetails *string `json:"round_details"`
}

type matchDetailDTO struct {
	matchDTO
	TeamA  teamWithPlayersDTO `json:"teamA"`
	TeamB  teamWithPlayersDTO `json:"teamB"`
	Rounds []roundDTO         `json:"rounds"`
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		TeamAID:         req.TeamAID,
		TeamBID:         req.TeamBID,
		MatchDate:       req.MatchDate,
		StarterPlayerID: req.StarterPlayerID,
		Notes:           req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed",
			"team_a_id", req.TeamAID,
			"team_b_id", req.TeamBID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(created))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.matchService.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(detail))
}

// AppendRounds applies a round batch and answers with the refreshed match
// detail so the caller sees which rounds were actually accepted.
func (h *Handler) AppendRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AppendRounds")
	defer span.End()

	id, err := pathID(r, "matchID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req appendRoundsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds := make([]match.RoundInput, 0, len(req.Rounds))
	for _, round := range req.Rounds {
		rounds = append(rounds, match.RoundInput{
			GameType:     round.GameType,
			RoundScore:   round.RoundScore,
			RoundDetails: round.RoundDetails,
		})
	}

	err = h.matchService.AppendRounds(ctx, usecase.AppendRoundsInput{
		MatchID:         id,
		StarterPlayerID: req.StarterPlayerID,
		Rounds:          rounds,
		Finish:          req.Finish,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "append rounds failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	detail, err := h.matchService.Get(ctx, id)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchDetailToDTO(detail))
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:              v.ID,
		TeamAID:         v.TeamAID,
		TeamBID:         v.TeamBID,
		MatchDate:       v.MatchDate.UTC().Format(time.RFC3339),
		StarterPlayerID: v.StarterPlayerID,
		WinnerTeamID:    v.WinnerTeamID,
		FinalScore:      v.FinalScore,
		Notes:           v.Notes,
	}
}

func matchDetailToDTO(v match.Detail) matchDetailDTO {
	rounds := make([]roundDTO, 0, len(v.Rounds))
	for _, round := range v.Rounds {
		rounds = append(rounds, roundDTO{
			ID:           round.ID,
			MatchID:      round.MatchID,
			RoundNumber:  round.RoundNumber,
			GameType:     round.GameType,
			RoundScore:   round.RoundScore,
			RoundDetails: round.RoundDetails,
		})
	}

	return matchDetailDTO{
		matchDTO: matchToDTO(v.Match),
		TeamA:    teamWithPlayersToDTO(v.TeamA),
		TeamB:    teamWithPlayersToDTO(v.TeamB),
		Rounds:   rounds,
	}
}
