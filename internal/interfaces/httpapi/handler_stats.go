package httpapi

import (
	"net/http"
	"strings"

	"github.com/trixhub/trix-league/internal/usecase"
)

type statsSummaryDTO struct {
	TotalMatches      int     `json:"totalMatches"`
	Wins              int     `json:"wins"`
	Losses            int     `json:"losses"`
	WinRate           string  `json:"winRate"`
	MostPlayedAgainst *string `json:"mostPlayedAgainst"`
	MinWinRounds      *int    `json:"minWinRounds"`
	MinLoseRounds     *int    `json:"minLoseRounds"`
}

type statBlockDTO struct {
	Key            string         `json:"key"`
	Title          string         `json:"title"`
	Unit           string         `json:"unit"`
	HighlightLabel string         `json:"highlightLabel"`
	List           []statEntryDTO `json:"list"`
}

type statEntryDTO struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (h *Handler) GetTeamStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamStats")
	defer span.End()

	id, err := pathID(r, "teamID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.statsService.TeamStats(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "team stats failed", "team_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsSummaryToDTO(summary))
}

func (h *Handler) GetPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerStats")
	defer span.End()

	id, err := pathID(r, "playerID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.statsService.PlayerStats(ctx, id)
	if err != nil {
		h.logger.WarnContext(ctx, "player stats failed", "player_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statsSummaryToDTO(summary))
}

func (h *Handler) GetGeneralStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGeneralStats")
	defer span.End()

	kind := strings.TrimSpace(r.URL.Query().Get("kind"))
	blocks, err := h.statsService.GeneralStats(ctx, kind)
	if err != nil {
		h.logger.WarnContext(ctx, "general stats failed", "kind", kind, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statBlockDTO, 0, len(blocks))
	for _, block := range blocks {
		entries := make([]statEntryDTO, 0, len(block.List))
		for _, entry := range block.List {
			entries = append(entries, statEntryDTO{ID: entry.ID, Name: entry.Name, Value: entry.Value})
		}
		items = append(items, statBlockDTO{
			Key:            block.Key,
			Title:          block.Title,
			Unit:           block.Unit,
			HighlightLabel: block.HighlightLabel,
			List:           entries,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func statsSummaryToDTO(v usecase.StatsSummary) statsSummaryDTO {
	return statsSummaryDTO{
		TotalMatches:      v.TotalMatches,
		Wins:              v.Wins,
		Losses:            v.Losses,
		WinRate:           v.WinRate,
		MostPlayedAgainst: v.MostPlayedAgainst,
		MinWinRounds:      v.MinWinRounds,
		MinLoseRounds:     v.MinLoseRounds,
	}
}
