package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/trixhub/trix-league/internal/usecase"
)

type matchResultDTO struct {
	matchDetailDTO
	StarterName *string `json:"starterName"`
	WinnerName  *string `json:"winnerName"`
}

func (h *Handler) ListResultDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResultDates")
	defer span.End()

	dates, err := h.resultsService.ListDates(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list result dates failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dates)
}

func (h *Handler) ListResultsByDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListResultsByDay")
	defer span.End()

	year, err := queryInt(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	day, err := queryInt(r, "day")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.resultsService.ListByDay(ctx, year, month, day)
	if err != nil {
		h.logger.WarnContext(ctx, "list results failed",
			"year", year,
			"month", month,
			"day", day,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchResultDTO, 0, len(results))
	for _, result := range results {
		items = append(items, matchResultDTO{
			matchDetailDTO: matchDetailToDTO(result.Detail),
			StarterName:    result.StarterName,
			WinnerName:     result.WinnerName,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", usecase.ErrInvalidInput, name)
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}

	return value, nil
}
