package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/trixhub/trix-league/internal/platform/logging"
	"github.com/trixhub/trix-league/internal/usecase"
)

// Pinger checks backing-store connectivity for readiness probes.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	playerService  *usecase.PlayerService
	teamService    *usecase.TeamService
	matchService   *usecase.MatchService
	resultsService *usecase.ResultsService
	statsService   *usecase.StatsService
	db             Pinger
	logger         *logging.Logger
	validator      *validator.Validate
}

// NewHandler wires the API surface. db may be nil when the service runs on the
// in-memory store; Readyz then skips the connectivity check.
func NewHandler(
	playerService *usecase.PlayerService,
	teamService *usecase.TeamService,
	matchService *usecase.MatchService,
	resultsService *usecase.ResultsService,
	statsService *usecase.StatsService,
	db Pinger,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:  playerService,
		teamService:    teamService,
		matchService:   matchService,
		resultsService: resultsService,
		statsService:   statsService,
		db:             db,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Readyz")
	defer span.End()

	if h.db == nil {
		writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok", "storage": "memory"})
		return
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorContext(ctx, "readiness ping failed", "error", err)
		writeJSON(ctx, w, http.StatusServiceUnavailable, googleResponseEnvelope{
			APIVersion: googleAPIVersion,
			Error: &googleErrorBody{
				Code:    http.StatusServiceUnavailable,
				Message: "database is unreachable",
				Status:  "UNAVAILABLE",
				Errors: []googleErrorItem{
					{Domain: errorDomain, Reason: "databaseUnreachable", Message: err.Error()},
				},
			},
		})
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok", "storage": "postgres"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", usecase.ErrInvalidInput, name, raw)
	}

	return id, nil
}
