package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/trixhub/trix-league/internal/infrastructure/repository/memory"
	"github.com/trixhub/trix-league/internal/platform/logging"
	"github.com/trixhub/trix-league/internal/usecase"
)

func newTestRouter() http.Handler {
	players := memory.NewPlayerRepository()
	teams := memory.NewTeamRepository(players)
	players.AttachTeams(teams)
	matches := memory.NewMatchRepository(teams)

	logger := logging.NewNop()
	playerSvc := usecase.NewPlayerService(players, logger)
	teamSvc := usecase.NewTeamService(teams, players, logger)
	matchSvc := usecase.NewMatchService(matches, logger)
	resultsSvc := usecase.NewResultsService(matches, players, logger)
	statsSvc := usecase.NewStatsService(matches, teams, players, 2, logger)

	handler := NewHandler(playerSvc, teamSvc, matchSvc, resultsSvc, statsSvc, nil, logger)

	return NewRouter(handler, logger, []string{"*"})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal %s %s response: %v (body %q)", method, path, err, rec.Body.String())
	}

	return rec.Code, envelope
}

func dataObject(t *testing.T, envelope map[string]any) map[string]any {
	t.Helper()

	data, ok := envelope["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %v", envelope["data"])
	}

	return data
}

func errorStatus(t *testing.T, envelope map[string]any) string {
	t.Helper()

	errObj, ok := envelope["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", envelope["error"])
	}
	status, _ := errObj["status"].(string)

	return status
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodGet, "/healthz", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	if got := dataObject(t, envelope)["status"]; got != "ok" {
		t.Fatalf("unexpected health payload: %v", got)
	}
}

func TestHandler_Readyz_MemoryBackend(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodGet, "/readyz", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	data := dataObject(t, envelope)
	if data["storage"] != "memory" {
		t.Fatalf("expected memory storage marker, got %v", data["storage"])
	}
}

func TestHandler_PlayerLifecycle(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/players", `{"name":"Rami"}`)
	if code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %v", code, envelope)
	}
	created := dataObject(t, envelope)
	if created["name"] != "Rami" {
		t.Fatalf("unexpected created player: %v", created)
	}
	id := int64(created["id"].(float64))

	code, envelope = doJSON(t, router, http.MethodPost, "/v1/players", `{"name":"Rami"}`)
	if code != http.StatusConflict {
		t.Fatalf("expected status 409 for duplicate, got %d", code)
	}
	if got := errorStatus(t, envelope); got != "ALREADY_EXISTS" {
		t.Fatalf("expected ALREADY_EXISTS, got %q", got)
	}

	code, envelope = doJSON(t, router, http.MethodPatch, fmt.Sprintf("/v1/players/%d", id), `{"name":"Rami II"}`)
	if code != http.StatusOK {
		t.Fatalf("expected status 200 for rename, got %d: %v", code, envelope)
	}
	if got := dataObject(t, envelope)["name"]; got != "Rami II" {
		t.Fatalf("unexpected renamed player: %v", got)
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/players/999", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", code)
	}
	if got := errorStatus(t, envelope); got != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %q", got)
	}

	code, envelope = doJSON(t, router, http.MethodPost, "/v1/players", `{"name":"Ziad","rank":1}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown field, got %d", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %q", got)
	}
}

func TestHandler_MatchFlow(t *testing.T) {
	router := newTestRouter()

	for _, name := range []string{"Rami", "Samer", "Ziad", "Laith"} {
		code, envelope := doJSON(t, router, http.MethodPost, "/v1/players", fmt.Sprintf(`{"name":%q}`, name))
		if code != http.StatusCreated {
			t.Fatalf("register player %s: status %d: %v", name, code, envelope)
		}
	}

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams", `{"name":"The Aces","player_ids":[1,2]}`)
	if code != http.StatusCreated {
		t.Fatalf("create team: status %d: %v", code, envelope)
	}
	code, envelope = doJSON(t, router, http.MethodPost, "/v1/teams", `{"name":"The Kings","player_ids":[3,4]}`)
	if code != http.StatusCreated {
		t.Fatalf("create team: status %d: %v", code, envelope)
	}

	code, envelope = doJSON(t, router, http.MethodPost, "/v1/teams", `{"name":"Solo","player_ids":[1]}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for one-player roster, got %d", code)
	}

	code, envelope = doJSON(t, router, http.MethodPost, "/v1/matches",
		`{"teamA_id":1,"teamB_id":2,"match_date":"2026-03-01","starter_player_id":3}`)
	if code != http.StatusCreated {
		t.Fatalf("create match: status %d: %v", code, envelope)
	}
	matchID := int64(dataObject(t, envelope)["id"].(float64))

	code, envelope = doJSON(t, router, http.MethodPut, fmt.Sprintf("/v1/matches/%d", matchID),
		`{"rounds":[{"game_type":"trix","round_score":5},{"game_type":"complex","round_score":-2}],"finish":true}`)
	if code != http.StatusOK {
		t.Fatalf("append rounds: status %d: %v", code, envelope)
	}
	detail := dataObject(t, envelope)
	if got := detail["final_score"].(float64); got != -2 {
		t.Fatalf("expected final score -2, got %v", got)
	}
	if got := detail["winner_team_id"].(float64); got != 2 {
		t.Fatalf("expected winner team 2, got %v", got)
	}
	rounds, ok := detail["rounds"].([]any)
	if !ok || len(rounds) != 2 {
		t.Fatalf("expected 2 rounds in detail, got %v", detail["rounds"])
	}
	teamA, ok := detail["teamA"].(map[string]any)
	if !ok || teamA["name"] != "The Aces" {
		t.Fatalf("expected eager-loaded teamA, got %v", detail["teamA"])
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/results/dates", "")
	if code != http.StatusOK {
		t.Fatalf("list result dates: status %d", code)
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/results?year=2026&month=3&day=1", "")
	if code != http.StatusOK {
		t.Fatalf("list results: status %d: %v", code, envelope)
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/results?year=2026&month=3", "")
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for missing day, got %d", code)
	}
}

func TestHandler_StatsRoutes(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/stats/general?kind=referees", "")
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for unknown kind, got %d", code)
	}
	if got := errorStatus(t, envelope); got != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %q", got)
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/stats/teams/1", "")
	if code != http.StatusOK {
		t.Fatalf("team stats: status %d: %v", code, envelope)
	}
	summary := dataObject(t, envelope)
	if summary["winRate"] != "0" {
		t.Fatalf("expected winRate \"0\" with no matches, got %v", summary["winRate"])
	}
	if summary["minWinRounds"] != nil {
		t.Fatalf("expected null minWinRounds, got %v", summary["minWinRounds"])
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/stats/players/42", "")
	if code != http.StatusNotFound {
		t.Fatalf("expected status 404 for unknown player, got %d", code)
	}
}
