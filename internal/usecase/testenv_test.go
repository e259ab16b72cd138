package usecase

import (
	"testing"

	"github.com/trixhub/trix-league/internal/domain/match"
	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/domain/team"
	"github.com/trixhub/trix-league/internal/infrastructure/repository/memory"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

// testEnv wires the full service stack on top of in-memory repositories, the
// same shape the app uses when DB_URL is empty.
type testEnv struct {
	players *memory.PlayerRepository
	teams   *memory.TeamRepository
	matches *memory.MatchRepository

	playerSvc  *PlayerService
	teamSvc    *TeamService
	matchSvc   *MatchService
	resultsSvc *ResultsService
	statsSvc   *StatsService
}

func newTestEnv() *testEnv {
	players := memory.NewPlayerRepository()
	teams := memory.NewTeamRepository(players)
	players.AttachTeams(teams)
	matches := memory.NewMatchRepository(teams)

	logger := logging.NewNop()

	return &testEnv{
		players:    players,
		teams:      teams,
		matches:    matches,
		playerSvc:  NewPlayerService(players, logger),
		teamSvc:    NewTeamService(teams, players, logger),
		matchSvc:   NewMatchService(matches, logger),
		resultsSvc: NewResultsService(matches, players, logger),
		statsSvc:   NewStatsService(matches, teams, players, 2, logger),
	}
}

func (e *testEnv) mustPlayer(t *testing.T, name string) player.Player {
	t.Helper()

	p, err := e.playerSvc.Register(t.Context(), name)
	if err != nil {
		t.Fatalf("register player %q: %v", name, err)
	}

	return p
}

func (e *testEnv) mustTeam(t *testing.T, name string, playerIDs ...int64) team.Team {
	t.Helper()

	created, err := e.teamSvc.Create(t.Context(), name, playerIDs)
	if err != nil {
		t.Fatalf("create team %q: %v", name, err)
	}

	return created
}

func (e *testEnv) mustMatch(t *testing.T, teamAID, teamBID int64, date string) match.Match {
	t.Helper()

	created, err := e.matchSvc.Create(t.Context(), CreateMatchInput{
		TeamAID:   teamAID,
		TeamBID:   teamBID,
		MatchDate: date,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	return created
}

// playRounds appends one round per score and optionally finishes the match.
func (e *testEnv) playRounds(t *testing.T, matchID int64, finish bool, scores ...int) {
	t.Helper()

	rounds := make([]match.RoundInput, 0, len(scores))
	for _, score := range scores {
		rounds = append(rounds, match.RoundInput{GameType: "trix", RoundScore: score})
	}

	err := e.matchSvc.AppendRounds(t.Context(), AppendRoundsInput{
		MatchID: matchID,
		Rounds:  rounds,
		Finish:  finish,
	})
	if err != nil {
		t.Fatalf("append rounds to match %d: %v", matchID, err)
	}
}
