package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/trixhub/trix-league/internal/domain/match"
)

func newMatchFixture(t *testing.T) (*testEnv, match.Match) {
	t.Helper()

	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	laith := env.mustPlayer(t, "Laith")
	teamA := env.mustTeam(t, "The Aces", rami.ID, samer.ID)
	teamB := env.mustTeam(t, "The Kings", ziad.ID, laith.ID)

	return env, env.mustMatch(t, teamA.ID, teamB.ID, "2026-03-01")
}

func TestMatchService_Create_ParsesDates(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	laith := env.mustPlayer(t, "Laith")
	teamA := env.mustTeam(t, "The Aces", rami.ID, samer.ID)
	teamB := env.mustTeam(t, "The Kings", ziad.ID, laith.ID)

	byDay, err := env.matchSvc.Create(t.Context(), CreateMatchInput{
		TeamAID:   teamA.ID,
		TeamBID:   teamB.ID,
		MatchDate: "2026-03-01",
	})
	if err != nil {
		t.Fatalf("create match with calendar date: %v", err)
	}
	want := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	if !byDay.MatchDate.Equal(want) {
		t.Fatalf("expected match date %v, got %v", want, byDay.MatchDate)
	}

	byInstant, err := env.matchSvc.Create(t.Context(), CreateMatchInput{
		TeamAID:   teamA.ID,
		TeamBID:   teamB.ID,
		MatchDate: "2026-03-01T20:30:00+03:00",
	})
	if err != nil {
		t.Fatalf("create match with RFC3339 date: %v", err)
	}
	if byInstant.MatchDate.Location() != time.UTC {
		t.Fatalf("expected match date normalized to UTC, got %v", byInstant.MatchDate.Location())
	}

	_, err = env.matchSvc.Create(t.Context(), CreateMatchInput{
		TeamAID:   teamA.ID,
		TeamBID:   teamB.ID,
		MatchDate: "yesterday",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for malformed date, got %v", err)
	}

	_, err = env.matchSvc.Create(t.Context(), CreateMatchInput{TeamAID: teamA.ID, MatchDate: "2026-03-01"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing team id, got %v", err)
	}
}

func TestMatchService_AppendRounds_NumbersContiguously(t *testing.T) {
	env, m := newMatchFixture(t)

	env.playRounds(t, m.ID, false, 10, -4)
	env.playRounds(t, m.ID, false, 6)

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if len(detail.Rounds) != 3 {
		t.Fatalf("expected 3 rounds, got %d", len(detail.Rounds))
	}
	for i, round := range detail.Rounds {
		if round.RoundNumber != i+1 {
			t.Fatalf("expected round number %d at position %d, got %d", i+1, i, round.RoundNumber)
		}
	}
}

func TestMatchService_AppendRounds_TruncatesAtCap(t *testing.T) {
	env, m := newMatchFixture(t)

	// Round 20 scores zero, so the tiebreak round 21 is reachable; everything
	// past the cap is dropped silently.
	scores := make([]int, 25)
	for i := range scores {
		scores[i] = 5
	}
	scores[19] = 0

	env.playRounds(t, m.ID, false, scores...)

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if len(detail.Rounds) != match.MaxRounds {
		t.Fatalf("expected %d stored rounds, got %d", match.MaxRounds, len(detail.Rounds))
	}
}

func TestMatchService_AppendRounds_BlocksTiebreakWithoutZeroDecider(t *testing.T) {
	env, m := newMatchFixture(t)

	scores := make([]int, 25)
	for i := range scores {
		scores[i] = 5
	}

	env.playRounds(t, m.ID, false, scores...)

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if len(detail.Rounds) != match.DeciderRound {
		t.Fatalf("expected %d stored rounds, got %d", match.DeciderRound, len(detail.Rounds))
	}
}

func TestMatchService_AppendRounds_FinishDerivesWinner(t *testing.T) {
	env, m := newMatchFixture(t)

	env.playRounds(t, m.ID, true, 5, 3, -2)

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if detail.FinalScore != -2 {
		t.Fatalf("expected final score -2, got %d", detail.FinalScore)
	}
	if detail.WinnerTeamID == nil || *detail.WinnerTeamID != m.TeamBID {
		t.Fatalf("expected team B %d as winner, got %v", m.TeamBID, detail.WinnerTeamID)
	}
}

func TestMatchService_Finish_WithoutRounds(t *testing.T) {
	env, m := newMatchFixture(t)

	err := env.matchSvc.AppendRounds(t.Context(), AppendRoundsInput{MatchID: m.ID, Finish: true})
	if err != nil {
		t.Fatalf("finish empty match: %v", err)
	}

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if detail.FinalScore != 0 || detail.WinnerTeamID != nil {
		t.Fatalf("expected zero score and no winner, got score=%d winner=%v", detail.FinalScore, detail.WinnerTeamID)
	}
}

func TestMatchService_Finish_ZeroLastRoundHasNoWinner(t *testing.T) {
	env, m := newMatchFixture(t)

	env.playRounds(t, m.ID, true, 7, 0)

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if detail.FinalScore != 0 || detail.WinnerTeamID != nil {
		t.Fatalf("expected draw, got score=%d winner=%v", detail.FinalScore, detail.WinnerTeamID)
	}
}

func TestMatchService_AppendRounds_UpdatesStarter(t *testing.T) {
	env, m := newMatchFixture(t)

	starter := int64(3)
	err := env.matchSvc.AppendRounds(t.Context(), AppendRoundsInput{
		MatchID:         m.ID,
		StarterPlayerID: &starter,
	})
	if err != nil {
		t.Fatalf("update starter: %v", err)
	}

	detail, err := env.matchSvc.Get(t.Context(), m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if detail.StarterPlayerID == nil || *detail.StarterPlayerID != starter {
		t.Fatalf("expected starter %d, got %v", starter, detail.StarterPlayerID)
	}
}

func TestMatchService_AppendRounds_UnknownMatch(t *testing.T) {
	env := newTestEnv()

	err := env.matchSvc.AppendRounds(t.Context(), AppendRoundsInput{MatchID: 42, Finish: true})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
