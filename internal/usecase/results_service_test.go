package usecase

import (
	"errors"
	"testing"
)

func TestResultsService_ListDates(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	laith := env.mustPlayer(t, "Laith")
	aces := env.mustTeam(t, "The Aces", rami.ID, samer.ID)
	kings := env.mustTeam(t, "The Kings", ziad.ID, laith.ID)

	env.mustMatch(t, aces.ID, kings.ID, "2026-03-01")
	env.mustMatch(t, aces.ID, kings.ID, "2026-03-01T21:00:00Z")
	env.mustMatch(t, aces.ID, kings.ID, "2026-03-05")

	dates, err := env.resultsSvc.ListDates(t.Context())
	if err != nil {
		t.Fatalf("list dates: %v", err)
	}

	want := []string{"2026-03-05", "2026-03-01"}
	if len(dates) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(dates), dates)
	}
	for i, d := range want {
		if dates[i] != d {
			t.Fatalf("expected date %q at position %d, got %q", d, i, dates[i])
		}
	}
}

func TestResultsService_ListByDay(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	laith := env.mustPlayer(t, "Laith")
	aces := env.mustTeam(t, "The Aces", rami.ID, samer.ID)
	kings := env.mustTeam(t, "The Kings", ziad.ID, laith.ID)

	m1, err := env.matchSvc.Create(t.Context(), CreateMatchInput{
		TeamAID:         aces.ID,
		TeamBID:         kings.ID,
		MatchDate:       "2026-03-01T18:00:00Z",
		StarterPlayerID: &ziad.ID,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	env.playRounds(t, m1.ID, true, 8)

	env.mustMatch(t, aces.ID, kings.ID, "2026-03-02")

	results, err := env.resultsSvc.ListByDay(t.Context(), 2026, 3, 1)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result for the day, got %d", len(results))
	}

	got := results[0]
	if got.StarterName == nil || *got.StarterName != "Ziad" {
		t.Fatalf("expected starter name Ziad, got %v", got.StarterName)
	}
	if got.WinnerName == nil || *got.WinnerName != "The Aces" {
		t.Fatalf("expected winner name The Aces, got %v", got.WinnerName)
	}
	if len(got.Rounds) != 1 {
		t.Fatalf("expected 1 round in result detail, got %d", len(got.Rounds))
	}
}

func TestResultsService_ListByDay_UnfinishedMatchHasNoWinner(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	laith := env.mustPlayer(t, "Laith")
	aces := env.mustTeam(t, "The Aces", rami.ID, samer.ID)
	kings := env.mustTeam(t, "The Kings", ziad.ID, laith.ID)

	m := env.mustMatch(t, aces.ID, kings.ID, "2026-03-01")
	env.playRounds(t, m.ID, false, 4)

	results, err := env.resultsSvc.ListByDay(t.Context(), 2026, 3, 1)
	if err != nil {
		t.Fatalf("list results: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].StarterName != nil || results[0].WinnerName != nil {
		t.Fatalf("expected no starter or winner names, got %+v", results[0])
	}
}

func TestResultsService_ListByDay_InvalidDate(t *testing.T) {
	env := newTestEnv()

	if _, err := env.resultsSvc.ListByDay(t.Context(), 2026, 13, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for month 13, got %v", err)
	}
	if _, err := env.resultsSvc.ListByDay(t.Context(), 0, 3, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for year 0, got %v", err)
	}
}
