package usecase

import (
	"errors"
	"testing"
)

func TestTeamService_Create(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")

	created, err := env.teamSvc.Create(t.Context(), "The Aces", []int64{rami.ID, samer.ID})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if created.ID <= 0 || created.Name != "The Aces" {
		t.Fatalf("unexpected team: %+v", created)
	}
}

func TestTeamService_Create_RosterValidation(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")

	if _, err := env.teamSvc.Create(t.Context(), "Solo", []int64{rami.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for roster of one, got %v", err)
	}
	if _, err := env.teamSvc.Create(t.Context(), "Twins", []int64{rami.ID, rami.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate players, got %v", err)
	}
	if _, err := env.teamSvc.Create(t.Context(), "  ", []int64{rami.ID, samer.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
	if _, err := env.teamSvc.Create(t.Context(), "Ghosts", []int64{rami.ID, 999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing player, got %v", err)
	}
}

func TestTeamService_Create_PairConflict(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	env.mustTeam(t, "The Aces", rami.ID, samer.ID)

	// The same pair cannot form a second team, regardless of roster order.
	if _, err := env.teamSvc.Create(t.Context(), "The Aces Reborn", []int64{samer.ID, rami.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for existing pair, got %v", err)
	}

	// Sharing one player with another team is allowed.
	if _, err := env.teamSvc.Create(t.Context(), "The Kings", []int64{rami.ID, ziad.ID}); err != nil {
		t.Fatalf("create team with shared player: %v", err)
	}
}

func TestTeamService_Get(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	created := env.mustTeam(t, "The Aces", rami.ID, samer.ID)

	got, err := env.teamSvc.Get(t.Context(), created.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if got.Name != "The Aces" {
		t.Fatalf("unexpected team name: %q", got.Name)
	}

	if _, err := env.teamSvc.Get(t.Context(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTeamService_List(t *testing.T) {
	env := newTestEnv()
	rami := env.mustPlayer(t, "Rami")
	samer := env.mustPlayer(t, "Samer")
	ziad := env.mustPlayer(t, "Ziad")
	first := env.mustTeam(t, "The Aces", rami.ID, samer.ID)
	second := env.mustTeam(t, "The Kings", rami.ID, ziad.ID)

	items, err := env.teamSvc.List(t.Context())
	if err != nil {
		t.Fatalf("list teams: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(items))
	}
	if items[0].ID != first.ID || items[1].ID != second.ID {
		t.Fatalf("expected teams ordered by id, got %+v", items)
	}
}
