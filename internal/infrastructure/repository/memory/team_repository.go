package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	seq     int64
	items   map[int64]team.Team
	rosters map[int64][]int64
	players *PlayerRepository
}

func NewTeamRepository(players *PlayerRepository) *TeamRepository {
	return &TeamRepository{
		items:   make(map[int64]team.Team),
		rosters: make(map[int64][]int64),
		players: players,
	}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team, playerIDs []int64) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	t.ID = r.seq
	r.items[t.ID] = t
	r.rosters[t.ID] = append([]int64(nil), playerIDs...)

	return t, nil
}

func (r *TeamRepository) GetByID(_ context.Context, id int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	return t, ok, nil
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *TeamRepository) ListWithPlayers(ctx context.Context) ([]team.WithPlayers, error) {
	r.mu.RLock()
	teams := r.sortedLocked()
	r.mu.RUnlock()

	out := make([]team.WithPlayers, 0, len(teams))
	for _, t := range teams {
		out = append(out, r.withPlayers(t))
	}

	return out, nil
}

func (r *TeamRepository) ListByPlayer(_ context.Context, playerID int64) ([]team.Team, error) {
	return r.teamsOfPlayer(playerID), nil
}

func (r *TeamRepository) PairExists(_ context.Context, playerID1, playerID2 int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, roster := range r.rosters {
		if containsID(roster, playerID1) && containsID(roster, playerID2) {
			return true, nil
		}
	}

	return false, nil
}

// WithPlayersByID resolves a team and its roster; used by the match
// repository to assemble eager-loaded details.
func (r *TeamRepository) WithPlayersByID(id int64) (team.WithPlayers, bool) {
	r.mu.RLock()
	t, ok := r.items[id]
	r.mu.RUnlock()
	if !ok {
		return team.WithPlayers{}, false
	}

	return r.withPlayers(t), true
}

func (r *TeamRepository) withPlayers(t team.Team) team.WithPlayers {
	return team.WithPlayers{Team: t, Players: r.rosterPlayers(t.ID)}
}

func (r *TeamRepository) rosterPlayers(teamID int64) []player.Player {
	r.mu.RLock()
	roster := append([]int64(nil), r.rosters[teamID]...)
	r.mu.RUnlock()

	out := make([]player.Player, 0, len(roster))
	for _, playerID := range roster {
		if p, ok, _ := r.players.GetByID(context.Background(), playerID); ok {
			out = append(out, p)
		}
	}

	return out
}

func (r *TeamRepository) teamsOfPlayer(playerID int64) []team.Team {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []team.Team
	for teamID, roster := range r.rosters {
		if containsID(roster, playerID) {
			out = append(out, r.items[teamID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func (r *TeamRepository) sortedLocked() []team.Team {
	out := make([]team.Team, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}

func containsID(ids []int64, id int64) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}

	return false
}
