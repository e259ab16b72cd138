package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/trixhub/trix-league/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	seq   int64
	items map[int64]player.Player
	teams *TeamRepository
}

func NewPlayerRepository() *PlayerRepository {
	return &PlayerRepository{items: make(map[int64]player.Player)}
}

// AttachTeams lets ListWithTeams resolve memberships. Wired by the app after
// both repositories exist.
func (r *PlayerRepository) AttachTeams(teams *TeamRepository) {
	r.teams = teams
}

func (r *PlayerRepository) Create(_ context.Context, p player.Player) (player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	p.ID = r.seq
	r.items[p.ID] = p

	return p, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	return p, ok, nil
}

func (r *PlayerRepository) GetByName(_ context.Context, name string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.items {
		if p.Name == name {
			return p, true, nil
		}
	}

	return player.Player{}, false, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedLocked(), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	if r.teams == nil {
		return nil, nil
	}

	return r.teams.rosterPlayers(teamID), nil
}

func (r *PlayerRepository) ListWithTeams(_ context.Context) ([]player.WithTeams, error) {
	r.mu.RLock()
	players := r.sortedLocked()
	r.mu.RUnlock()

	out := make([]player.WithTeams, 0, len(players))
	for _, p := range players {
		item := player.WithTeams{Player: p}
		if r.teams != nil {
			for _, t := range r.teams.teamsOfPlayer(p.ID) {
				item.Teams = append(item.Teams, player.TeamRef{ID: t.ID, Name: t.Name})
			}
		}
		out = append(out, item)
	}

	return out, nil
}

func (r *PlayerRepository) Rename(_ context.Context, id int64, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return nil
	}
	p.Name = name
	r.items[id] = p

	return nil
}

func (r *PlayerRepository) sortedLocked() []player.Player {
	out := make([]player.Player, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
