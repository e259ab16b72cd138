package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/trixhub/trix-league/internal/domain/match"
)

type MatchRepository struct {
	mu       sync.RWMutex
	seq      int64
	roundSeq int64
	items    map[int64]match.Match
	rounds   map[int64][]match.Round
	teams    *TeamRepository
}

func NewMatchRepository(teams *TeamRepository) *MatchRepository {
	return &MatchRepository{
		items:  make(map[int64]match.Match),
		rounds: make(map[int64][]match.Round),
		teams:  teams,
	}
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) (match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	m.ID = r.seq
	r.items[m.ID] = cloneMatch(m)

	return m, nil
}

func (r *MatchRepository) GetByID(_ context.Context, id int64) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(m), true, nil
}

func (r *MatchRepository) GetDetail(ctx context.Context, id int64) (match.Detail, bool, error) {
	m, ok, err := r.GetByID(ctx, id)
	if err != nil || !ok {
		return match.Detail{}, ok, err
	}

	return r.detail(m), true, nil
}

func (r *MatchRepository) ListByTeamIDs(_ context.Context, teamIDs []int64) ([]match.Detail, error) {
	wanted := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		wanted[id] = struct{}{}
	}

	r.mu.RLock()
	var selected []match.Match
	for _, m := range r.items {
		_, sideA := wanted[m.TeamAID]
		_, sideB := wanted[m.TeamBID]
		if sideA || sideB {
			selected = append(selected, cloneMatch(m))
		}
	}
	r.mu.RUnlock()

	sort.Slice(selected, func(i, j int) bool { return selected[i].ID < selected[j].ID })

	return r.details(selected), nil
}

func (r *MatchRepository) ListByDateRange(_ context.Context, from, to time.Time) ([]match.Detail, error) {
	r.mu.RLock()
	var selected []match.Match
	for _, m := range r.items {
		if !m.MatchDate.Before(from) && !m.MatchDate.After(to) {
			selected = append(selected, cloneMatch(m))
		}
	}
	r.mu.RUnlock()

	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].MatchDate.Equal(selected[j].MatchDate) {
			return selected[i].MatchDate.Before(selected[j].MatchDate)
		}
		return selected[i].ID < selected[j].ID
	})

	return r.details(selected), nil
}

func (r *MatchRepository) ListDates(_ context.Context) ([]time.Time, error) {
	r.mu.RLock()
	seen := make(map[time.Time]struct{}, len(r.items))
	for _, m := range r.items {
		day := m.MatchDate.UTC().Truncate(24 * time.Hour)
		seen[day] = struct{}{}
	}
	r.mu.RUnlock()

	out := make([]time.Time, 0, len(seen))
	for day := range seen {
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].After(out[j]) })

	return out, nil
}

func (r *MatchRepository) UpdateStarter(_ context.Context, id, starterPlayerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return fmt.Errorf("match %d does not exist", id)
	}
	m.StarterPlayerID = &starterPlayerID
	r.items[id] = m

	return nil
}

func (r *MatchRepository) Finish(_ context.Context, id int64, finalScore int, winnerTeamID *int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[id]
	if !ok {
		return fmt.Errorf("match %d does not exist", id)
	}
	m.FinalScore = finalScore
	m.WinnerTeamID = nil
	if winnerTeamID != nil {
		winner := *winnerTeamID
		m.WinnerTeamID = &winner
	}
	r.items[id] = m

	return nil
}

func (r *MatchRepository) CreateRound(_ context.Context, round match.Round) (match.Round, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rounds[round.MatchID] {
		if existing.RoundNumber == round.RoundNumber {
			return match.Round{}, fmt.Errorf("round %d: %w", round.RoundNumber, match.ErrDuplicateRound)
		}
	}

	r.roundSeq++
	round.ID = r.roundSeq
	r.rounds[round.MatchID] = append(r.rounds[round.MatchID], cloneRound(round))

	return round, nil
}

func (r *MatchRepository) ListRounds(_ context.Context, matchID int64) ([]match.Round, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedRoundsLocked(matchID), nil
}

func (r *MatchRepository) LastRound(_ context.Context, matchID int64) (match.Round, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rounds := r.sortedRoundsLocked(matchID)
	if len(rounds) == 0 {
		return match.Round{}, false, nil
	}

	return rounds[len(rounds)-1], true, nil
}

func (r *MatchRepository) details(matches []match.Match) []match.Detail {
	out := make([]match.Detail, 0, len(matches))
	for _, m := range matches {
		out = append(out, r.detail(m))
	}

	return out
}

func (r *MatchRepository) detail(m match.Match) match.Detail {
	d := match.Detail{Match: m}
	if r.teams != nil {
		if t, ok := r.teams.WithPlayersByID(m.TeamAID); ok {
			d.TeamA = t
		}
		if t, ok := r.teams.WithPlayersByID(m.TeamBID); ok {
			d.TeamB = t
		}
	}

	r.mu.RLock()
	d.Rounds = r.sortedRoundsLocked(m.ID)
	r.mu.RUnlock()

	return d
}

func (r *MatchRepository) sortedRoundsLocked(matchID int64) []match.Round {
	rounds := make([]match.Round, 0, len(r.rounds[matchID]))
	for _, round := range r.rounds[matchID] {
		rounds = append(rounds, cloneRound(round))
	}
	sort.Slice(rounds, func(i, j int) bool { return rounds[i].RoundNumber < rounds[j].RoundNumber })

	return rounds
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	if m.StarterPlayerID != nil {
		starter := *m.StarterPlayerID
		copied.StarterPlayerID = &starter
	}
	if m.WinnerTeamID != nil {
		winner := *m.WinnerTeamID
		copied.WinnerTeamID = &winner
	}

	return copied
}

func cloneRound(r match.Round) match.Round {
	copied := r
	if r.RoundDetails != nil {
		details := *r.RoundDetails
		copied.RoundDetails = &details
	}

	return copied
}
