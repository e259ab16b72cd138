package usecase

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/trixhub/trix-league/internal/domain/match"
	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/domain/team"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

const (
	StatsKindTeams   = "teams"
	StatsKindPlayers = "players"

	defaultStatsWorkers = 8
)

// StatsSummary is the win/loss digest for one team or one player. WinRate is
// a two-decimal percentage string, "0" when no matches exist; the min round
// counts stay nil until a win (resp. non-win) has been observed.
type StatsSummary struct {
	TotalMatches      int
	Wins              int
	Losses            int
	WinRate           string
	MostPlayedAgainst *string
	MinWinRounds      *int
	MinLoseRounds     *int
}

// StatBlock is one league-wide ranking. GeneralStats returns nine of them.
type StatBlock struct {
	Key            string
	Title          string
	Unit           string
	HighlightLabel string
	List           []StatEntry
}

type StatEntry struct {
	ID    int64
	Name  string
	Value float64
}

type StatsService struct {
	matchRepo  match.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	logger     *logging.Logger
	workers    int
}

func NewStatsService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	workers int,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers <= 0 {
		workers = defaultStatsWorkers
	}

	return &StatsService{
		matchRepo:  matchRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
		workers:    workers,
	}
}

// TeamStats recomputes the team's digest from the full stored match history.
// An unknown team simply has no matches; that mirrors the persisted contract,
// which never rejects stats reads for absent teams.
func (s *StatsService) TeamStats(ctx context.Context, teamID int64) (StatsSummary, error) {
	if teamID <= 0 {
		return StatsSummary{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByTeamIDs(ctx, []int64{teamID})
	if err != nil {
		return StatsSummary{}, fmt.Errorf("list matches by team: %w", err)
	}

	agg := newOutcomeAggregator()
	for _, m := range matches {
		_, opponent := m.OwnSide(teamID)
		agg.observe(isWinner(m.Match, teamID), len(m.Rounds), []opponentRef{{ID: opponent.ID, Name: opponent.Name}})
	}

	return agg.summary(), nil
}

// PlayerStats merges the histories of every team the player belongs to.
// Opponent tallies are per opposing player, never the opposing team name.
func (s *StatsService) PlayerStats(ctx context.Context, playerID int64) (StatsSummary, error) {
	if playerID <= 0 {
		return StatsSummary{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return StatsSummary{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}

	teams, err := s.teamRepo.ListByPlayer(ctx, playerID)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("list teams by player: %w", err)
	}

	teamIDs := make([]int64, 0, len(teams))
	for _, t := range teams {
		teamIDs = append(teamIDs, t.ID)
	}

	matches, err := s.matchRepo.ListByTeamIDs(ctx, teamIDs)
	if err != nil {
		return StatsSummary{}, fmt.Errorf("list matches by teams: %w", err)
	}

	ownTeams := make(map[int64]struct{}, len(teamIDs))
	for _, id := range teamIDs {
		ownTeams[id] = struct{}{}
	}

	agg := newOutcomeAggregator()
	for _, m := range matches {
		ownTeamID := ownTeamID(m.Match, ownTeams)
		_, opponent := m.OwnSide(ownTeamID)

		refs := make([]opponentRef, 0, len(opponent.Players))
		for _, p := range opponent.Players {
			if p.ID == playerID {
				continue
			}
			refs = append(refs, opponentRef{ID: p.ID, Name: p.Name})
		}

		agg.observe(isWinner(m.Match, ownTeamID), len(m.Rounds), refs)
	}

	return agg.summary(), nil
}

// GeneralStats ranks every team or every player along nine metrics. Entities
// without a single match are absent from all blocks; entities without a win
// are absent from the two win-rounds-average blocks.
func (s *StatsService) GeneralStats(ctx context.Context, kind string) ([]StatBlock, error) {
	switch kind {
	case StatsKindTeams, StatsKindPlayers:
	default:
		return nil, fmt.Errorf("%w: unknown stats kind %q", ErrInvalidInput, kind)
	}

	lines, err := s.collectGeneralLines(ctx, kind)
	if err != nil {
		return nil, err
	}

	return buildStatBlocks(kind, lines), nil
}

// generalLine is one entity's precomputed metrics before block assembly.
type generalLine struct {
	id                int64
	name              string
	totalMatches      int
	winRate           float64
	lossRate          float64
	winRoundsAvg      *float64
	distinctOpponents int
	starters          int
	starterWins       int
	starterLosses     int
}

func (s *StatsService) collectGeneralLines(ctx context.Context, kind string) ([]generalLine, error) {
	type target struct {
		id       int64
		name     string
		teamIDs  []int64
		isMember func(teamID int64) bool
		starter  func(m match.Detail, ownTeamID int64) bool
	}

	var targets []target
	switch kind {
	case StatsKindTeams:
		teams, err := s.teamRepo.ListWithPlayers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		for _, t := range teams {
			t := t
			targets = append(targets, target{
				id:       t.ID,
				name:     t.Name,
				teamIDs:  []int64{t.ID},
				isMember: func(teamID int64) bool { return teamID == t.ID },
				// A team "started" when the designated starter is on its roster.
				starter: func(m match.Detail, _ int64) bool {
					return m.StarterPlayerID != nil && t.HasPlayer(*m.StarterPlayerID)
				},
			})
		}
	case StatsKindPlayers:
		players, err := s.playerRepo.ListWithTeams(ctx)
		if err != nil {
			return nil, fmt.Errorf("list players: %w", err)
		}
		for _, p := range players {
			p := p
			memberships := make(map[int64]struct{}, len(p.Teams))
			teamIDs := make([]int64, 0, len(p.Teams))
			for _, t := range p.Teams {
				memberships[t.ID] = struct{}{}
				teamIDs = append(teamIDs, t.ID)
			}
			targets = append(targets, target{
				id:      p.ID,
				name:    p.Name,
				teamIDs: teamIDs,
				isMember: func(teamID int64) bool {
					_, ok := memberships[teamID]
					return ok
				},
				starter: func(m match.Detail, _ int64) bool {
					return m.StarterPlayerID != nil && *m.StarterPlayerID == p.ID
				},
			})
		}
	}

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return nil, fmt.Errorf("create stats worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]*generalLine, len(targets))
	errs := make([]error, len(targets))

	var wg sync.WaitGroup
	for i, tgt := range targets {
		i, tgt := i, tgt
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			matches, listErr := s.matchRepo.ListByTeamIDs(ctx, tgt.teamIDs)
			if listErr != nil {
				errs[i] = fmt.Errorf("list matches for %s=%d: %w", kind, tgt.id, listErr)
				return
			}
			if len(matches) == 0 {
				return
			}

			line := generalLine{id: tgt.id, name: tgt.name, totalMatches: len(matches)}

			var wins, losses, winRoundsTotal, winRoundsCount int
			opponents := make(map[int64]struct{})

			for _, m := range matches {
				myTeamID := m.TeamBID
				if tgt.isMember(m.TeamAID) {
					myTeamID = m.TeamAID
				}
				opponentID := m.TeamAID
				if myTeamID == m.TeamAID {
					opponentID = m.TeamBID
				}
				opponents[opponentID] = struct{}{}

				won := isWinner(m.Match, myTeamID)
				if won {
					wins++
					winRoundsTotal += len(m.Rounds)
					winRoundsCount++
				} else {
					losses++
				}

				if tgt.starter(m, myTeamID) {
					line.starters++
					if won {
						line.starterWins++
					} else {
						line.starterLosses++
					}
				}
			}

			line.winRate = round2(float64(wins) / float64(line.totalMatches) * 100)
			line.lossRate = round2(float64(losses) / float64(line.totalMatches) * 100)
			if winRoundsCount > 0 {
				avg := round2(float64(winRoundsTotal) / float64(winRoundsCount))
				line.winRoundsAvg = &avg
			}
			line.distinctOpponents = len(opponents)

			results[i] = &line
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit stats task: %w", err)
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	lines := make([]generalLine, 0, len(results))
	for _, line := range results {
		if line != nil {
			lines = append(lines, *line)
		}
	}

	return lines, nil
}

func buildStatBlocks(kind string, lines []generalLine) []StatBlock {
	entityWord := "فريق"
	if kind == StatsKindPlayers {
		entityWord = "لاعب"
	}

	pick := func(value func(generalLine) (float64, bool)) []StatEntry {
		entries := make([]StatEntry, 0, len(lines))
		for _, line := range lines {
			v, ok := value(line)
			if !ok {
				continue
			}
			entries = append(entries, StatEntry{ID: line.id, Name: line.name, Value: v})
		}
		return entries
	}
	always := func(value func(generalLine) float64) []StatEntry {
		return pick(func(line generalLine) (float64, bool) { return value(line), true })
	}

	// One underlying average list, ranked both ways.
	winRoundsAvg := pick(func(line generalLine) (float64, bool) {
		if line.winRoundsAvg == nil {
			return 0, false
		}
		return *line.winRoundsAvg, true
	})

	return []StatBlock{
		{
			Key:            "mostWins",
			Title:          "أكثر " + entityWord + " فوزًا",
			Unit:           "%",
			HighlightLabel: "نسبة الفوز",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return l.winRate })),
		},
		{
			Key:            "mostLosses",
			Title:          "أكثر " + entityWord + " خسارة",
			Unit:           "%",
			HighlightLabel: "نسبة الخسارة",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return l.lossRate })),
		},
		{
			Key:            "mostMatches",
			Title:          "أكثر " + entityWord + " شارك بالمسابقات",
			Unit:           "count",
			HighlightLabel: "عدد المسابقات",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return float64(l.totalMatches) })),
		},
		{
			Key:            "bestWinRoundsAvg",
			Title:          "أفضل معدل جولات في الفوز",
			Unit:           "average",
			HighlightLabel: "متوسط الجولات",
			List:           sortEntriesAsc(cloneEntries(winRoundsAvg)),
		},
		{
			Key:            "worstWinRoundsAvg",
			Title:          "أسوأ معدل جولات في الفوز",
			Unit:           "average",
			HighlightLabel: "متوسط الجولات",
			List:           sortEntriesDesc(cloneEntries(winRoundsAvg)),
		},
		{
			Key:            "mostDifferentOpponents",
			Title:          "أكثر " + entityWord + " فاز على خصوم مختلفين",
			Unit:           "count",
			HighlightLabel: "عدد الخصوم",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return float64(l.distinctOpponents) })),
		},
		{
			Key:            "mostStarters",
			Title:          "أكثر " + entityWord + " بدأ اللعب",
			Unit:           "count",
			HighlightLabel: "عدد المرات",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return float64(l.starters) })),
		},
		{
			Key:            "starterWins",
			Title:          "بدأ اللعب وفاز",
			Unit:           "count",
			HighlightLabel: "عدد المسابقات",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return float64(l.starterWins) })),
		},
		{
			Key:            "starterLosses",
			Title:          "بدأ اللعب وخسر",
			Unit:           "count",
			HighlightLabel: "عدد المسابقات",
			List:           sortEntriesDesc(always(func(l generalLine) float64 { return float64(l.starterLosses) })),
		},
	}
}

// opponentRef identifies one opponent in a tally; the id doubles as the
// deterministic tie-break.
type opponentRef struct {
	ID   int64
	Name string
}

type outcomeAggregator struct {
	total         int
	wins          int
	minWinRounds  *int
	minLoseRounds *int
	tally         map[opponentRef]int
}

func newOutcomeAggregator() *outcomeAggregator {
	return &outcomeAggregator{tally: make(map[opponentRef]int)}
}

func (a *outcomeAggregator) observe(won bool, roundCount int, opponents []opponentRef) {
	a.total++
	if won {
		a.wins++
		a.minWinRounds = minRounds(a.minWinRounds, roundCount)
	} else {
		// Draws land here as well: a match without a declared winner counts
		// as a non-win for both sides.
		a.minLoseRounds = minRounds(a.minLoseRounds, roundCount)
	}

	for _, ref := range opponents {
		a.tally[ref]++
	}
}

func (a *outcomeAggregator) summary() StatsSummary {
	out := StatsSummary{
		TotalMatches:  a.total,
		Wins:          a.wins,
		Losses:        a.total - a.wins,
		WinRate:       "0",
		MinWinRounds:  a.minWinRounds,
		MinLoseRounds: a.minLoseRounds,
	}
	if a.total > 0 {
		out.WinRate = strconv.FormatFloat(float64(a.wins)/float64(a.total)*100, 'f', 2, 64)
	}

	var best *opponentRef
	bestCount := 0
	for ref, count := range a.tally {
		ref := ref
		if best == nil || count > bestCount || (count == bestCount && ref.ID < best.ID) {
			best = &ref
			bestCount = count
		}
	}
	if best != nil {
		name := best.Name
		out.MostPlayedAgainst = &name
	}

	return out
}

func isWinner(m match.Match, teamID int64) bool {
	return m.WinnerTeamID != nil && *m.WinnerTeamID == teamID
}

func ownTeamID(m match.Match, ownTeams map[int64]struct{}) int64 {
	if _, ok := ownTeams[m.TeamAID]; ok {
		return m.TeamAID
	}

	return m.TeamBID
}

func minRounds(current *int, candidate int) *int {
	if current == nil || candidate < *current {
		return &candidate
	}

	return current
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func cloneEntries(entries []StatEntry) []StatEntry {
	return append([]StatEntry(nil), entries...)
}

func sortEntriesDesc(entries []StatEntry) []StatEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}

func sortEntriesAsc(entries []StatEntry) []StatEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value < entries[j].Value
		}
		return entries[i].ID < entries[j].ID
	})
	return entries
}
