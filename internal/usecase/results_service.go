package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/trixhub/trix-league/internal/domain/match"
	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

const resultsLookupConcurrency = 4

// MatchResult is one finished or in-progress match of a day, with starter and
// winner resolved to display names when they are set.
type MatchResult struct {
	match.Detail
	StarterName *string
	WinnerName  *string
}

type ResultsService struct {
	matchRepo  match.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewResultsService(matchRepo match.Repository, playerRepo player.Repository, logger *logging.Logger) *ResultsService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ResultsService{
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// ListDates returns every calendar date that has at least one match, newest
// first, formatted as YYYY-MM-DD.
func (s *ResultsService) ListDates(ctx context.Context) ([]string, error) {
	dates, err := s.matchRepo.ListDates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list match dates: %w", err)
	}

	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.UTC().Format("2006-01-02"))
	}

	return out, nil
}

// ListByDay returns the day's matches ordered by match time, each enriched
// with the starter player's and winner team's names.
func (s *ResultsService) ListByDay(ctx context.Context, year, month, day int) ([]MatchResult, error) {
	if year <= 0 || month < 1 || month > 12 || day < 1 || day > 31 {
		return nil, fmt.Errorf("%w: invalid date %04d-%02d-%02d", ErrInvalidInput, year, month, day)
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Nanosecond)

	matches, err := s.matchRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list matches by date: %w", err)
	}

	results := make([]MatchResult, len(matches))
	p := pool.New().WithMaxGoroutines(resultsLookupConcurrency)
	for i, m := range matches {
		i, m := i, m
		p.Go(func() {
			results[i] = s.enrich(ctx, m)
		})
	}
	p.Wait()

	return results, nil
}

func (s *ResultsService) enrich(ctx context.Context, m match.Detail) MatchResult {
	out := MatchResult{Detail: m}

	if m.StarterPlayerID != nil {
		// The starter may not be on either roster, so resolve by id.
		starter, exists, err := s.playerRepo.GetByID(ctx, *m.StarterPlayerID)
		if err != nil {
			s.logger.WarnContext(ctx, "resolve starter name failed", "match_id", m.ID, "error", err)
		} else if exists {
			out.StarterName = &starter.Name
		}
	}

	if m.WinnerTeamID != nil {
		winner, _ := m.OwnSide(*m.WinnerTeamID)
		if winner.ID == *m.WinnerTeamID {
			out.WinnerName = &winner.Name
		}
	}

	return out
}
