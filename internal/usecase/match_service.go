package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/trixhub/trix-league/internal/domain/match"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

// CreateMatchInput is the incoming payload for opening a scoring session.
// MatchDate accepts RFC 3339 or a bare calendar date.
type CreateMatchInput struct {
	TeamAID         int64
	TeamBID         int64
	MatchDate       string
	StarterPlayerID *int64
	Notes           string
}

// AppendRoundsInput carries an ordered round batch for one match. Finish asks
// for the outcome to be derived after the batch is applied.
type AppendRoundsInput struct {
	MatchID         int64
	StarterPlayerID *int64
	Rounds          []match.RoundInput
	Finish          bool
}

type MatchService struct {
	matchRepo match.Repository
	logger    *logging.Logger
}

func NewMatchService(matchRepo match.Repository, logger *logging.Logger) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchService{
		matchRepo: matchRepo,
		logger:    logger,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	if input.TeamAID <= 0 || input.TeamBID <= 0 {
		return match.Match{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}

	matchDate, err := parseMatchDate(input.MatchDate)
	if err != nil {
		return match.Match{}, err
	}

	created, err := s.matchRepo.Create(ctx, match.Match{
		TeamAID:         input.TeamAID,
		TeamBID:         input.TeamBID,
		MatchDate:       matchDate,
		StarterPlayerID: input.StarterPlayerID,
		FinalScore:      0,
		Notes:           input.Notes,
	})
	if err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match created",
		"match_id", created.ID,
		"team_a_id", created.TeamAID,
		"team_b_id", created.TeamBID,
		"match_date", created.MatchDate,
	)

	return created, nil
}

func (s *MatchService) Get(ctx context.Context, id int64) (match.Detail, error) {
	if id <= 0 {
		return match.Detail{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	detail, exists, err := s.matchRepo.GetDetail(ctx, id)
	if err != nil {
		return match.Detail{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Detail{}, fmt.Errorf("%w: match=%d", ErrNotFound, id)
	}

	return detail, nil
}

// AppendRounds applies one round batch to a match: an optional starter update,
// then the rounds the progression policy accepts, then an optional finish.
// Rounds past the cap or the blocked round 21 are dropped without error. The
// steps are independent writes, not one transaction; a failure partway leaves
// earlier rounds persisted.
func (s *MatchService) AppendRounds(ctx context.Context, input AppendRoundsInput) error {
	if input.MatchID <= 0 {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, input.MatchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%d", ErrNotFound, input.MatchID)
	}

	if input.StarterPlayerID != nil {
		// Permissive on purpose: the starter is not checked against rosters.
		if err := s.matchRepo.UpdateStarter(ctx, m.ID, *input.StarterPlayerID); err != nil {
			return fmt.Errorf("update starter: %w", err)
		}
	}

	if len(input.Rounds) > 0 {
		existing, err := s.matchRepo.ListRounds(ctx, m.ID)
		if err != nil {
			return fmt.Errorf("list rounds: %w", err)
		}

		planned := match.PlanRounds(existing, input.Rounds)
		for _, r := range planned {
			r.MatchID = m.ID
			if _, err := s.matchRepo.CreateRound(ctx, r); err != nil {
				return fmt.Errorf("create round %d: %w", r.RoundNumber, err)
			}
		}

		if dropped := len(input.Rounds) - len(planned); dropped > 0 {
			s.logger.InfoContext(ctx, "round batch truncated",
				"match_id", m.ID,
				"accepted", len(planned),
				"dropped", dropped,
			)
		}
	}

	if input.Finish {
		if err := s.finish(ctx, m); err != nil {
			return err
		}
	}

	return nil
}

func (s *MatchService) finish(ctx context.Context, m match.Match) error {
	last, hasRounds, err := s.matchRepo.LastRound(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("load last round: %w", err)
	}

	var lastRound *match.Round
	if hasRounds {
		lastRound = &last
	}

	finalScore, winnerTeamID := match.FinalOutcome(m, lastRound)
	if err := s.matchRepo.Finish(ctx, m.ID, finalScore, winnerTeamID); err != nil {
		return fmt.Errorf("finish match: %w", err)
	}

	s.logger.InfoContext(ctx, "match finished",
		"match_id", m.ID,
		"final_score", finalScore,
		"winner_team_id", winnerTeamID,
	)

	return nil
}

func parseMatchDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: match date is required", ErrInvalidInput)
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: invalid match date %q", ErrInvalidInput, raw)
}
