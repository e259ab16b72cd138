package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/domain/team"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewTeamService(teamRepo team.Repository, playerRepo player.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// Create registers a team of exactly two distinct existing players. A pair
// that already forms a team cannot form another.
func (s *TeamService) Create(ctx context.Context, name string, playerIDs []int64) (team.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return team.Team{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if len(playerIDs) != team.RosterSize {
		return team.Team{}, fmt.Errorf("%w: a team needs exactly %d players", ErrInvalidInput, team.RosterSize)
	}
	if playerIDs[0] == playerIDs[1] {
		return team.Team{}, fmt.Errorf("%w: team players must be distinct", ErrInvalidInput)
	}

	for _, id := range playerIDs {
		if id <= 0 {
			return team.Team{}, fmt.Errorf("%w: player id must be positive", ErrInvalidInput)
		}
		_, exists, err := s.playerRepo.GetByID(ctx, id)
		if err != nil {
			return team.Team{}, fmt.Errorf("get player: %w", err)
		}
		if !exists {
			return team.Team{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
		}
	}

	paired, err := s.teamRepo.PairExists(ctx, playerIDs[0], playerIDs[1])
	if err != nil {
		return team.Team{}, fmt.Errorf("check player pair: %w", err)
	}
	if paired {
		return team.Team{}, fmt.Errorf("%w: players %d and %d already form a team", ErrConflict, playerIDs[0], playerIDs[1])
	}

	created, err := s.teamRepo.Create(ctx, team.Team{Name: name}, playerIDs)
	if err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created",
		"team_id", created.ID,
		"name", created.Name,
		"player_ids", playerIDs,
	)

	return created, nil
}

func (s *TeamService) Get(ctx context.Context, id int64) (team.Team, error) {
	if id <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, exists, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%d", ErrNotFound, id)
	}

	return t, nil
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	return items, nil
}
