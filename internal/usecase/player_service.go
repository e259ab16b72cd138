package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/platform/logging"
)

type PlayerService struct {
	playerRepo player.Repository
	logger     *logging.Logger
}

func NewPlayerService(playerRepo player.Repository, logger *logging.Logger) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo: playerRepo,
		logger:     logger,
	}
}

// Register creates a player with a trimmed, league-unique name.
func (s *PlayerService) Register(ctx context.Context, name string) (player.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by name: %w", err)
	}
	if exists {
		return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrConflict, name)
	}

	created, err := s.playerRepo.Create(ctx, player.Player{Name: name})
	if err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}

	s.logger.InfoContext(ctx, "player registered", "player_id", created.ID, "name", created.Name)

	return created, nil
}

// Rename changes a player's name, keeping the uniqueness invariant.
func (s *PlayerService) Rename(ctx context.Context, id int64, name string) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	current, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	other, taken, err := s.playerRepo.GetByName(ctx, name)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by name: %w", err)
	}
	if taken && other.ID != id {
		return player.Player{}, fmt.Errorf("%w: player %q already exists", ErrConflict, name)
	}

	if err := s.playerRepo.Rename(ctx, id, name); err != nil {
		return player.Player{}, fmt.Errorf("rename player: %w", err)
	}

	current.Name = name
	return current, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	return p, nil
}

// List returns every player, or only a team's roster when teamID is set.
func (s *PlayerService) List(ctx context.Context, teamID *int64) ([]player.Player, error) {
	if teamID != nil {
		if *teamID <= 0 {
			return nil, fmt.Errorf("%w: team id must be positive", ErrInvalidInput)
		}
		items, err := s.playerRepo.ListByTeam(ctx, *teamID)
		if err != nil {
			return nil, fmt.Errorf("list players by team: %w", err)
		}
		return items, nil
	}

	items, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return items, nil
}

func (s *PlayerService) ListWithTeams(ctx context.Context) ([]player.WithTeams, error) {
	items, err := s.playerRepo.ListWithTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players with teams: %w", err)
	}

	return items, nil
}
