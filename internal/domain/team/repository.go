package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	// Create persists the team and its roster in one step.
	Create(ctx context.Context, t Team, playerIDs []int64) (Team, error)
	GetByID(ctx context.Context, id int64) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	ListWithPlayers(ctx context.Context) ([]WithPlayers, error)
	ListByPlayer(ctx context.Context, playerID int64) ([]Team, error)
	// PairExists reports whether any existing team is made of exactly this pair.
	PairExists(ctx context.Context, playerID1, playerID2 int64) (bool, error)
}
