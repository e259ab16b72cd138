package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, p Player) (Player, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByName(ctx context.Context, name string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
	ListByTeam(ctx context.Context, teamID int64) ([]Player, error)
	ListWithTeams(ctx context.Context) ([]WithTeams, error)
	Rename(ctx context.Context, id int64, name string) error
}
