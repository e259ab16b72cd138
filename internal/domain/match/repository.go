package match

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateRound reports that another writer already claimed the round
// number; it surfaces the (match_id, round_number) uniqueness constraint.
var ErrDuplicateRound = errors.New("duplicate round number for match")

// Repository describes match and round persistence needs from use cases.
//
// CreateRound must enforce uniqueness of (match_id, round_number) so that two
// concurrent append batches cannot both claim the same round number; the loser
// gets a conflict error instead of a duplicate row.
type Repository interface {
	Create(ctx context.Context, m Match) (Match, error)
	GetByID(ctx context.Context, id int64) (Match, bool, error)
	GetDetail(ctx context.Context, id int64) (Detail, bool, error)
	// ListByTeamIDs returns every match where either side is one of the teams.
	ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]Detail, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Detail, error)
	// ListDates returns the distinct calendar dates with matches, newest first.
	ListDates(ctx context.Context) ([]time.Time, error)
	UpdateStarter(ctx context.Context, id, starterPlayerID int64) error
	// Finish stores the derived outcome; a nil winner clears the winner column.
	Finish(ctx context.Context, id int64, finalScore int, winnerTeamID *int64) error
	CreateRound(ctx context.Context, r Round) (Round, error)
	// ListRounds returns the match's rounds ordered by round number ascending.
	ListRounds(ctx context.Context, matchID int64) ([]Round, error)
	// LastRound returns the highest-numbered round, if any.
	LastRound(ctx context.Context, matchID int64) (Round, bool, error)
}
