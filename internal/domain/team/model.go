package team

import (
	"fmt"

	"github.com/trixhub/trix-league/internal/domain/player"
)

// RosterSize is the fixed number of players on a team.
const RosterSize = 2

// Team is a fixed pairing of exactly two players. The roster is immutable
// after creation.
type Team struct {
	ID   int64
	Name string
}

func (t Team) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}

// WithPlayers is a team together with its two-player roster.
type WithPlayers struct {
	Team
	Players []player.Player
}

// HasPlayer reports whether the given player is on the roster.
func (t WithPlayers) HasPlayer(playerID int64) bool {
	for _, p := range t.Players {
		if p.ID == playerID {
			return true
		}
	}

	return false
}
