package player

import "fmt"

// Player is a registered participant. Names are unique across the league.
type Player struct {
	ID   int64
	Name string
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}

	return nil
}

// TeamRef is a lightweight team reference carried on player listings.
type TeamRef struct {
	ID   int64
	Name string
}

// WithTeams is a player together with every team they belong to.
type WithTeams struct {
	Player
	Teams []TeamRef
}
