package match

import (
	"fmt"
	"time"

	"github.com/trixhub/trix-league/internal/domain/team"
)

// Match is one scored contest between two teams on a date. WinnerTeamID and
// FinalScore stay unset until the match is finished.
type Match struct {
	ID              int64
	TeamAID         int64
	TeamBID         int64
	MatchDate       time.Time
	StarterPlayerID *int64
	WinnerTeamID    *int64
	FinalScore      int
	Notes           string
}

func (m Match) Validate() error {
	if m.TeamAID <= 0 {
		return fmt.Errorf("team A id is required")
	}
	if m.TeamBID <= 0 {
		return fmt.Errorf("team B id is required")
	}
	if m.MatchDate.IsZero() {
		return fmt.Errorf("match date is required")
	}

	return nil
}

// Round is one numbered scoring event within a match. A positive score favors
// team A, a negative one team B, zero is neutral. Rounds are immutable once
// stored.
type Round struct {
	ID           int64
	MatchID      int64
	RoundNumber  int
	GameType     string
	RoundScore   int
	RoundDetails *string
}

// Detail is a match with both rosters and its rounds eager-loaded.
type Detail struct {
	Match
	TeamA  team.WithPlayers
	TeamB  team.WithPlayers
	Rounds []Round
}

// OwnSide returns the team id of the given side and the opposing roster.
func (d Detail) OwnSide(teamID int64) (own team.WithPlayers, opponent team.WithPlayers) {
	if d.TeamAID == teamID {
		return d.TeamA, d.TeamB
	}

	return d.TeamB, d.TeamA
}
