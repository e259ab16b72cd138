package match

// MaxRounds caps every match at 21 stored rounds. Round 21 is the tiebreak
// round and is only reachable when round 20 was recorded as a deliberate
// zero-score placeholder.
const (
	MaxRounds    = 21
	DeciderRound = 20
)

// RoundInput is one requested round in an append batch, before a round number
// has been assigned.
type RoundInput struct {
	GameType     string
	RoundScore   int
	RoundDetails *string
}

// PlanRounds assigns contiguous round numbers to the requested batch, given
// the rounds already stored for the match. Requests that would exceed the cap,
// or reach round 21 without a zero-score round 20, are dropped along with
// everything after them; truncation is policy, not an error.
//
// Rounds accepted earlier in the same batch count as stored for the round-21
// gate, so a single batch can legally run 1..21 if its round 20 scores zero.
func PlanRounds(existing []Round, requested []RoundInput) []Round {
	scoreByNumber := make(map[int]int, len(existing)+len(requested))
	for _, r := range existing {
		scoreByNumber[r.RoundNumber] = r.RoundScore
	}

	planned := make([]Round, 0, len(requested))
	for _, in := range requested {
		next := len(existing) + len(planned) + 1
		if !roundAllowed(next, scoreByNumber) {
			break
		}

		planned = append(planned, Round{
			RoundNumber:  next,
			GameType:     in.GameType,
			RoundScore:   in.RoundScore,
			RoundDetails: in.RoundDetails,
		})
		scoreByNumber[next] = in.RoundScore
	}

	return planned
}

func roundAllowed(next int, scoreByNumber map[int]int) bool {
	if next > MaxRounds {
		return false
	}
	if next == MaxRounds {
		score, ok := scoreByNumber[DeciderRound]
		return ok && score == 0
	}

	return true
}

// FinalOutcome derives the finished state from the highest-numbered round.
// With no rounds the final score is zero and there is no winner; a zero final
// score also leaves the winner unset.
func FinalOutcome(m Match, last *Round) (finalScore int, winnerTeamID *int64) {
	if last == nil {
		return 0, nil
	}

	switch {
	case last.RoundScore > 0:
		teamID := m.TeamAID
		return last.RoundScore, &teamID
	case last.RoundScore < 0:
		teamID := m.TeamBID
		return last.RoundScore, &teamID
	default:
		return 0, nil
	}
}
