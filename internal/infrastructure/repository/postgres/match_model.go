package postgres

import (
	"database/sql"
	"time"
)

type matchTableModel struct {
	ID              int64         `db:"id"`
	TeamAID         int64         `db:"team_a_id"`
	TeamBID         int64         `db:"team_b_id"`
	MatchDate       time.Time     `db:"match_date"`
	StarterPlayerID sql.NullInt64 `db:"starter_player_id"`
	WinnerTeamID    sql.NullInt64 `db:"winner_team_id"`
	FinalScore      int           `db:"final_score"`
	Notes           string        `db:"notes"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

type roundTableModel struct {
	ID           int64          `db:"id"`
	MatchID      int64          `db:"match_id"`
	RoundNumber  int            `db:"round_number"`
	GameType     string         `db:"game_type"`
	RoundScore   int            `db:"round_score"`
	RoundDetails sql.NullString `db:"round_details"`
	CreatedAt    time.Time      `db:"created_at"`
}
