package postgres

import "time"

type playerTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type playerMembershipModel struct {
	PlayerID int64  `db:"player_id"`
	TeamID   int64  `db:"team_id"`
	TeamName string `db:"team_name"`
}
