package postgres

import "time"

type teamTableModel struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type rosterRowModel struct {
	TeamID     int64  `db:"team_id"`
	PlayerID   int64  `db:"player_id"`
	PlayerName string `db:"player_name"`
}
