package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/trixhub/trix-league/internal/domain/player"
	"github.com/trixhub/trix-league/internal/domain/team"
	qb "github.com/trixhub/trix-league/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

var teamSelectColumns = []string{
	"id",
	"name",
	"created_at",
	"updated_at",
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team, playerIDs []int64) (team.Team, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return team.Team{}, crerr.Wrap(err, "begin tx create team")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertTeamQuery, insertTeamArgs, err := qb.InsertInto("teams").
		Columns("name").
		Values(t.Name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return team.Team{}, crerr.Wrap(err, "build create team query")
	}

	var id int64
	if err := tx.GetContext(ctx, &id, insertTeamQuery, insertTeamArgs...); err != nil {
		return team.Team{}, crerr.Wrap(err, "create team")
	}
	t.ID = id

	rosterBuilder := qb.InsertInto("team_players").Columns("team_id", "player_id")
	for _, playerID := range playerIDs {
		rosterBuilder.Values(t.ID, playerID)
	}
	rosterQuery, rosterArgs, err := rosterBuilder.ToSQL()
	if err != nil {
		return team.Team{}, crerr.Wrap(err, "build create roster query")
	}
	if _, err := tx.ExecContext(ctx, rosterQuery, rosterArgs...); err != nil {
		return team.Team{}, crerr.Wrap(err, "create roster")
	}

	if err := tx.Commit(); err != nil {
		return team.Team{}, crerr.Wrap(err, "commit create team tx")
	}

	return t, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id int64) (team.Team, bool, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, crerr.Wrap(err, "build select team by id query")
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, crerr.Wrap(err, "select team by id")
	}

	return team.Team{ID: row.ID, Name: row.Name}, true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams query")
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select teams")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: row.Name})
	}

	return out, nil
}

func (r *TeamRepository) ListWithPlayers(ctx context.Context) ([]team.WithPlayers, error) {
	teams, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	rosters, err := r.rosters(ctx, nil)
	if err != nil {
		return nil, err
	}

	out := make([]team.WithPlayers, 0, len(teams))
	for _, t := range teams {
		out = append(out, team.WithPlayers{Team: t, Players: rosters[t.ID]})
	}

	return out, nil
}

func (r *TeamRepository) ListByPlayer(ctx context.Context, playerID int64) ([]team.Team, error) {
	query, args, err := qb.Select("t.id", "t.name", "t.created_at", "t.updated_at").
		From("teams t JOIN team_players tp ON tp.team_id = t.id").
		Where(qb.Eq("tp.player_id", playerID)).
		OrderBy("t.id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams by player query")
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select teams by player")
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.ID, Name: row.Name})
	}

	return out, nil
}

func (r *TeamRepository) PairExists(ctx context.Context, playerID1, playerID2 int64) (bool, error) {
	query, args, err := qb.Select("t.id").
		From("teams t JOIN team_players a ON a.team_id = t.id JOIN team_players b ON b.team_id = t.id").
		Where(
			qb.Eq("a.player_id", playerID1),
			qb.Eq("b.player_id", playerID2),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return false, crerr.Wrap(err, "build select team pair query")
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, crerr.Wrap(err, "select team pair")
	}

	return true, nil
}

// WithPlayersByIDs resolves teams and their rosters keyed by team id; used by
// the match repository to assemble eager-loaded details.
func (r *TeamRepository) WithPlayersByIDs(ctx context.Context, teamIDs []int64) (map[int64]team.WithPlayers, error) {
	if len(teamIDs) == 0 {
		return map[int64]team.WithPlayers{}, nil
	}

	query, args, err := qb.Select(teamSelectColumns...).From("teams").
		Where(qb.In("id", int64SliceToAny(teamIDs))).
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select teams by ids query")
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select teams by ids")
	}

	rosters, err := r.rosters(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make(map[int64]team.WithPlayers, len(rows))
	for _, row := range rows {
		t := team.Team{ID: row.ID, Name: row.Name}
		out[t.ID] = team.WithPlayers{Team: t, Players: rosters[t.ID]}
	}

	return out, nil
}

// rosters loads team_id -> players. A nil teamIDs filter loads every roster.
func (r *TeamRepository) rosters(ctx context.Context, teamIDs []int64) (map[int64][]player.Player, error) {
	builder := qb.Select("tp.team_id", "tp.player_id", "p.name AS player_name").
		From("team_players tp JOIN players p ON p.id = tp.player_id").
		OrderBy("tp.team_id", "tp.player_id")
	if teamIDs != nil {
		builder.Where(qb.In("tp.team_id", int64SliceToAny(teamIDs)))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select rosters query")
	}

	var rows []rosterRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select rosters")
	}

	out := make(map[int64][]player.Player, len(rows))
	for _, row := range rows {
		out[row.TeamID] = append(out[row.TeamID], player.Player{ID: row.PlayerID, Name: row.PlayerName})
	}

	return out, nil
}

func int64SliceToAny(items []int64) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
