package postgres

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/trixhub/trix-league/internal/domain/player"
	qb "github.com/trixhub/trix-league/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"name",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Create(ctx context.Context, p player.Player) (player.Player, error) {
	query, args, err := qb.InsertInto("players").
		Columns("name").
		Values(p.Name).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return player.Player{}, crerr.Wrap(err, "build create player query")
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return player.Player{}, crerr.Wrap(err, "create player")
	}
	p.ID = id

	return p, nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id), "select player by id")
}

func (r *PlayerRepository) GetByName(ctx context.Context, name string) (player.Player, bool, error) {
	return r.getOne(ctx, qb.Eq("name", name), "select player by name")
}

func (r *PlayerRepository) getOne(ctx context.Context, cond qb.Condition, label string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, crerr.Wrapf(err, "build %s query", label)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, crerr.Wrap(err, label)
	}

	return player.Player{ID: row.ID, Name: row.Name}, true, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select players")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.ID, Name: row.Name})
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID int64) ([]player.Player, error) {
	query, args, err := qb.Select("p.id", "p.name", "p.created_at", "p.updated_at").
		From("players p JOIN team_players tp ON tp.player_id = p.id").
		Where(qb.Eq("tp.team_id", teamID)).
		OrderBy("p.id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select players by team query")
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select players by team")
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Player{ID: row.ID, Name: row.Name})
	}

	return out, nil
}

func (r *PlayerRepository) ListWithTeams(ctx context.Context) ([]player.WithTeams, error) {
	players, err := r.List(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("tp.player_id", "tp.team_id", "t.name AS team_name").
		From("team_players tp JOIN teams t ON t.id = tp.team_id").
		OrderBy("tp.player_id", "tp.team_id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select memberships query")
	}

	var memberships []playerMembershipModel
	if err := r.db.SelectContext(ctx, &memberships, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select memberships")
	}

	teamsByPlayer := make(map[int64][]player.TeamRef, len(memberships))
	for _, m := range memberships {
		teamsByPlayer[m.PlayerID] = append(teamsByPlayer[m.PlayerID], player.TeamRef{ID: m.TeamID, Name: m.TeamName})
	}

	out := make([]player.WithTeams, 0, len(players))
	for _, p := range players {
		out = append(out, player.WithTeams{Player: p, Teams: teamsByPlayer[p.ID]})
	}

	return out, nil
}

func (r *PlayerRepository) Rename(ctx context.Context, id int64, name string) error {
	query, args, err := qb.Update("players").
		Set("name", name).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build rename player query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "rename player")
	}

	return nil
}
