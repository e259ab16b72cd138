package postgres

import (
	"context"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/trixhub/trix-league/internal/domain/match"
	qb "github.com/trixhub/trix-league/internal/platform/querybuilder"
)

type MatchRepository struct {
	db    *sqlx.DB
	teams *TeamRepository
}

var matchSelectColumns = []string{
	"id",
	"team_a_id",
	"team_b_id",
	"match_date",
	"starter_player_id",
	"winner_team_id",
	"final_score",
	"notes",
	"created_at",
	"updated_at",
}

var roundSelectColumns = []string{
	"id",
	"match_id",
	"round_number",
	"game_type",
	"round_score",
	"round_details",
	"created_at",
}

func NewMatchRepository(db *sqlx.DB, teams *TeamRepository) *MatchRepository {
	return &MatchRepository{db: db, teams: teams}
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) (match.Match, error) {
	query, args, err := qb.InsertInto("matches").
		Columns("team_a_id", "team_b_id", "match_date", "starter_player_id", "notes").
		Values(m.TeamAID, m.TeamBID, m.MatchDate, ptrToNullInt64(m.StarterPlayerID), m.Notes).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return match.Match{}, crerr.Wrap(err, "build create match query")
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		return match.Match{}, crerr.Wrap(err, "create match")
	}
	m.ID = id

	return m, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, id int64) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, crerr.Wrap(err, "build select match by id query")
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, crerr.Wrap(err, "select match by id")
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) GetDetail(ctx context.Context, id int64) (match.Detail, bool, error) {
	m, ok, err := r.GetByID(ctx, id)
	if err != nil || !ok {
		return match.Detail{}, ok, err
	}

	details, err := r.details(ctx, []match.Match{m})
	if err != nil {
		return match.Detail{}, false, err
	}

	return details[0], true, nil
}

func (r *MatchRepository) ListByTeamIDs(ctx context.Context, teamIDs []int64) ([]match.Detail, error) {
	if len(teamIDs) == 0 {
		return []match.Detail{}, nil
	}

	ids := pq.Array(teamIDs)
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Expr("(team_a_id = ANY(?) OR team_b_id = ANY(?))", ids, ids)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select matches by teams query")
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select matches by teams")
	}

	return r.details(ctx, matchesFromRows(rows))
}

func (r *MatchRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]match.Detail, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(
			qb.Gte("match_date", from),
			qb.Lte("match_date", to),
		).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select matches by date query")
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select matches by date")
	}

	return r.details(ctx, matchesFromRows(rows))
}

func (r *MatchRepository) ListDates(ctx context.Context) ([]time.Time, error) {
	query, args, err := qb.Select("DISTINCT (match_date AT TIME ZONE 'UTC')::date AS day").
		From("matches").
		OrderBy("day DESC").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select match dates query")
	}

	var days []time.Time
	if err := r.db.SelectContext(ctx, &days, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select match dates")
	}

	return days, nil
}

func (r *MatchRepository) UpdateStarter(ctx context.Context, id, starterPlayerID int64) error {
	query, args, err := qb.Update("matches").
		Set("starter_player_id", starterPlayerID).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build update match starter query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "update match starter")
	}

	return nil
}

func (r *MatchRepository) Finish(ctx context.Context, id int64, finalScore int, winnerTeamID *int64) error {
	query, args, err := qb.Update("matches").
		Set("final_score", finalScore).
		Set("winner_team_id", ptrToNullInt64(winnerTeamID)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		ToSQL()
	if err != nil {
		return crerr.Wrap(err, "build finish match query")
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return crerr.Wrap(err, "finish match")
	}

	return nil
}

func (r *MatchRepository) CreateRound(ctx context.Context, round match.Round) (match.Round, error) {
	query, args, err := qb.InsertInto("rounds").
		Columns("match_id", "round_number", "game_type", "round_score", "round_details").
		Values(round.MatchID, round.RoundNumber, round.GameType, round.RoundScore, ptrToNullString(round.RoundDetails)).
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		return match.Round{}, crerr.Wrap(err, "build create round query")
	}

	var id int64
	if err := r.db.GetContext(ctx, &id, query, args...); err != nil {
		if isUniqueViolation(err) {
			return match.Round{}, crerr.Wrapf(match.ErrDuplicateRound, "round %d", round.RoundNumber)
		}
		return match.Round{}, crerr.Wrap(err, "create round")
	}
	round.ID = id

	return round, nil
}

func (r *MatchRepository) ListRounds(ctx context.Context, matchID int64) ([]match.Round, error) {
	rounds, err := r.roundsByMatch(ctx, []int64{matchID})
	if err != nil {
		return nil, err
	}

	out := rounds[matchID]
	if out == nil {
		out = []match.Round{}
	}

	return out, nil
}

func (r *MatchRepository) LastRound(ctx context.Context, matchID int64) (match.Round, bool, error) {
	query, args, err := qb.Select(roundSelectColumns...).From("rounds").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("round_number DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Round{}, false, crerr.Wrap(err, "build select last round query")
	}

	var row roundTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Round{}, false, nil
		}
		return match.Round{}, false, crerr.Wrap(err, "select last round")
	}

	return roundFromRow(row), true, nil
}

func (r *MatchRepository) details(ctx context.Context, matches []match.Match) ([]match.Detail, error) {
	teamIDs := make([]int64, 0, len(matches)*2)
	matchIDs := make([]int64, 0, len(matches))
	seenTeams := make(map[int64]struct{}, len(matches)*2)
	for _, m := range matches {
		matchIDs = append(matchIDs, m.ID)
		for _, teamID := range []int64{m.TeamAID, m.TeamBID} {
			if _, ok := seenTeams[teamID]; ok {
				continue
			}
			seenTeams[teamID] = struct{}{}
			teamIDs = append(teamIDs, teamID)
		}
	}

	teams, err := r.teams.WithPlayersByIDs(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	rounds, err := r.roundsByMatch(ctx, matchIDs)
	if err != nil {
		return nil, err
	}

	out := make([]match.Detail, 0, len(matches))
	for _, m := range matches {
		d := match.Detail{Match: m, TeamA: teams[m.TeamAID], TeamB: teams[m.TeamBID]}
		d.Rounds = rounds[m.ID]
		if d.Rounds == nil {
			d.Rounds = []match.Round{}
		}
		out = append(out, d)
	}

	return out, nil
}

func (r *MatchRepository) roundsByMatch(ctx context.Context, matchIDs []int64) (map[int64][]match.Round, error) {
	if len(matchIDs) == 0 {
		return map[int64][]match.Round{}, nil
	}

	query, args, err := qb.Select(roundSelectColumns...).From("rounds").
		Where(qb.In("match_id", int64SliceToAny(matchIDs))).
		OrderBy("match_id", "round_number").
		ToSQL()
	if err != nil {
		return nil, crerr.Wrap(err, "build select rounds query")
	}

	var rows []roundTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, crerr.Wrap(err, "select rounds")
	}

	out := make(map[int64][]match.Round, len(matchIDs))
	for _, row := range rows {
		out[row.MatchID] = append(out[row.MatchID], roundFromRow(row))
	}

	return out, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:              row.ID,
		TeamAID:         row.TeamAID,
		TeamBID:         row.TeamBID,
		MatchDate:       row.MatchDate,
		StarterPlayerID: nullInt64ToPtr(row.StarterPlayerID),
		WinnerTeamID:    nullInt64ToPtr(row.WinnerTeamID),
		FinalScore:      row.FinalScore,
		Notes:           row.Notes,
	}
}

func matchesFromRows(rows []matchTableModel) []match.Match {
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}
	return out
}

func roundFromRow(row roundTableModel) match.Round {
	return match.Round{
		ID:           row.ID,
		MatchID:      row.MatchID,
		RoundNumber:  row.RoundNumber,
		GameType:     row.GameType,
		RoundScore:   row.RoundScore,
		RoundDetails: nullStringToPtr(row.RoundDetails),
	}
}
