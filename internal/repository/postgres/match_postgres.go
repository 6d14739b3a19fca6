package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

const matchColumns = `id, team1_id, team2_id, venue, date, match_type, overs_limit,
	toss, status, current_innings, innings, winner_id,
	win_margin_runs, win_margin_wickets, tied, created_at, updated_at`

// matchRepository persists matches. Both innings live in a single jsonb
// column, so recording a ball is one row read-modify-write; GetForUpdate
// serializes concurrent scorers on the same match.
type matchRepository struct{ pool *pgxpool.Pool }

func NewMatchRepository(pool *pgxpool.Pool) repository.MatchRepository {
	return &matchRepository{pool: pool}
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var m model.Match
	err := row.Scan(
		&m.ID, &m.Team1ID, &m.Team2ID, &m.Venue, &m.Date, &m.MatchType, &m.OversLimit,
		&m.Toss, &m.Status, &m.CurrentInnings, &m.Innings, &m.WinnerID,
		&m.WinMarginRuns, &m.WinMarginWkts, &m.Tied, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *matchRepository) Create(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	if m.Innings == nil {
		m.Innings = []model.Innings{}
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO matches (team1_id, team2_id, venue, date, match_type, overs_limit, status, current_innings, innings)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING `+matchColumns,
		m.Team1ID, m.Team2ID, m.Venue, m.Date, m.MatchType, m.OversLimit,
		m.Status, m.CurrentInnings, m.Innings,
	)
	out, err := scanMatch(row)
	if err != nil {
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (model.Match, error) {
	return r.get(ctx, id, false)
}

func (r *matchRepository) GetForUpdate(ctx context.Context, id int64) (model.Match, error) {
	if !inTx(ctx) {
		return model.Match{}, ErrNoTx
	}
	return r.get(ctx, id, true)
}

func (r *matchRepository) get(ctx context.Context, id int64, forUpdate bool) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	exec := getQ(ctx, r.pool)
	out, err := scanMatch(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

// Save rewrites the whole match document, innings included.
func (r *matchRepository) Save(ctx context.Context, m model.Match) (model.Match, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Match{}, err
	}
	if m.Innings == nil {
		m.Innings = []model.Innings{}
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE matches SET
			venue = $2, date = $3, match_type = $4, overs_limit = $5, toss = $6,
			status = $7, current_innings = $8, innings = $9, winner_id = $10,
			win_margin_runs = $11, win_margin_wickets = $12, tied = $13, updated_at = now()
		 WHERE id = $1
		 RETURNING `+matchColumns,
		m.ID, m.Venue, m.Date, m.MatchType, m.OversLimit, m.Toss,
		m.Status, m.CurrentInnings, m.Innings, m.WinnerID,
		m.WinMarginRuns, m.WinMarginWkts, m.Tied,
	)
	out, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, repository.ErrNotFound
		}
		return model.Match{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *matchRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Match], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Match]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+matchColumns+`, COUNT(*) OVER() AS total
		 FROM matches
		 ORDER BY date DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Match]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Match]{Items: make([]model.Match, 0, limit)}
	for rows.Next() {
		var m model.Match
		var total int
		if err := rows.Scan(
			&m.ID, &m.Team1ID, &m.Team2ID, &m.Venue, &m.Date, &m.MatchType, &m.OversLimit,
			&m.Toss, &m.Status, &m.CurrentInnings, &m.Innings, &m.WinnerID,
			&m.WinMarginRuns, &m.WinMarginWkts, &m.Tied, &m.CreatedAt, &m.UpdatedAt, &total,
		); err != nil {
			return repository.PageResult[model.Match]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, m)
		res.Total = total
	}
	return res, nil
}

func (r *matchRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

var _ repository.MatchRepository = (*matchRepository)(nil)
