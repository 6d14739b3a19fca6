package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

const teamColumns = `id, name, short_name, captain_id, purse, points,
	matches_played, matches_won, matches_lost, matches_tied,
	runs_scored, runs_conceded, balls_faced, balls_bowled, net_run_rate,
	created_at, updated_at`

type teamRepository struct{ pool *pgxpool.Pool }

func NewTeamRepository(pool *pgxpool.Pool) repository.TeamRepository {
	return &teamRepository{pool: pool}
}

func scanTeam(row pgx.Row) (model.Team, error) {
	var t model.Team
	err := row.Scan(
		&t.ID, &t.Name, &t.ShortName, &t.CaptainID, &t.Purse, &t.Points,
		&t.MatchesPlayed, &t.MatchesWon, &t.MatchesLost, &t.MatchesTied,
		&t.RunsScored, &t.RunsConceded, &t.BallsFaced, &t.BallsBowled, &t.NetRunRate,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *teamRepository) Create(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO teams (name, short_name, purse) VALUES ($1, $2, $3)
		 RETURNING `+teamColumns,
		t.Name, t.ShortName, t.Purse,
	)
	out, err := scanTeam(row)
	if err != nil {
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *teamRepository) GetByID(ctx context.Context, id int64) (model.Team, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the team row until the surrounding transaction ends.
// Purse debits and match roll-ups go through here so concurrent settlements
// cannot both read the same purse.
func (r *teamRepository) GetForUpdate(ctx context.Context, id int64) (model.Team, error) {
	if !inTx(ctx) {
		return model.Team{}, ErrNoTx
	}
	return r.get(ctx, id, true)
}

func (r *teamRepository) get(ctx context.Context, id int64, forUpdate bool) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	query := `SELECT ` + teamColumns + ` FROM teams WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	exec := getQ(ctx, r.pool)
	out, err := scanTeam(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, repository.ErrNotFound
		}
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

// List returns teams in point-table order.
func (r *teamRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Team], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Team]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+teamColumns+`, COUNT(*) OVER() AS total
		 FROM teams
		 ORDER BY points DESC, net_run_rate DESC, id
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Team]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Team]{Items: make([]model.Team, 0, limit)}
	for rows.Next() {
		var t model.Team
		var total int
		if err := rows.Scan(
			&t.ID, &t.Name, &t.ShortName, &t.CaptainID, &t.Purse, &t.Points,
			&t.MatchesPlayed, &t.MatchesWon, &t.MatchesLost, &t.MatchesTied,
			&t.RunsScored, &t.RunsConceded, &t.BallsFaced, &t.BallsBowled, &t.NetRunRate,
			&t.CreatedAt, &t.UpdatedAt, &total,
		); err != nil {
			return repository.PageResult[model.Team]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, t)
		res.Total = total
	}
	return res, nil
}

// Update rewrites every mutable column from the model. Callers that change
// money or match-record fields must hold the row lock via GetForUpdate.
func (r *teamRepository) Update(ctx context.Context, t model.Team) (model.Team, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Team{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE teams SET
			name = $2, short_name = $3, captain_id = $4, purse = $5, points = $6,
			matches_played = $7, matches_won = $8, matches_lost = $9, matches_tied = $10,
			runs_scored = $11, runs_conceded = $12, balls_faced = $13, balls_bowled = $14,
			net_run_rate = $15, updated_at = now()
		 WHERE id = $1
		 RETURNING `+teamColumns,
		t.ID, t.Name, t.ShortName, t.CaptainID, t.Purse, t.Points,
		t.MatchesPlayed, t.MatchesWon, t.MatchesLost, t.MatchesTied,
		t.RunsScored, t.RunsConceded, t.BallsFaced, t.BallsBowled, t.NetRunRate,
	)
	out, err := scanTeam(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, repository.ErrNotFound
		}
		return model.Team{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *teamRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM teams`).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

var _ repository.TeamRepository = (*teamRepository)(nil)
