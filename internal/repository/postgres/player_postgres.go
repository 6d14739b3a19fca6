package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

const playerColumns = `id, name, email, phone, native_place, category, style,
	photo_url, base_price, is_sold, sold_price, team_id, is_captain,
	stat_matches, stat_runs, stat_wickets, stat_highest_score,
	created_at, updated_at`

type playerRepository struct{ pool *pgxpool.Pool }

func NewPlayerRepository(pool *pgxpool.Pool) repository.PlayerRepository {
	return &playerRepository{pool: pool}
}

func scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	err := row.Scan(
		&p.ID, &p.Name, &p.Email, &p.Phone, &p.NativePlace, &p.Category, &p.Style,
		&p.PhotoURL, &p.BasePrice, &p.IsSold, &p.SoldPrice, &p.TeamID, &p.IsCaptain,
		&p.Stats.Matches, &p.Stats.Runs, &p.Stats.Wickets, &p.Stats.HighestScore,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *playerRepository) Create(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO players (name, email, phone, native_place, category, style, photo_url, base_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+playerColumns,
		p.Name, p.Email, p.Phone, p.NativePlace, p.Category, p.Style, p.PhotoURL, p.BasePrice,
	)
	out, err := scanPlayer(row)
	if err != nil {
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) GetByID(ctx context.Context, id int64) (model.Player, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate locks the player row for the rest of the surrounding tx.
// Settlement marks the player sold through here.
func (r *playerRepository) GetForUpdate(ctx context.Context, id int64) (model.Player, error) {
	if !inTx(ctx) {
		return model.Player{}, ErrNoTx
	}
	return r.get(ctx, id, true)
}

func (r *playerRepository) get(ctx context.Context, id int64, forUpdate bool) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	exec := getQ(ctx, r.pool)
	out, err := scanPlayer(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

// List applies the optional sold/category/team filters with a dynamic WHERE
// clause built from positional args.
func (r *playerRepository) List(ctx context.Context, f repository.PlayerFilter, p repository.Page) (repository.PageResult[model.Player], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Player]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)

	where := ""
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		where += fmt.Sprintf(cond, len(args))
	}
	if f.IsSold != nil {
		add("is_sold = $%d", *f.IsSold)
	}
	if f.Category != nil {
		add("category = $%d", *f.Category)
	}
	if f.TeamID != nil {
		add("team_id = $%d", *f.TeamID)
	}
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT `+playerColumns+`, COUNT(*) OVER() AS total
		 FROM players%s
		 ORDER BY id
		 LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args),
	)

	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return repository.PageResult[model.Player]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Player]{Items: make([]model.Player, 0, limit)}
	for rows.Next() {
		var pl model.Player
		var total int
		if err := rows.Scan(
			&pl.ID, &pl.Name, &pl.Email, &pl.Phone, &pl.NativePlace, &pl.Category, &pl.Style,
			&pl.PhotoURL, &pl.BasePrice, &pl.IsSold, &pl.SoldPrice, &pl.TeamID, &pl.IsCaptain,
			&pl.Stats.Matches, &pl.Stats.Runs, &pl.Stats.Wickets, &pl.Stats.HighestScore,
			&pl.CreatedAt, &pl.UpdatedAt, &total,
		); err != nil {
			return repository.PageResult[model.Player]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, pl)
		res.Total = total
	}
	return res, nil
}

func (r *playerRepository) Update(ctx context.Context, p model.Player) (model.Player, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Player{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE players SET
			name = $2, email = $3, phone = $4, native_place = $5, category = $6,
			style = $7, photo_url = $8, base_price = $9, is_sold = $10, sold_price = $11,
			team_id = $12, is_captain = $13,
			stat_matches = $14, stat_runs = $15, stat_wickets = $16, stat_highest_score = $17,
			updated_at = now()
		 WHERE id = $1
		 RETURNING `+playerColumns,
		p.ID, p.Name, p.Email, p.Phone, p.NativePlace, p.Category,
		p.Style, p.PhotoURL, p.BasePrice, p.IsSold, p.SoldPrice,
		p.TeamID, p.IsCaptain,
		p.Stats.Matches, p.Stats.Runs, p.Stats.Wickets, p.Stats.HighestScore,
	)
	out, err := scanPlayer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Player{}, repository.ErrNotFound
		}
		return model.Player{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *playerRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM players WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *playerRepository) CountByTeam(ctx context.Context, teamID int64) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM players WHERE team_id = $1`, teamID).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

func (r *playerRepository) TopRunScorers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return r.top(ctx, "stat_runs", limit)
}

func (r *playerRepository) TopWicketTakers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	return r.top(ctx, "stat_wickets", limit)
}

func (r *playerRepository) top(ctx context.Context, column string, limit int) ([]model.LeaderboardEntry, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 10
	}
	// column is one of two compile-time constants, never caller input.
	query := fmt.Sprintf(
		`SELECT id, name, team_id, %s FROM players WHERE %s > 0 ORDER BY %s DESC, id LIMIT $1`,
		column, column, column,
	)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx, query, limit)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()
	out := make([]model.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e model.LeaderboardEntry
		if err := rows.Scan(&e.PlayerID, &e.Name, &e.TeamID, &e.Value); err != nil {
			return nil, repository.MapPgError(err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *playerRepository) Count(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

var _ repository.PlayerRepository = (*playerRepository)(nil)
