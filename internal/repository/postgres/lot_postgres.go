package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

const lotColumns = `id, player_id, base_price, current_bid, current_bidder,
	bids, status, sold_to, sold_price, timer, timer_active,
	started_at, ended_at, created_at, updated_at`

// lotRepository persists auction lots. The bid log rides in a jsonb column,
// so one lot is one row and every mutation is a whole-document write under
// the row lock taken by GetForUpdate.
type lotRepository struct{ pool *pgxpool.Pool }

func NewLotRepository(pool *pgxpool.Pool) repository.LotRepository {
	return &lotRepository{pool: pool}
}

func scanLot(row pgx.Row) (model.Lot, error) {
	var l model.Lot
	err := row.Scan(
		&l.ID, &l.PlayerID, &l.BasePrice, &l.CurrentBid, &l.CurrentBidder,
		&l.Bids, &l.Status, &l.SoldTo, &l.SoldPrice, &l.Timer, &l.TimerActive,
		&l.StartedAt, &l.EndedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create inserts an opening lot. The partial unique index on
// (player_id) WHERE status IN ('pending','active') turns a concurrent second
// open into ErrAlreadyExists, backing the one-open-lot-per-player invariant
// at the store.
func (r *lotRepository) Create(ctx context.Context, l model.Lot) (model.Lot, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Lot{}, err
	}
	if l.Bids == nil {
		l.Bids = []model.Bid{}
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO lots (player_id, base_price, bids, status, timer, timer_active, started_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+lotColumns,
		l.PlayerID, l.BasePrice, l.Bids, l.Status, l.Timer, l.TimerActive, l.StartedAt,
	)
	out, err := scanLot(row)
	if err != nil {
		return model.Lot{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *lotRepository) GetByID(ctx context.Context, id int64) (model.Lot, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate serializes concurrent bidders and settlers on the same lot:
// the second writer blocks here and re-reads committed state.
func (r *lotRepository) GetForUpdate(ctx context.Context, id int64) (model.Lot, error) {
	if !inTx(ctx) {
		return model.Lot{}, ErrNoTx
	}
	return r.get(ctx, id, true)
}

func (r *lotRepository) get(ctx context.Context, id int64, forUpdate bool) (model.Lot, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Lot{}, err
	}
	query := `SELECT ` + lotColumns + ` FROM lots WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	exec := getQ(ctx, r.pool)
	out, err := scanLot(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Lot{}, repository.ErrNotFound
		}
		return model.Lot{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *lotRepository) GetOpenByPlayer(ctx context.Context, playerID int64) (model.Lot, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Lot{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT `+lotColumns+` FROM lots
		 WHERE player_id = $1 AND status IN ($2, $3)`,
		playerID, model.LotPending, model.LotActive,
	)
	out, err := scanLot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Lot{}, repository.ErrNotFound
		}
		return model.Lot{}, repository.MapPgError(err)
	}
	return out, nil
}

// GetActive serves the UI convenience read. Writers always address lots by
// explicit identifier.
func (r *lotRepository) GetActive(ctx context.Context) (model.Lot, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Lot{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`SELECT `+lotColumns+` FROM lots WHERE status = $1 ORDER BY started_at DESC LIMIT 1`,
		model.LotActive,
	)
	out, err := scanLot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Lot{}, repository.ErrNotFound
		}
		return model.Lot{}, repository.MapPgError(err)
	}
	return out, nil
}

// Save rewrites the whole lot document.
func (r *lotRepository) Save(ctx context.Context, l model.Lot) (model.Lot, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.Lot{}, err
	}
	if l.Bids == nil {
		l.Bids = []model.Bid{}
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE lots SET
			current_bid = $2, current_bidder = $3, bids = $4, status = $5,
			sold_to = $6, sold_price = $7, timer = $8, timer_active = $9,
			ended_at = $10, updated_at = now()
		 WHERE id = $1
		 RETURNING `+lotColumns,
		l.ID, l.CurrentBid, l.CurrentBidder, l.Bids, l.Status,
		l.SoldTo, l.SoldPrice, l.Timer, l.TimerActive, l.EndedAt,
	)
	out, err := scanLot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Lot{}, repository.ErrNotFound
		}
		return model.Lot{}, repository.MapPgError(err)
	}
	return out, nil
}

// List returns lots newest-first for the auction history view.
func (r *lotRepository) List(ctx context.Context, p repository.Page) (repository.PageResult[model.Lot], error) {
	if err := ensurePool(r.pool); err != nil {
		return repository.PageResult[model.Lot]{}, err
	}
	limit, offset := sanitizeLimitOffset(p.Limit, p.Offset)
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+lotColumns+`, COUNT(*) OVER() AS total
		 FROM lots
		 ORDER BY started_at DESC
		 LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return repository.PageResult[model.Lot]{}, repository.MapPgError(err)
	}
	defer rows.Close()
	res := repository.PageResult[model.Lot]{Items: make([]model.Lot, 0, limit)}
	for rows.Next() {
		var l model.Lot
		var total int
		if err := rows.Scan(
			&l.ID, &l.PlayerID, &l.BasePrice, &l.CurrentBid, &l.CurrentBidder,
			&l.Bids, &l.Status, &l.SoldTo, &l.SoldPrice, &l.Timer, &l.TimerActive,
			&l.StartedAt, &l.EndedAt, &l.CreatedAt, &l.UpdatedAt, &total,
		); err != nil {
			return repository.PageResult[model.Lot]{}, repository.MapPgError(err)
		}
		res.Items = append(res.Items, l)
		res.Total = total
	}
	return res, nil
}

func (r *lotRepository) CountActive(ctx context.Context) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var n int
	exec := getQ(ctx, r.pool)
	if err := exec.QueryRow(ctx, `SELECT COUNT(*) FROM lots WHERE status = $1`, model.LotActive).Scan(&n); err != nil {
		return 0, repository.MapPgError(err)
	}
	return n, nil
}

var _ repository.LotRepository = (*lotRepository)(nil)
