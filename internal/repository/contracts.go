package repository

import (
	"context"

	"github.com/cricstack/tournament-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// Settlement and innings-close roll-ups span several rows, so a single entry
// point keeps those boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// PlayerFilter narrows player listings. Nil fields mean "any".
type PlayerFilter struct {
	IsSold   *bool
	Category *string
	TeamID   *int64
}

// PlayerRepository declares persistence operations for players.
// I return domain models and surface domain errors from errors.go rather than PG codes.
type PlayerRepository interface {
	Create(ctx context.Context, p model.Player) (model.Player, error)
	GetByID(ctx context.Context, id int64) (model.Player, error)
	// GetForUpdate locks the player row for the rest of the surrounding tx.
	// Callers must be inside WithinTx.
	GetForUpdate(ctx context.Context, id int64) (model.Player, error)
	List(ctx context.Context, f PlayerFilter, p Page) (PageResult[model.Player], error)
	Update(ctx context.Context, p model.Player) (model.Player, error)
	Delete(ctx context.Context, id int64) error
	CountByTeam(ctx context.Context, teamID int64) (int, error)
	// TopRunScorers/TopWicketTakers back the tournament leaderboard.
	TopRunScorers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	TopWicketTakers(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	Count(ctx context.Context) (int, error)
}

// TeamRepository declares persistence operations for teams.
type TeamRepository interface {
	Create(ctx context.Context, t model.Team) (model.Team, error)
	GetByID(ctx context.Context, id int64) (model.Team, error)
	GetForUpdate(ctx context.Context, id int64) (model.Team, error)
	// List returns teams in point-table order: points desc, then net run rate desc.
	List(ctx context.Context, p Page) (PageResult[model.Team], error)
	Update(ctx context.Context, t model.Team) (model.Team, error)
	Count(ctx context.Context) (int, error)
}

// LotRepository declares persistence operations for auction lots.
// The bid log travels with the lot row, so Save is a whole-document write.
type LotRepository interface {
	Create(ctx context.Context, l model.Lot) (model.Lot, error)
	GetByID(ctx context.Context, id int64) (model.Lot, error)
	GetForUpdate(ctx context.Context, id int64) (model.Lot, error)
	// GetOpenByPlayer finds a pending/active lot for the player, if any.
	GetOpenByPlayer(ctx context.Context, playerID int64) (model.Lot, error)
	// GetActive returns the currently active lot. ErrNotFound when none is open.
	GetActive(ctx context.Context) (model.Lot, error)
	Save(ctx context.Context, l model.Lot) (model.Lot, error)
	List(ctx context.Context, p Page) (PageResult[model.Lot], error)
	CountActive(ctx context.Context) (int, error)
}

// MatchRepository declares persistence operations for matches.
// Innings are a document column on the match row; Save rewrites it whole.
type MatchRepository interface {
	Create(ctx context.Context, m model.Match) (model.Match, error)
	GetByID(ctx context.Context, id int64) (model.Match, error)
	GetForUpdate(ctx context.Context, id int64) (model.Match, error)
	Save(ctx context.Context, m model.Match) (model.Match, error)
	List(ctx context.Context, p Page) (PageResult[model.Match], error)
	CountByStatus(ctx context.Context, status string) (int, error)
}
