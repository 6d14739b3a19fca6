// Package service holds business logic orchestration across repositories,
// engines and the broadcast channel. Kept intentionally lean: use-case
// coordination, validation and domain error shaping; the bidding and scoring
// rules themselves live in the auction and scoring packages.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/scoring"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidState marks operations rejected by an entity's current status:
// tossing a live match, starting one twice, abandoning a scheduled one.
// The engine packages carry their own, more specific state errors.
var ErrInvalidState = errors.New("invalid state")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError is the exported form for callers outside the package,
// primarily handlers rejecting malformed path or query parameters.
func NewInvalidInputError(fe []FieldError) error { return newInvalidInput(fe) }

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	if v, ok := err.(feIface); ok && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// PlayerService defines player registry use cases.
type PlayerService interface {
	CreatePlayer(ctx context.Context, in CreatePlayerInput) (model.Player, error)
	GetPlayer(ctx context.Context, id int64) (model.Player, error)
	ListPlayers(ctx context.Context, f repository.PlayerFilter, page repository.Page) (repository.PageResult[model.Player], error)
	UpdatePlayer(ctx context.Context, id int64, in UpdatePlayerInput) (model.Player, error)
	DeletePlayer(ctx context.Context, id int64) error
}

// TeamService defines franchise use cases.
type TeamService interface {
	CreateTeam(ctx context.Context, name, shortName string) (model.Team, error)
	GetTeam(ctx context.Context, id int64) (model.Team, error)
	ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.Team], error)
	UpdateTeam(ctx context.Context, id int64, name, shortName string) (model.Team, error)
	SetCaptain(ctx context.Context, teamID, playerID int64) (model.Team, error)
	GetSquad(ctx context.Context, teamID int64) ([]model.Player, error)
}

// AuctionService defines the lot lifecycle use cases.
type AuctionService interface {
	OpenLot(ctx context.Context, playerID int64, basePrice int) (model.Lot, error)
	PlaceBid(ctx context.Context, lotID, teamID int64, amount int) (model.Lot, error)
	SettleLot(ctx context.Context, lotID int64) (model.Lot, error)
	GetLot(ctx context.Context, id int64) (LotView, error)
	CurrentLot(ctx context.Context) (LotView, error)
	History(ctx context.Context, page repository.Page) (repository.PageResult[model.Lot], error)
}

// LotView decorates a lot with the minimum acceptable next bid so clients can
// preview it with the same rule the engine enforces.
type LotView struct {
	model.Lot
	MinNextBid int `json:"min_next_bid"`
}

// MatchService defines scheduling and live-scoring use cases.
type MatchService interface {
	CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error)
	GetMatch(ctx context.Context, id int64) (model.Match, error)
	ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.Match], error)
	SetToss(ctx context.Context, matchID, winnerID int64, decision string) (model.Match, error)
	StartMatch(ctx context.Context, matchID int64) (model.Match, error)
	RecordBall(ctx context.Context, matchID int64, in scoring.BallInput) (BallResult, error)
	EndInnings(ctx context.Context, matchID int64) (model.Match, error)
	AbandonMatch(ctx context.Context, matchID int64) (model.Match, error)
}

// BallResult is what a scorer gets back per delivery: the appended ball and
// the innings snapshot it produced.
type BallResult struct {
	MatchID int64         `json:"match_id"`
	Ball    model.Ball    `json:"ball"`
	Innings model.Innings `json:"innings"`
}

// TournamentService defines the read-model endpoints.
type TournamentService interface {
	PointTable(ctx context.Context) ([]model.Team, error)
	Stats(ctx context.Context) (model.TournamentStats, error)
	Leaderboard(ctx context.Context, limit int) (model.Leaderboard, error)
}

// CreatePlayerInput carries player registration fields.
type CreatePlayerInput struct {
	Name        string
	Email       string
	Phone       string
	NativePlace string
	Category    string
	Style       string
	PhotoURL    string
	BasePrice   int
}

// UpdatePlayerInput carries the identity fields an admin may edit. Sale state
// is owned by the auction engine and never settable here.
type UpdatePlayerInput struct {
	Name        string
	Phone       string
	NativePlace string
	Category    string
	Style       string
	PhotoURL    string
	BasePrice   int
}

// CreateMatchInput carries match scheduling fields.
type CreateMatchInput struct {
	Team1ID    int64
	Team2ID    int64
	Venue      string
	Date       time.Time
	MatchType  string
	OversLimit int
}
