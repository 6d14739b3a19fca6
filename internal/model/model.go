// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Player categories accepted at registration.
const (
	CategoryBatsman      = "batsman"
	CategoryBowler       = "bowler"
	CategoryAllRounder   = "all-rounder"
	CategoryWicketKeeper = "wicket-keeper"
)

// CareerStats accumulates a player's numbers across completed matches.
type CareerStats struct {
	Matches      int `json:"matches"`
	Runs         int `json:"runs"`
	Wickets      int `json:"wickets"`
	HighestScore int `json:"highest_score"`
}

// Player represents a registered tournament player.
// TeamID stays nil until an auction lot settles sold for this player.
type Player struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	NativePlace string      `json:"native_place"`
	Category    string      `json:"category"`
	Style       string      `json:"style"`
	PhotoURL    string      `json:"photo_url,omitempty"`
	BasePrice   int         `json:"base_price"`
	IsSold      bool        `json:"is_sold"`
	SoldPrice   int         `json:"sold_price"`
	TeamID      *int64      `json:"team_id,omitempty"`
	IsCaptain   bool        `json:"is_captain"`
	Stats       CareerStats `json:"stats"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Team represents a franchise with a points purse and a cumulative match record.
// BallsFaced/BallsBowled are raw ball counts; overs views are derived from them.
type Team struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	ShortName     string    `json:"short_name"`
	CaptainID     *int64    `json:"captain_id,omitempty"`
	Purse         int       `json:"purse"`
	Points        int       `json:"points"`
	MatchesPlayed int       `json:"matches_played"`
	MatchesWon    int       `json:"matches_won"`
	MatchesLost   int       `json:"matches_lost"`
	MatchesTied   int       `json:"matches_tied"`
	RunsScored    int       `json:"runs_scored"`
	RunsConceded  int       `json:"runs_conceded"`
	BallsFaced    int       `json:"balls_faced"`
	BallsBowled   int       `json:"balls_bowled"`
	NetRunRate    float64   `json:"net_run_rate"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Lot lifecycle statuses. Sold and unsold are terminal.
const (
	LotPending = "pending"
	LotActive  = "active"
	LotSold    = "sold"
	LotUnsold  = "unsold"
)

// Bid is one accepted entry in a lot's append-only bid log.
type Bid struct {
	TeamID    int64     `json:"team_id"`
	TeamName  string    `json:"team_name"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// Lot is a single player's auction instance, from opening to settlement.
// The bid log is stored as a document on the lot row, so every accepted bid
// is a single-row read-modify-write.
type Lot struct {
	ID            int64      `json:"id"`
	PlayerID      int64      `json:"player_id"`
	BasePrice     int        `json:"base_price"`
	CurrentBid    int        `json:"current_bid"`
	CurrentBidder *int64     `json:"current_bidder,omitempty"`
	Bids          []Bid      `json:"bids"`
	Status        string     `json:"status"`
	SoldTo        *int64     `json:"sold_to,omitempty"`
	SoldPrice     int        `json:"sold_price"`
	Timer         int        `json:"timer"`
	TimerActive   bool       `json:"timer_active"`
	StartedAt     time.Time  `json:"started_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Match statuses. Abandoned is an absorbing alternate from live.
const (
	MatchScheduled = "scheduled"
	MatchLive      = "live"
	MatchCompleted = "completed"
	MatchAbandoned = "abandoned"
)

// Toss decisions.
const (
	TossBat  = "bat"
	TossBowl = "bowl"
)

// Match types.
const (
	MatchTypeLeague  = "league"
	MatchTypePlayoff = "playoff"
	MatchTypeFinal   = "final"
)

// Extra kinds on a delivery.
const (
	ExtraWide   = "wide"
	ExtraNoBall = "noball"
	ExtraBye    = "bye"
	ExtraLegBye = "legbye"
)

// Ball is one delivery in the append-only ball log. Never edited or removed.
type Ball struct {
	Over         int    `json:"over"`
	BallNumber   int    `json:"ball_number"`
	BowlerID     int64  `json:"bowler_id"`
	BatterID     int64  `json:"batter_id"`
	Runs         int    `json:"runs"`
	IsWicket     bool   `json:"is_wicket"`
	WicketType   string `json:"wicket_type,omitempty"`
	IsExtra      bool   `json:"is_extra"`
	ExtraType    string `json:"extra_type,omitempty"`
	ExtraRuns    int    `json:"extra_runs"`
	ShotLocation string `json:"shot_location,omitempty"`
	Commentary   string `json:"commentary"`
}

// BattingLine is one batter's row in an innings scorecard.
type BattingLine struct {
	PlayerID   int64   `json:"player_id"`
	Runs       int     `json:"runs"`
	Balls      int     `json:"balls"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	IsOut      bool    `json:"is_out"`
	WicketType string  `json:"wicket_type,omitempty"`
	BowlerID   *int64  `json:"bowler_id,omitempty"`
	StrikeRate float64 `json:"strike_rate"`
}

// BowlingLine is one bowler's row in an innings scorecard.
// Balls counts legal deliveries only; Overs is the derived mixed-radix view.
type BowlingLine struct {
	PlayerID int64   `json:"player_id"`
	Balls    int     `json:"balls"`
	Overs    float64 `json:"overs"`
	Maidens  int     `json:"maidens"`
	Runs     int     `json:"runs"`
	Wickets  int     `json:"wickets"`
	Dots     int     `json:"dots"`
	Wides    int     `json:"wides"`
	NoBalls  int     `json:"no_balls"`
	Economy  float64 `json:"economy"`
}

// Extras is the innings extras ledger.
type Extras struct {
	Wides   int `json:"wides"`
	NoBalls int `json:"no_balls"`
	Byes    int `json:"byes"`
	LegByes int `json:"leg_byes"`
}

// Innings is one team's batting turn. Stored as a document on the match row;
// LegalBalls is the source of truth for the mixed-radix Overs value.
type Innings struct {
	TeamID     int64         `json:"team_id"`
	TotalRuns  int           `json:"total_runs"`
	Wickets    int           `json:"wickets"`
	LegalBalls int           `json:"legal_balls"`
	Overs      float64       `json:"overs"`
	Balls      []Ball        `json:"balls"`
	Batters    []BattingLine `json:"batters"`
	Bowlers    []BowlingLine `json:"bowlers"`
	Extras     Extras        `json:"extras"`
	Closed     bool          `json:"closed"`
}

// Toss records who won the toss and what they chose.
type Toss struct {
	WinnerID int64  `json:"winner_id"`
	Decision string `json:"decision"`
}

// Match holds two teams and up to two innings documents.
// CurrentInnings points at the in-progress innings (1 or 2).
type Match struct {
	ID             int64     `json:"id"`
	Team1ID        int64     `json:"team1_id"`
	Team2ID        int64     `json:"team2_id"`
	Venue          string    `json:"venue"`
	Date           time.Time `json:"date"`
	MatchType      string    `json:"match_type"`
	OversLimit     int       `json:"overs_limit"`
	Toss           *Toss     `json:"toss,omitempty"`
	Status         string    `json:"status"`
	CurrentInnings int       `json:"current_innings"`
	Innings        []Innings `json:"innings"`
	WinnerID       *int64    `json:"winner_id,omitempty"`
	WinMarginRuns  int       `json:"win_margin_runs"`
	WinMarginWkts  int       `json:"win_margin_wickets"`
	Tied           bool      `json:"tied"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TournamentStats is a read-only dashboard summary.
type TournamentStats struct {
	TotalPlayers     int `json:"total_players"`
	TotalTeams       int `json:"total_teams"`
	UpcomingMatches  int `json:"upcoming_matches"`
	ActiveLots       int `json:"active_lots"`
	CompletedMatches int `json:"completed_matches"`
}

// LeaderboardEntry is one row of the run-scorer or wicket-taker tables.
type LeaderboardEntry struct {
	PlayerID int64  `json:"player_id"`
	Name     string `json:"name"`
	TeamID   *int64 `json:"team_id,omitempty"`
	Value    int    `json:"value"`
}

// Leaderboard groups the tournament's top performers.
type Leaderboard struct {
	Batsmen []LeaderboardEntry `json:"batsmen"`
	Bowlers []LeaderboardEntry `json:"bowlers"`
}
