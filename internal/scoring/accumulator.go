// Package scoring implements the ball-by-ball innings accumulator and match
// result rules. Like the auction engine it is pure: it mutates the innings it
// is handed and leaves persistence and fan-out to the caller.
package scoring

import (
	"errors"
	"math"

	"github.com/cricstack/tournament-service/internal/model"
)

// MaxWickets closes an innings; the 11th dismissal can never be recorded.
const MaxWickets = 10

var (
	// ErrInningsComplete rejects deliveries after the 10th wicket has fallen.
	ErrInningsComplete = errors.New("innings complete: all wickets have fallen")
	// ErrInningsClosed rejects deliveries into an explicitly closed innings.
	ErrInningsClosed = errors.New("innings is closed")
)

// BallInput carries one delivery as entered by the scorer.
type BallInput struct {
	Over         int
	BallNumber   int
	BowlerID     int64
	BatterID     int64
	Runs         int
	IsWicket     bool
	WicketType   string
	IsExtra      bool
	ExtraType    string
	ExtraRuns    int
	ShotLocation string
}

// OversFromBalls converts a legal-delivery count to mixed-radix overs
// notation: whole overs before the point, balls within the current over
// after it. Seven legal balls are 1.1, never 1.17.
func OversFromBalls(balls int) float64 {
	return float64(balls/6) + float64(balls%6)/10
}

// extraRuns derives the runs attributable to the extra itself. Wides and
// no-balls award one penalty run; byes and leg-byes carry the entered value;
// anything else contributes nothing.
func extraRuns(in BallInput) int {
	if !in.IsExtra {
		return 0
	}
	switch in.ExtraType {
	case model.ExtraWide, model.ExtraNoBall:
		return 1
	case model.ExtraBye, model.ExtraLegBye:
		return in.ExtraRuns
	default:
		return 0
	}
}

// legalDelivery reports whether the ball counts toward the six-ball over.
// Only wides are excluded: in this ruleset a no-ball still progresses the
// over even though it is an extra.
func legalDelivery(in BallInput) bool {
	return !(in.IsExtra && in.ExtraType == model.ExtraWide)
}

// RecordBall validates and applies one delivery to the innings: totals,
// wickets, batting and bowling lines, the extras ledger and the over counter
// all move together, and the ball is appended to the immutable log with
// generated commentary. The returned Ball is the appended record.
//
// All validation happens before any mutation, so a rejected ball leaves the
// innings untouched.
func RecordBall(inn *model.Innings, in BallInput) (model.Ball, error) {
	if inn.Closed {
		return model.Ball{}, ErrInningsClosed
	}
	if inn.Wickets >= MaxWickets {
		return model.Ball{}, ErrInningsComplete
	}

	ball := model.Ball{
		Over:         in.Over,
		BallNumber:   in.BallNumber,
		BowlerID:     in.BowlerID,
		BatterID:     in.BatterID,
		Runs:         in.Runs,
		IsWicket:     in.IsWicket,
		WicketType:   in.WicketType,
		IsExtra:      in.IsExtra,
		ExtraType:    in.ExtraType,
		ExtraRuns:    extraRuns(in),
		ShotLocation: in.ShotLocation,
		Commentary:   Commentary(in.Runs, in.IsWicket, in.ExtraType, in.ShotLocation),
	}

	inn.TotalRuns += ball.Runs + ball.ExtraRuns
	if ball.IsWicket {
		inn.Wickets++
	}

	applyBattingLine(inn, ball)
	applyBowlingLine(inn, ball)
	applyExtras(&inn.Extras, ball)

	if legalDelivery(in) {
		inn.LegalBalls++
	}
	inn.Overs = OversFromBalls(inn.LegalBalls)

	inn.Balls = append(inn.Balls, ball)
	return ball, nil
}

// applyBattingLine upserts the batter's scorecard row. The row is keyed by
// the not-yet-out entry for this player, so a batter dismissed earlier in the
// innings never has runs appended to a closed line. Wides are the only
// deliveries a batter does not face.
func applyBattingLine(inn *model.Innings, ball model.Ball) {
	faced := !(ball.IsExtra && ball.ExtraType == model.ExtraWide)

	idx := -1
	for i := range inn.Batters {
		if inn.Batters[i].PlayerID == ball.BatterID && !inn.Batters[i].IsOut {
			idx = i
			break
		}
	}
	if idx == -1 {
		inn.Batters = append(inn.Batters, model.BattingLine{PlayerID: ball.BatterID})
		idx = len(inn.Batters) - 1
	}

	line := &inn.Batters[idx]
	line.Runs += ball.Runs
	if faced {
		line.Balls++
	}
	if ball.Runs == 4 {
		line.Fours++
	}
	if ball.Runs == 6 {
		line.Sixes++
	}
	if ball.IsWicket {
		line.IsOut = true
		line.WicketType = ball.WicketType
		bowler := ball.BowlerID
		line.BowlerID = &bowler
	}
	if line.Balls > 0 {
		line.StrikeRate = float64(line.Runs) / float64(line.Balls) * 100
	}
}

// applyBowlingLine upserts the bowler's scorecard row. A wide is an uncounted
// extra here: it bumps the wides tally and nothing else, leaving conceded
// runs and the legal-ball count alone. No-balls concede runs but are exempt
// from the over increment. The zero-overs economy guard treats an over count
// under one as a single over.
func applyBowlingLine(inn *model.Innings, ball model.Ball) {
	if ball.IsExtra && ball.ExtraType == model.ExtraWide {
		idx := findBowler(inn, ball.BowlerID)
		inn.Bowlers[idx].Wides++
		return
	}

	idx := findBowler(inn, ball.BowlerID)
	line := &inn.Bowlers[idx]
	line.Runs += ball.Runs + ball.ExtraRuns
	if !(ball.IsExtra && ball.ExtraType == model.ExtraNoBall) {
		line.Balls++
		line.Overs = OversFromBalls(line.Balls)
	} else {
		line.NoBalls++
	}
	if ball.IsWicket {
		line.Wickets++
	}
	if ball.Runs == 0 && !ball.IsExtra {
		line.Dots++
	}
	recomputeEconomy(line)
}

func findBowler(inn *model.Innings, bowlerID int64) int {
	for i := range inn.Bowlers {
		if inn.Bowlers[i].PlayerID == bowlerID {
			return i
		}
	}
	inn.Bowlers = append(inn.Bowlers, model.BowlingLine{PlayerID: bowlerID})
	return len(inn.Bowlers) - 1
}

func recomputeEconomy(line *model.BowlingLine) {
	overs := line.Overs
	if overs < 1 {
		overs = 1
	}
	line.Economy = float64(line.Runs) / overs
}

func applyExtras(ex *model.Extras, ball model.Ball) {
	if !ball.IsExtra {
		return
	}
	switch ball.ExtraType {
	case model.ExtraWide:
		ex.Wides++
	case model.ExtraNoBall:
		ex.NoBalls++
	case model.ExtraBye:
		ex.Byes += ball.ExtraRuns
	case model.ExtraLegBye:
		ex.LegByes += ball.ExtraRuns
	}
}

// RunRate is runs per six-ball over, the NRR building block. Zero balls faced
// yields zero rather than a division blow-up.
func RunRate(runs, balls int) float64 {
	if balls == 0 {
		return 0
	}
	return float64(runs) / (float64(balls) / 6)
}

// NetRunRate is (runs scored / overs faced) - (runs conceded / overs bowled),
// with each side independently guarded against zero overs.
func NetRunRate(runsScored, ballsFaced, runsConceded, ballsBowled int) float64 {
	nrr := RunRate(runsScored, ballsFaced) - RunRate(runsConceded, ballsBowled)
	// Round to two decimals so the stored value is stable across replays.
	return math.Round(nrr*100) / 100
}
