// Package auction implements the bidding rules and settlement decisions for a
// single lot. It is pure state transformation: callers own persistence and
// fan-out, the engine only validates and mutates the lot it is handed.
package auction

import (
	"errors"
	"fmt"
	"time"

	"github.com/cricstack/tournament-service/internal/model"
)

// TimerReset is the countdown value restored after every accepted bid.
const TimerReset = 30

// Bid ladder: lots climbing under 1000 points move in steps of 100, from 1000
// up in steps of 150.
const (
	lowIncrement    = 100
	highIncrement   = 150
	incrementSwitch = 1000
)

var (
	// ErrLotNotActive rejects bids on and settlement of lots outside active status.
	ErrLotNotActive = errors.New("lot is not active")
	// ErrInsufficientFunds rejects bids above the team's remaining purse.
	ErrInsufficientFunds = errors.New("insufficient purse")
)

// BidTooLowError reports a bid under the computed minimum. The minimum is part
// of the message so clients can surface it directly.
type BidTooLowError struct {
	Amount  int
	Minimum int
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid %d is below the minimum acceptable bid %d", e.Amount, e.Minimum)
}

// Increment returns the required raise over the pre-bid current value.
// The schedule is a step function of the standing bid, never of the proposed
// amount (the historical sources disagreed; this is the documented choice).
func Increment(currentBid int) int {
	if currentBid < incrementSwitch {
		return lowIncrement
	}
	return highIncrement
}

// MinNextBid computes the minimum acceptable next bid. An opening bid equal to
// the base price is acceptable; after that each bid must clear the standing
// bid by the full increment.
func MinNextBid(basePrice, currentBid int) int {
	if currentBid == 0 {
		return basePrice
	}
	return currentBid + Increment(currentBid)
}

// ApplyBid validates a bid and, if acceptable, commits it to the lot: the bid
// log grows by one record, currentBid/currentBidder advance and the countdown
// timer resets. On any rejection the lot is left untouched, so at most one
// accepted bid is committed per invocation.
//
// Validation order is fixed: lot status, then purse, then minimum.
func ApplyBid(lot *model.Lot, team model.Team, amount int, now time.Time) error {
	if lot.Status != model.LotActive {
		return ErrLotNotActive
	}
	if team.Purse < amount {
		return ErrInsufficientFunds
	}
	if min := MinNextBid(lot.BasePrice, lot.CurrentBid); amount < min {
		return &BidTooLowError{Amount: amount, Minimum: min}
	}

	lot.CurrentBid = amount
	bidder := team.ID
	lot.CurrentBidder = &bidder
	lot.Bids = append(lot.Bids, model.Bid{
		TeamID:    team.ID,
		TeamName:  team.Name,
		Amount:    amount,
		Timestamp: now,
	})
	lot.Timer = TimerReset
	lot.TimerActive = true
	return nil
}

// Settle moves an active lot to its terminal status. With no recorded bidder
// the lot goes unsold; otherwise it is sold to the standing bidder at the
// standing bid. Financial side effects (purse debit, roster add, player mark)
// belong to the caller, which must apply them atomically with the lot write.
// Settling a non-active lot fails and changes nothing.
func Settle(lot *model.Lot, now time.Time) error {
	if lot.Status != model.LotActive {
		return ErrLotNotActive
	}
	lot.TimerActive = false
	lot.Timer = 0
	ended := now
	lot.EndedAt = &ended
	if lot.CurrentBidder == nil {
		lot.Status = model.LotUnsold
		return nil
	}
	lot.Status = model.LotSold
	lot.SoldTo = lot.CurrentBidder
	lot.SoldPrice = lot.CurrentBid
	return nil
}
