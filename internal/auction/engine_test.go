package auction_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cricstack/tournament-service/internal/auction"
	"github.com/cricstack/tournament-service/internal/model"
)

func activeLot(basePrice int) *model.Lot {
	return &model.Lot{
		ID:        1,
		PlayerID:  10,
		BasePrice: basePrice,
		Status:    model.LotActive,
		StartedAt: time.Now(),
	}
}

func team(id int64, purse int) model.Team {
	return model.Team{ID: id, Name: "T", Purse: purse}
}

func TestIncrement(t *testing.T) {
	cases := []struct {
		currentBid int
		want       int
	}{
		{0, 100},
		{500, 100},
		{999, 100},
		{1000, 150},
		{2500, 150},
	}
	for _, tc := range cases {
		if got := auction.Increment(tc.currentBid); got != tc.want {
			t.Fatalf("Increment(%d) = %d, want %d", tc.currentBid, got, tc.want)
		}
	}
}

func TestMinNextBid(t *testing.T) {
	// Opening bid floor is the base price itself.
	if got := auction.MinNextBid(100, 0); got != 100 {
		t.Fatalf("opening minimum = %d, want 100", got)
	}
	if got := auction.MinNextBid(100, 100); got != 200 {
		t.Fatalf("minimum after 100 = %d, want 200", got)
	}
	if got := auction.MinNextBid(100, 1000); got != 1150 {
		t.Fatalf("minimum after 1000 = %d, want 1150", got)
	}
}

func TestApplyBid_OpeningEqualToBaseAccepted(t *testing.T) {
	lot := activeLot(100)
	err := auction.ApplyBid(lot, team(1, 5000), 100, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 100, lot.CurrentBid)
	require.NotNil(t, lot.CurrentBidder)
	assert.Equal(t, int64(1), *lot.CurrentBidder)
	assert.Len(t, lot.Bids, 1)
	assert.Equal(t, auction.TimerReset, lot.Timer)
}

func TestApplyBid_BelowMinimumCitesMinimum(t *testing.T) {
	lot := activeLot(100)
	require.NoError(t, auction.ApplyBid(lot, team(1, 5000), 100, time.Now()))
	require.NoError(t, auction.ApplyBid(lot, team(2, 5000), 200, time.Now()))

	// Standing bid 200, increment 100 => minimum 300. 250 must be rejected.
	err := auction.ApplyBid(lot, team(1, 5000), 250, time.Now())
	var tooLow *auction.BidTooLowError
	require.ErrorAs(t, err, &tooLow)
	assert.Equal(t, 300, tooLow.Minimum)
	assert.True(t, strings.Contains(err.Error(), "300"), "message must cite the minimum: %s", err)

	// Rejection leaves the lot untouched.
	assert.Equal(t, 200, lot.CurrentBid)
	assert.Len(t, lot.Bids, 2)
}

func TestApplyBid_StrictlyIncreasingSequence(t *testing.T) {
	lot := activeLot(100)
	amounts := []int{100, 200, 300, 450, 1000, 1150, 1300}
	for i, amt := range amounts {
		if err := auction.ApplyBid(lot, team(int64(i%2+1), 10000), amt, time.Now()); err != nil {
			t.Fatalf("bid %d rejected: %v", amt, err)
		}
	}
	prev := 0
	for i, b := range lot.Bids {
		if b.Amount <= prev {
			t.Fatalf("bid log not strictly increasing at %d: %d after %d", i, b.Amount, prev)
		}
		if prev > 0 && b.Amount-prev < auction.Increment(prev) {
			t.Fatalf("raise %d->%d under increment %d", prev, b.Amount, auction.Increment(prev))
		}
		prev = b.Amount
	}
	assert.Equal(t, 1300, lot.CurrentBid)
}

func TestApplyBid_InsufficientPurse(t *testing.T) {
	lot := activeLot(100)
	err := auction.ApplyBid(lot, team(1, 50), 100, time.Now())
	require.ErrorIs(t, err, auction.ErrInsufficientFunds)
	assert.Equal(t, 0, lot.CurrentBid)
	assert.Empty(t, lot.Bids)
}

func TestApplyBid_NonActiveLot(t *testing.T) {
	for _, status := range []string{model.LotPending, model.LotSold, model.LotUnsold} {
		lot := activeLot(100)
		lot.Status = status
		err := auction.ApplyBid(lot, team(1, 5000), 100, time.Now())
		if !errors.Is(err, auction.ErrLotNotActive) {
			t.Fatalf("status %s: expected ErrLotNotActive, got %v", status, err)
		}
	}
}

func TestSettle_NoBidsGoesUnsold(t *testing.T) {
	lot := activeLot(100)
	require.NoError(t, auction.Settle(lot, time.Now()))
	assert.Equal(t, model.LotUnsold, lot.Status)
	assert.Nil(t, lot.SoldTo)
	assert.Equal(t, 0, lot.SoldPrice)
	require.NotNil(t, lot.EndedAt)
}

func TestSettle_WithBidderGoesSold(t *testing.T) {
	lot := activeLot(100)
	require.NoError(t, auction.ApplyBid(lot, team(3, 5000), 100, time.Now()))
	require.NoError(t, auction.ApplyBid(lot, team(4, 5000), 200, time.Now()))

	require.NoError(t, auction.Settle(lot, time.Now()))
	assert.Equal(t, model.LotSold, lot.Status)
	require.NotNil(t, lot.SoldTo)
	assert.Equal(t, int64(4), *lot.SoldTo)
	assert.Equal(t, 200, lot.SoldPrice)
	assert.False(t, lot.TimerActive)
}

func TestSettle_TerminalLotRejected(t *testing.T) {
	lot := activeLot(100)
	require.NoError(t, auction.Settle(lot, time.Now()))
	err := auction.Settle(lot, time.Now())
	require.ErrorIs(t, err, auction.ErrLotNotActive)
}
