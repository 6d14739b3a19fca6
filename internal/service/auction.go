package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cricstack/tournament-service/internal/auction"
	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/realtime"
	"github.com/cricstack/tournament-service/internal/repository"
)

// auctionService orchestrates the lot lifecycle: it owns persistence
// boundaries and event fan-out while the auction package owns the rules.
// Every mutation runs inside WithinTx with the lot row locked, so concurrent
// bids, a manual settle and a timer-expiry settle all serialize on the same
// lock and re-validate against fresh state.
type auctionService struct {
	lots         repository.LotRepository
	teams        repository.TeamRepository
	players      repository.PlayerRepository
	tx           repository.TxManager
	broadcast    realtime.Broadcaster
	maxSquadSize int
	log          zerolog.Logger

	mu     sync.Mutex
	timers map[int64]*time.Timer
}

func NewAuctionService(
	lots repository.LotRepository,
	teams repository.TeamRepository,
	players repository.PlayerRepository,
	tx repository.TxManager,
	broadcast realtime.Broadcaster,
	maxSquadSize int,
	logger zerolog.Logger,
) AuctionService {
	l := logger.With().Str("module", "service").Str("component", "auction").Logger()
	return &auctionService{
		lots:         lots,
		teams:        teams,
		players:      players,
		tx:           tx,
		broadcast:    broadcast,
		maxSquadSize: maxSquadSize,
		log:          l,
		timers:       make(map[int64]*time.Timer),
	}
}

// OpenLot puts a player under the hammer. The player must exist and be
// unsold, and no pending/active lot may exist for them; the store's partial
// unique index backs the same invariant against races.
func (s *auctionService) OpenLot(ctx context.Context, playerID int64, basePrice int) (model.Lot, error) {
	var ferrs []FieldError
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if basePrice < 0 {
		ferrs = append(ferrs, FieldError{Field: "base_price", Message: "must be >= 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Lot{}, err
	}

	player, err := s.players.GetByID(ctx, playerID)
	if err != nil {
		return model.Lot{}, err
	}
	if player.IsSold {
		return model.Lot{}, repository.ErrConflict
	}
	if _, err := s.lots.GetOpenByPlayer(ctx, playerID); err == nil {
		return model.Lot{}, repository.ErrConflict
	} else if !errors.Is(err, repository.ErrNotFound) {
		return model.Lot{}, err
	}
	if basePrice == 0 {
		basePrice = player.BasePrice
	}

	lot, err := s.lots.Create(ctx, model.Lot{
		PlayerID:    playerID,
		BasePrice:   basePrice,
		Status:      model.LotActive,
		Timer:       auction.TimerReset,
		TimerActive: true,
		StartedAt:   time.Now().UTC(),
	})
	if err != nil {
		s.log.Error().Err(err).Int64("player_id", playerID).Msg("open lot failed")
		return model.Lot{}, err
	}

	s.publish(ctx, realtime.TopicAuctionStarted, lot)
	s.scheduleExpiry(lot.ID, lot.Timer)
	s.log.Info().Int64("lot_id", lot.ID).Int64("player_id", playerID).Int("base_price", basePrice).Msg("lot opened")
	return lot, nil
}

// PlaceBid validates and commits one bid. Lot state is re-read under the row
// lock, so two concurrent bidders can never both extend the log from the same
// stale currentBid.
func (s *auctionService) PlaceBid(ctx context.Context, lotID, teamID int64, amount int) (model.Lot, error) {
	var ferrs []FieldError
	if lotID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "lot_id", Message: "must be > 0"})
	}
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if amount <= 0 {
		ferrs = append(ferrs, FieldError{Field: "amount", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Lot{}, err
	}

	now := time.Now().UTC()
	var out model.Lot
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		lot, err := s.lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		team, err := s.teams.GetByID(ctx, teamID)
		if err != nil {
			return err
		}
		if err := auction.ApplyBid(&lot, team, amount, now); err != nil {
			return err
		}
		out, err = s.lots.Save(ctx, lot)
		return err
	})
	if err != nil {
		s.log.Debug().Err(err).Int64("lot_id", lotID).Int64("team_id", teamID).Int("amount", amount).Msg("bid rejected")
		return model.Lot{}, err
	}

	s.publish(ctx, realtime.TopicNewBid, newBidEvent{
		LotID:     out.ID,
		TeamID:    teamID,
		TeamName:  out.Bids[len(out.Bids)-1].TeamName,
		Amount:    amount,
		Timestamp: now,
	})
	s.scheduleExpiry(out.ID, out.Timer)
	s.log.Info().Int64("lot_id", lotID).Int64("team_id", teamID).Int("amount", amount).Msg("bid accepted")
	return out, nil
}

// SettleLot closes an active lot. A sold lot debits the winner's purse,
// claims a roster slot and marks the player inside the same transaction
// as the lot write, so a failure anywhere applies nothing.
func (s *auctionService) SettleLot(ctx context.Context, lotID int64) (model.Lot, error) {
	if lotID <= 0 {
		return model.Lot{}, newInvalidInput([]FieldError{{Field: "lot_id", Message: "must be > 0"}})
	}

	now := time.Now().UTC()
	var out model.Lot
	var winner *model.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		lot, err := s.lots.GetForUpdate(ctx, lotID)
		if err != nil {
			return err
		}
		if err := auction.Settle(&lot, now); err != nil {
			return err
		}
		if lot.Status == model.LotSold {
			team, err := s.teams.GetForUpdate(ctx, *lot.SoldTo)
			if err != nil {
				return err
			}
			if team.Purse < lot.SoldPrice {
				// Can only happen if another lot drained the purse since this
				// bid was accepted; refuse rather than go negative.
				return auction.ErrInsufficientFunds
			}
			squad, err := s.players.CountByTeam(ctx, team.ID)
			if err != nil {
				return err
			}
			if squad >= s.maxSquadSize {
				return repository.ErrConflict
			}

			team.Purse -= lot.SoldPrice
			updated, err := s.teams.Update(ctx, team)
			if err != nil {
				return err
			}
			winner = &updated

			player, err := s.players.GetForUpdate(ctx, lot.PlayerID)
			if err != nil {
				return err
			}
			player.IsSold = true
			player.SoldPrice = lot.SoldPrice
			teamID := team.ID
			player.TeamID = &teamID
			if _, err := s.players.Update(ctx, player); err != nil {
				return err
			}
		}
		out, err = s.lots.Save(ctx, lot)
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Int64("lot_id", lotID).Msg("settle failed")
		return model.Lot{}, err
	}

	s.cancelExpiry(lotID)
	if out.Status == model.LotSold {
		s.publish(ctx, realtime.TopicPlayerSold, playerSoldEvent{
			LotID:     out.ID,
			PlayerID:  out.PlayerID,
			TeamID:    *out.SoldTo,
			TeamName:  winner.Name,
			SoldPrice: out.SoldPrice,
		})
		s.log.Info().Int64("lot_id", out.ID).Int64("team_id", *out.SoldTo).Int("price", out.SoldPrice).Msg("player sold")
	} else {
		s.publish(ctx, realtime.TopicPlayerUnsold, playerUnsoldEvent{LotID: out.ID, PlayerID: out.PlayerID})
		s.log.Info().Int64("lot_id", out.ID).Msg("player unsold")
	}
	return out, nil
}

func (s *auctionService) GetLot(ctx context.Context, id int64) (LotView, error) {
	if id <= 0 {
		return LotView{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	lot, err := s.lots.GetByID(ctx, id)
	if err != nil {
		return LotView{}, err
	}
	return lotView(lot), nil
}

// CurrentLot is the UI convenience read for the lot under the hammer.
func (s *auctionService) CurrentLot(ctx context.Context) (LotView, error) {
	lot, err := s.lots.GetActive(ctx)
	if err != nil {
		return LotView{}, err
	}
	return lotView(lot), nil
}

func (s *auctionService) History(ctx context.Context, page repository.Page) (repository.PageResult[model.Lot], error) {
	return s.lots.List(ctx, normalizePage(page))
}

func lotView(lot model.Lot) LotView {
	return LotView{Lot: lot, MinNextBid: auction.MinNextBid(lot.BasePrice, lot.CurrentBid)}
}

// scheduleExpiry (re)arms the countdown for a lot. On expiry the lot is
// settled through the exact same path as a manual settle; if an admin got
// there first the expiry sees a terminal lot and backs off.
func (s *auctionService) scheduleExpiry(lotID int64, seconds int) {
	if seconds <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[lotID]; ok {
		t.Stop()
	}
	s.timers[lotID] = time.AfterFunc(time.Duration(seconds)*time.Second, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.SettleLot(ctx, lotID); err != nil && !errors.Is(err, auction.ErrLotNotActive) {
			s.log.Error().Err(err).Int64("lot_id", lotID).Msg("timer settle failed")
		}
	})
}

func (s *auctionService) cancelExpiry(lotID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[lotID]; ok {
		t.Stop()
		delete(s.timers, lotID)
	}
}

// publish fans out an event; failures are logged, never surfaced, because
// persisted state is authoritative.
func (s *auctionService) publish(ctx context.Context, topic string, payload any) {
	if err := s.broadcast.Publish(ctx, topic, payload); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("broadcast failed")
	}
}

type newBidEvent struct {
	LotID     int64     `json:"lot_id"`
	TeamID    int64     `json:"team_id"`
	TeamName  string    `json:"team_name"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type playerSoldEvent struct {
	LotID     int64  `json:"lot_id"`
	PlayerID  int64  `json:"player_id"`
	TeamID    int64  `json:"team_id"`
	TeamName  string `json:"team_name"`
	SoldPrice int    `json:"sold_price"`
}

type playerUnsoldEvent struct {
	LotID    int64 `json:"lot_id"`
	PlayerID int64 `json:"player_id"`
}
