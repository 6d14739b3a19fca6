package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/realtime"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/scoring"
)

const defaultOversLimit = 20

// matchService drives a match through its lifecycle: scheduled -> toss ->
// live -> completed (or abandoned). Every live-state mutation locks the match
// row first, so two scorers posting deliveries serialize and the ball log
// never loses an entry.
type matchService struct {
	matches   repository.MatchRepository
	teams     repository.TeamRepository
	players   repository.PlayerRepository
	tx        repository.TxManager
	broadcast realtime.Broadcaster
	log       zerolog.Logger
}

func NewMatchService(
	matches repository.MatchRepository,
	teams repository.TeamRepository,
	players repository.PlayerRepository,
	tx repository.TxManager,
	broadcast realtime.Broadcaster,
	logger zerolog.Logger,
) MatchService {
	l := logger.With().Str("module", "service").Str("component", "match").Logger()
	return &matchService{matches: matches, teams: teams, players: players, tx: tx, broadcast: broadcast, log: l}
}

func (s *matchService) CreateMatch(ctx context.Context, in CreateMatchInput) (model.Match, error) {
	var ferrs []FieldError
	if in.Team1ID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team1_id", Message: "must be > 0"})
	}
	if in.Team2ID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team2_id", Message: "must be > 0"})
	}
	if in.Team1ID > 0 && in.Team1ID == in.Team2ID {
		ferrs = append(ferrs, FieldError{Field: "team2_id", Message: "must differ from team1_id"})
	}
	if strings.TrimSpace(in.Venue) == "" {
		ferrs = append(ferrs, FieldError{Field: "venue", Message: "is required"})
	}
	if in.Date.IsZero() {
		ferrs = append(ferrs, FieldError{Field: "date", Message: "is required"})
	}
	if in.MatchType != "" && !isValidMatchType(in.MatchType) {
		ferrs = append(ferrs, FieldError{Field: "match_type", Message: "must be one of: league, playoff, final"})
	}
	if in.OversLimit < 0 {
		ferrs = append(ferrs, FieldError{Field: "overs_limit", Message: "must be >= 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Match{}, err
	}

	if _, err := s.teams.GetByID(ctx, in.Team1ID); err != nil {
		return model.Match{}, err
	}
	if _, err := s.teams.GetByID(ctx, in.Team2ID); err != nil {
		return model.Match{}, err
	}

	if in.MatchType == "" {
		in.MatchType = model.MatchTypeLeague
	}
	if in.OversLimit == 0 {
		in.OversLimit = defaultOversLimit
	}

	match, err := s.matches.Create(ctx, model.Match{
		Team1ID:    in.Team1ID,
		Team2ID:    in.Team2ID,
		Venue:      strings.TrimSpace(in.Venue),
		Date:       in.Date,
		MatchType:  in.MatchType,
		OversLimit: in.OversLimit,
		Status:     model.MatchScheduled,
	})
	if err != nil {
		s.log.Error().Err(err).Msg("create match failed")
		return model.Match{}, err
	}
	s.log.Info().Int64("match_id", match.ID).Int64("team1", in.Team1ID).Int64("team2", in.Team2ID).Msg("match scheduled")
	return match, nil
}

func (s *matchService) GetMatch(ctx context.Context, id int64) (model.Match, error) {
	if id <= 0 {
		return model.Match{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.matches.GetByID(ctx, id)
}

func (s *matchService) ListMatches(ctx context.Context, page repository.Page) (repository.PageResult[model.Match], error) {
	return s.matches.List(ctx, normalizePage(page))
}

// SetToss records the toss for a scheduled match. The winner must be one of
// the two scheduled sides.
func (s *matchService) SetToss(ctx context.Context, matchID, winnerID int64, decision string) (model.Match, error) {
	var ferrs []FieldError
	if matchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if winnerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "winner_id", Message: "must be > 0"})
	}
	if !isValidTossDecision(decision) {
		ferrs = append(ferrs, FieldError{Field: "decision", Message: "must be one of: bat, bowl"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Match{}, err
	}

	var out model.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		match, err := s.matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if match.Status != model.MatchScheduled {
			return ErrInvalidState
		}
		if winnerID != match.Team1ID && winnerID != match.Team2ID {
			return newInvalidInput([]FieldError{{Field: "winner_id", Message: "must be one of the scheduled teams"}})
		}
		match.Toss = &model.Toss{WinnerID: winnerID, Decision: decision}
		out, err = s.matches.Save(ctx, match)
		return err
	})
	if err != nil {
		return model.Match{}, err
	}
	s.log.Info().Int64("match_id", matchID).Int64("toss_winner", winnerID).Str("decision", decision).Msg("toss recorded")
	return out, nil
}

// StartMatch flips a tossed match to live and opens the first innings for
// whichever side the toss put in to bat.
func (s *matchService) StartMatch(ctx context.Context, matchID int64) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, newInvalidInput([]FieldError{{Field: "match_id", Message: "must be > 0"}})
	}

	var out model.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		match, err := s.matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if match.Status != model.MatchScheduled || match.Toss == nil {
			return ErrInvalidState
		}

		battingID := match.Toss.WinnerID
		if match.Toss.Decision == model.TossBowl {
			battingID = otherTeam(match, match.Toss.WinnerID)
		}
		match.Innings = append(match.Innings, model.Innings{TeamID: battingID})
		match.CurrentInnings = 1
		match.Status = model.MatchLive
		out, err = s.matches.Save(ctx, match)
		return err
	})
	if err != nil {
		return model.Match{}, err
	}

	s.publish(ctx, realtime.TopicMatchUpdate, out)
	s.log.Info().Int64("match_id", matchID).Int64("batting", out.Innings[0].TeamID).Msg("match started")
	return out, nil
}

// RecordBall appends one delivery to the current innings. The accumulator
// validates and mutates a copy of the locked innings document, so a rejected
// delivery persists nothing.
func (s *matchService) RecordBall(ctx context.Context, matchID int64, in scoring.BallInput) (BallResult, error) {
	var ferrs []FieldError
	if matchID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "match_id", Message: "must be > 0"})
	}
	if in.BatterID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "batter_id", Message: "must be > 0"})
	}
	if in.BowlerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "bowler_id", Message: "must be > 0"})
	}
	if in.Runs < 0 {
		ferrs = append(ferrs, FieldError{Field: "runs", Message: "must be >= 0"})
	}
	if in.IsExtra && !isValidExtraType(in.ExtraType) {
		ferrs = append(ferrs, FieldError{Field: "extra_type", Message: "must be one of: wide, noball, bye, legbye"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return BallResult{}, err
	}

	var res BallResult
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		match, err := s.matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if match.Status != model.MatchLive || match.CurrentInnings < 1 || match.CurrentInnings > len(match.Innings) {
			return ErrInvalidState
		}

		inn := &match.Innings[match.CurrentInnings-1]
		ball, err := scoring.RecordBall(inn, in)
		if err != nil {
			return err
		}
		saved, err := s.matches.Save(ctx, match)
		if err != nil {
			return err
		}
		res = BallResult{MatchID: saved.ID, Ball: ball, Innings: saved.Innings[saved.CurrentInnings-1]}
		return nil
	})
	if err != nil {
		s.log.Debug().Err(err).Int64("match_id", matchID).Msg("delivery rejected")
		return BallResult{}, err
	}

	s.publish(ctx, realtime.TopicMatchUpdate, res)
	return res, nil
}

// EndInnings closes the innings in progress. After the first it opens the
// second for the other side; after the second it decides the result and folds
// the match into team records and player careers, all in one transaction.
func (s *matchService) EndInnings(ctx context.Context, matchID int64) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, newInvalidInput([]FieldError{{Field: "match_id", Message: "must be > 0"}})
	}

	var out model.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		match, err := s.matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if match.Status != model.MatchLive || match.CurrentInnings < 1 || match.CurrentInnings > len(match.Innings) {
			return ErrInvalidState
		}

		current := &match.Innings[match.CurrentInnings-1]
		if current.Closed {
			return scoring.ErrInningsClosed
		}
		current.Closed = true

		if match.CurrentInnings == 1 {
			match.Innings = append(match.Innings, model.Innings{TeamID: otherTeam(match, current.TeamID)})
			match.CurrentInnings = 2
		} else {
			if err := s.completeMatch(ctx, &match); err != nil {
				return err
			}
		}
		out, err = s.matches.Save(ctx, match)
		return err
	})
	if err != nil {
		return model.Match{}, err
	}

	s.publish(ctx, realtime.TopicInningsEnded, out)
	s.log.Info().Int64("match_id", matchID).Str("status", out.Status).Msg("innings ended")
	return out, nil
}

// completeMatch runs inside the EndInnings transaction with the match row
// already locked. It decides the winner, then locks and updates both team
// records and every player who appears on a scorecard.
func (s *matchService) completeMatch(ctx context.Context, match *model.Match) error {
	first, second := match.Innings[0], match.Innings[1]
	res := scoring.DecideResult(first, second)

	match.Status = model.MatchCompleted
	match.Tied = res.Tied
	if !res.Tied {
		winnerID := res.WinnerID
		match.WinnerID = &winnerID
		match.WinMarginRuns = res.MarginRuns
		match.WinMarginWkts = res.MarginWkts
	}

	for _, inn := range []model.Innings{first, second} {
		opp := second
		if inn.TeamID == second.TeamID {
			opp = first
		}
		team, err := s.teams.GetForUpdate(ctx, inn.TeamID)
		if err != nil {
			return err
		}
		scoring.RollUpTeam(&team, inn, opp, res)
		if _, err := s.teams.Update(ctx, team); err != nil {
			return err
		}
	}

	careers := make(map[int64]*model.CareerStats)
	scoring.RollUpCareers(first, careers)
	scoring.RollUpCareers(second, careers)
	for playerID, delta := range careers {
		player, err := s.players.GetForUpdate(ctx, playerID)
		if err != nil {
			return err
		}
		player.Stats.Matches++
		player.Stats.Runs += delta.Runs
		player.Stats.Wickets += delta.Wickets
		if delta.HighestScore > player.Stats.HighestScore {
			player.Stats.HighestScore = delta.HighestScore
		}
		if _, err := s.players.Update(ctx, player); err != nil {
			return err
		}
	}
	return nil
}

// AbandonMatch moves a live match to abandoned. Nothing rolls up.
func (s *matchService) AbandonMatch(ctx context.Context, matchID int64) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, newInvalidInput([]FieldError{{Field: "match_id", Message: "must be > 0"}})
	}

	var out model.Match
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		match, err := s.matches.GetForUpdate(ctx, matchID)
		if err != nil {
			return err
		}
		if match.Status != model.MatchLive {
			return ErrInvalidState
		}
		match.Status = model.MatchAbandoned
		out, err = s.matches.Save(ctx, match)
		return err
	})
	if err != nil {
		return model.Match{}, err
	}

	s.publish(ctx, realtime.TopicMatchUpdate, out)
	s.log.Warn().Int64("match_id", matchID).Msg("match abandoned")
	return out, nil
}

func otherTeam(match model.Match, teamID int64) int64 {
	if teamID == match.Team1ID {
		return match.Team2ID
	}
	return match.Team1ID
}

func (s *matchService) publish(ctx context.Context, topic string, payload any) {
	if err := s.broadcast.Publish(ctx, topic, payload); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("broadcast failed")
	}
}
