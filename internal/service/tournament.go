package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

const defaultLeaderboardLimit = 10

// tournamentService serves the read model: the point table, the dashboard
// counters and the top-performer boards. No writes, no locks.
type tournamentService struct {
	teams   repository.TeamRepository
	players repository.PlayerRepository
	lots    repository.LotRepository
	matches repository.MatchRepository
	log     zerolog.Logger
}

func NewTournamentService(
	teams repository.TeamRepository,
	players repository.PlayerRepository,
	lots repository.LotRepository,
	matches repository.MatchRepository,
	logger zerolog.Logger,
) TournamentService {
	l := logger.With().Str("module", "service").Str("component", "tournament").Logger()
	return &tournamentService{teams: teams, players: players, lots: lots, matches: matches, log: l}
}

// PointTable returns every team ordered by points, net run rate breaking ties.
func (s *tournamentService) PointTable(ctx context.Context) ([]model.Team, error) {
	res, err := s.teams.List(ctx, repository.Page{Limit: 100})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

func (s *tournamentService) Stats(ctx context.Context) (model.TournamentStats, error) {
	players, err := s.players.Count(ctx)
	if err != nil {
		return model.TournamentStats{}, err
	}
	teams, err := s.teams.Count(ctx)
	if err != nil {
		return model.TournamentStats{}, err
	}
	activeLots, err := s.lots.CountActive(ctx)
	if err != nil {
		return model.TournamentStats{}, err
	}
	upcoming, err := s.matches.CountByStatus(ctx, model.MatchScheduled)
	if err != nil {
		return model.TournamentStats{}, err
	}
	completed, err := s.matches.CountByStatus(ctx, model.MatchCompleted)
	if err != nil {
		return model.TournamentStats{}, err
	}
	return model.TournamentStats{
		TotalPlayers:     players,
		TotalTeams:       teams,
		UpcomingMatches:  upcoming,
		ActiveLots:       activeLots,
		CompletedMatches: completed,
	}, nil
}

func (s *tournamentService) Leaderboard(ctx context.Context, limit int) (model.Leaderboard, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardLimit
	}
	batsmen, err := s.players.TopRunScorers(ctx, limit)
	if err != nil {
		return model.Leaderboard{}, err
	}
	bowlers, err := s.players.TopWicketTakers(ctx, limit)
	if err != nil {
		return model.Leaderboard{}, err
	}
	return model.Leaderboard{Batsmen: batsmen, Bowlers: bowlers}, nil
}
