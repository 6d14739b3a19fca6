package handler_test

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/config"
	"github.com/cricstack/tournament-service/internal/handler"
	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/scoring"
	"github.com/cricstack/tournament-service/internal/service"
)

const (
	adminToken   = "admin-secret"
	captainToken = "captain-secret"
)

// stubPingerNoop satisfies handler.Pinger (health endpoints not focus here).
type stubPingerNoop struct{}

func (s stubPingerNoop) Ping(ctx context.Context) error { return nil }

// stubs let each test control one method outcome; unused methods return zero values.

type stubPlayerService struct {
	player model.Player
	list   repository.PageResult[model.Player]
	err    error
}

func (s *stubPlayerService) CreatePlayer(context.Context, service.CreatePlayerInput) (model.Player, error) {
	return s.player, s.err
}
func (s *stubPlayerService) GetPlayer(context.Context, int64) (model.Player, error) {
	return s.player, s.err
}
func (s *stubPlayerService) ListPlayers(context.Context, repository.PlayerFilter, repository.Page) (repository.PageResult[model.Player], error) {
	return s.list, s.err
}
func (s *stubPlayerService) UpdatePlayer(context.Context, int64, service.UpdatePlayerInput) (model.Player, error) {
	return s.player, s.err
}
func (s *stubPlayerService) DeletePlayer(context.Context, int64) error { return s.err }

type stubTeamService struct {
	team  model.Team
	list  repository.PageResult[model.Team]
	squad []model.Player
	err   error
}

func (s *stubTeamService) CreateTeam(context.Context, string, string) (model.Team, error) {
	return s.team, s.err
}
func (s *stubTeamService) GetTeam(context.Context, int64) (model.Team, error) {
	return s.team, s.err
}
func (s *stubTeamService) ListTeams(context.Context, repository.Page) (repository.PageResult[model.Team], error) {
	return s.list, s.err
}
func (s *stubTeamService) UpdateTeam(context.Context, int64, string, string) (model.Team, error) {
	return s.team, s.err
}
func (s *stubTeamService) SetCaptain(context.Context, int64, int64) (model.Team, error) {
	return s.team, s.err
}
func (s *stubTeamService) GetSquad(context.Context, int64) ([]model.Player, error) {
	return s.squad, s.err
}

type stubAuctionService struct {
	lot     model.Lot
	view    service.LotView
	history repository.PageResult[model.Lot]
	err     error
}

func (s *stubAuctionService) OpenLot(context.Context, int64, int) (model.Lot, error) {
	return s.lot, s.err
}
func (s *stubAuctionService) PlaceBid(context.Context, int64, int64, int) (model.Lot, error) {
	return s.lot, s.err
}
func (s *stubAuctionService) SettleLot(context.Context, int64) (model.Lot, error) {
	return s.lot, s.err
}
func (s *stubAuctionService) GetLot(context.Context, int64) (service.LotView, error) {
	return s.view, s.err
}
func (s *stubAuctionService) CurrentLot(context.Context) (service.LotView, error) {
	return s.view, s.err
}
func (s *stubAuctionService) History(context.Context, repository.Page) (repository.PageResult[model.Lot], error) {
	return s.history, s.err
}

type stubMatchService struct {
	match model.Match
	list  repository.PageResult[model.Match]
	ball  service.BallResult
	err   error
}

func (s *stubMatchService) CreateMatch(context.Context, service.CreateMatchInput) (model.Match, error) {
	return s.match, s.err
}
func (s *stubMatchService) GetMatch(context.Context, int64) (model.Match, error) {
	return s.match, s.err
}
func (s *stubMatchService) ListMatches(context.Context, repository.Page) (repository.PageResult[model.Match], error) {
	return s.list, s.err
}
func (s *stubMatchService) SetToss(context.Context, int64, int64, string) (model.Match, error) {
	return s.match, s.err
}
func (s *stubMatchService) StartMatch(context.Context, int64) (model.Match, error) {
	return s.match, s.err
}
func (s *stubMatchService) RecordBall(context.Context, int64, scoring.BallInput) (service.BallResult, error) {
	return s.ball, s.err
}
func (s *stubMatchService) EndInnings(context.Context, int64) (model.Match, error) {
	return s.match, s.err
}
func (s *stubMatchService) AbandonMatch(context.Context, int64) (model.Match, error) {
	return s.match, s.err
}

type stubTournamentService struct {
	table []model.Team
	stats model.TournamentStats
	board model.Leaderboard
	err   error
}

func (s *stubTournamentService) PointTable(context.Context) ([]model.Team, error) {
	return s.table, s.err
}
func (s *stubTournamentService) Stats(context.Context) (model.TournamentStats, error) {
	return s.stats, s.err
}
func (s *stubTournamentService) Leaderboard(context.Context, int) (model.Leaderboard, error) {
	return s.board, s.err
}

func newRouter(svcs handler.Services) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if svcs.Players == nil {
		svcs.Players = &stubPlayerService{}
	}
	if svcs.Teams == nil {
		svcs.Teams = &stubTeamService{}
	}
	if svcs.Auction == nil {
		svcs.Auction = &stubAuctionService{}
	}
	if svcs.Matches == nil {
		svcs.Matches = &stubMatchService{}
	}
	if svcs.Tournament == nil {
		svcs.Tournament = &stubTournamentService{}
	}
	tokens := auth.NewTokenStore(config.AuthConfig{AdminToken: adminToken, CaptainToken: captainToken})
	r := gin.New()
	handler.Register(r, stubPingerNoop{}, tokens, svcs)
	return r
}
