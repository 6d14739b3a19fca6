package service_test

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/service"
)

func TestTournamentService_Stats(t *testing.T) {
	teams := newFakeTeamRepo()
	players := newFakePlayerRepo()
	lots := newFakeLotRepo()
	matches := newFakeMatchRepo()
	svc := service.NewTournamentService(teams, players, lots, matches, zerolog.New(io.Discard))

	_, _ = teams.Create(context.Background(), model.Team{Name: "Strikers"})
	_, _ = players.Create(context.Background(), model.Player{Name: "A", Email: "a@x.com"})
	_, _ = players.Create(context.Background(), model.Player{Name: "B", Email: "b@x.com"})
	_, _ = lots.Create(context.Background(), model.Lot{PlayerID: 1, Status: model.LotActive})
	_, _ = matches.Create(context.Background(), model.Match{Status: model.MatchScheduled})
	_, _ = matches.Create(context.Background(), model.Match{Status: model.MatchCompleted})
	_, _ = matches.Create(context.Background(), model.Match{Status: model.MatchCompleted})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	want := model.TournamentStats{TotalPlayers: 2, TotalTeams: 1, UpcomingMatches: 1, ActiveLots: 1, CompletedMatches: 2}
	if stats != want {
		t.Fatalf("expected %+v, got %+v", want, stats)
	}
}

func TestTournamentService_Leaderboard(t *testing.T) {
	teams := newFakeTeamRepo()
	players := newFakePlayerRepo()
	svc := service.NewTournamentService(teams, players, newFakeLotRepo(), newFakeMatchRepo(), zerolog.New(io.Discard))

	_, _ = players.Create(context.Background(), model.Player{Name: "Top", Email: "t@x.com", Stats: model.CareerStats{Runs: 300, Wickets: 2}})
	_, _ = players.Create(context.Background(), model.Player{Name: "Mid", Email: "m@x.com", Stats: model.CareerStats{Runs: 120, Wickets: 9}})
	_, _ = players.Create(context.Background(), model.Player{Name: "Low", Email: "l@x.com", Stats: model.CareerStats{Runs: 10, Wickets: 0}})

	lb, err := svc.Leaderboard(context.Background(), 2)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(lb.Batsmen) != 2 || lb.Batsmen[0].Name != "Top" || lb.Batsmen[0].Value != 300 {
		t.Fatalf("unexpected batsmen board: %+v", lb.Batsmen)
	}
	if len(lb.Bowlers) != 2 || lb.Bowlers[0].Name != "Mid" || lb.Bowlers[0].Value != 9 {
		t.Fatalf("unexpected bowlers board: %+v", lb.Bowlers)
	}
}

func TestTournamentService_PointTable_Order(t *testing.T) {
	teams := newFakeTeamRepo()
	svc := service.NewTournamentService(teams, newFakePlayerRepo(), newFakeLotRepo(), newFakeMatchRepo(), zerolog.New(io.Discard))

	_, _ = teams.Create(context.Background(), model.Team{Name: "Third", Points: 2, NetRunRate: -0.5})
	_, _ = teams.Create(context.Background(), model.Team{Name: "First", Points: 4, NetRunRate: 1.2})
	_, _ = teams.Create(context.Background(), model.Team{Name: "Second", Points: 4, NetRunRate: 0.3})

	table, err := svc.PointTable(context.Background())
	if err != nil {
		t.Fatalf("point table: %v", err)
	}
	gotOrder := []string{table[0].Name, table[1].Name, table[2].Name}
	wantOrder := []string{"First", "Second", "Third"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("expected order %v, got %v", wantOrder, gotOrder)
		}
	}
}
