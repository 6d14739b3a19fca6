package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/config"
	"github.com/cricstack/tournament-service/internal/handler"
	"github.com/cricstack/tournament-service/internal/logger"
	"github.com/cricstack/tournament-service/internal/realtime"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/repository/postgres"
	"github.com/cricstack/tournament-service/internal/service"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	if err := runMigrations(cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Migrations failed")
	}

	repo, err := repository.New(context.Background(), cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer repo.Close()

	// Realtime fan-out. Without a reachable Redis the service still runs;
	// the broadcaster degrades to a no-op.
	var broadcaster realtime.Broadcaster = realtime.Nop{}
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		broadcaster = realtime.NewRedisBroadcaster(rdb, appLogger)
	} else {
		appLogger.Warn().Msg("redis address not configured, realtime events disabled")
	}

	pool := repo.Pool()
	tx := postgres.NewTxManager(pool)
	players := postgres.NewPlayerRepository(pool)
	teams := postgres.NewTeamRepository(pool)
	lots := postgres.NewLotRepository(pool)
	matches := postgres.NewMatchRepository(pool)

	svcs := handler.Services{
		Players:    service.NewPlayerService(players, cfg.Auction.DefaultBasePrice, appLogger),
		Teams:      service.NewTeamService(teams, players, tx, cfg.Auction.DefaultPurse, appLogger),
		Auction:    service.NewAuctionService(lots, teams, players, tx, broadcaster, cfg.Auction.MaxSquadSize, appLogger),
		Matches:    service.NewMatchService(matches, teams, players, tx, broadcaster, appLogger),
		Tournament: service.NewTournamentService(teams, players, lots, matches, appLogger),
	}

	tokens := auth.NewTokenStore(cfg.Auth)

	r := gin.New()
	r.Use(gin.Recovery())
	handler.Register(r, postgres.NewPinger(pool), tokens, svcs)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info().Int("port", cfg.Server.Port).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("❌ HTTP server failed")
		}
	}()

	<-ctx.Done()
	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("shutdown incomplete")
	}
}

// runMigrations applies pending schema migrations before the pool opens.
// An up-to-date schema is not an error.
func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.Postgres.MigrationsPath, repository.DSN(cfg))
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
