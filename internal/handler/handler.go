package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/service"
)

// Services bundles the service layer dependencies the HTTP surface needs.
type Services struct {
	Players    service.PlayerService
	Teams      service.TeamService
	Auction    service.AuctionService
	Matches    service.MatchService
	Tournament service.TournamentService
}

// Register mounts all public routes on the given engine. Mutating routes sit
// behind the token middleware; reads are open, the auction room and score
// pages are public by design.
func Register(r *gin.Engine, repo Pinger, tokens *auth.TokenStore, svcs Services) {
	h := NewHealthHandler(repo)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	api := r.Group(APIV1Prefix) // Versioning added via single source of truth
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewPlayerHandler(svcs.Players, tokens).Register(api)
		NewTeamHandler(svcs.Teams, tokens).Register(api)
		NewAuctionHandler(svcs.Auction, tokens).Register(api)
		NewMatchHandler(svcs.Matches, tokens).Register(api)
		NewTournamentHandler(svcs.Tournament).Register(api)
	}
}
