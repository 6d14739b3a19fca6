package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/service"
	"github.com/cricstack/tournament-service/pkg/response"
)

// TournamentHandler exposes the read model: the point table, dashboard
// counters and leaderboards. All routes are public.
type TournamentHandler struct {
	svc service.TournamentService
}

func NewTournamentHandler(svc service.TournamentService) *TournamentHandler {
	return &TournamentHandler{svc: svc}
}

func (h *TournamentHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/tournament")
	{
		g.GET("/points", h.pointTable)
		g.GET("/stats", h.stats)
		g.GET("/leaderboard", h.leaderboard)
	}
}

func (h *TournamentHandler) pointTable(c *gin.Context) {
	table, err := h.svc.PointTable(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, table)
}

func (h *TournamentHandler) stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, stats)
}

func (h *TournamentHandler) leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	lb, err := h.svc.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lb)
}
