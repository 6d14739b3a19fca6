package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/service"
	"github.com/cricstack/tournament-service/pkg/response"
)

type TeamHandler struct {
	svc    service.TeamService
	tokens *auth.TokenStore
}

func NewTeamHandler(svc service.TeamService, tokens *auth.TokenStore) *TeamHandler {
	return &TeamHandler{svc: svc, tokens: tokens}
}

func (h *TeamHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/teams")
	{
		g.GET("", h.list)
		// Use a stable wildcard name (team_id) so nested routes (e.g. players) can reuse it without Gin conflicts.
		g.GET("/:team_id", h.getByID)
		g.GET("/:team_id/players", h.squad)

		admin := g.Group("", auth.RequireRole(h.tokens, auth.RoleAdmin))
		{
			admin.POST("", h.create)
			admin.PUT("/:team_id", h.update)
			admin.PUT("/:team_id/captain", h.setCaptain)
		}
	}
}

type teamRequest struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

func (h *TeamHandler) create(c *gin.Context) {
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.CreateTeam(c.Request.Context(), req.Name, req.ShortName)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, team)
}

func (h *TeamHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	team, err := h.svc.GetTeam(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListTeams(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *TeamHandler) update(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req teamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.UpdateTeam(c.Request.Context(), id, req.Name, req.ShortName)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

type setCaptainRequest struct {
	PlayerID int64 `json:"player_id"`
}

func (h *TeamHandler) setCaptain(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req setCaptainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	team, err := h.svc.SetCaptain(c.Request.Context(), id, req.PlayerID)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, team)
}

func (h *TeamHandler) squad(c *gin.Context) {
	id, err := pathID(c, "team_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	players, err := h.svc.GetSquad(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, players)
}
