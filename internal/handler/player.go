package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/service"
	"github.com/cricstack/tournament-service/pkg/response"
)

// parseBoolQuery is a helper to flexibly parse boolean-like query parameters.
func parseBoolQuery(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1"
}

type PlayerHandler struct {
	svc    service.PlayerService
	tokens *auth.TokenStore
}

func NewPlayerHandler(svc service.PlayerService, tokens *auth.TokenStore) *PlayerHandler {
	return &PlayerHandler{svc: svc, tokens: tokens}
}

func (h *PlayerHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/players")
	{
		g.GET("", h.list)
		// Use a stable wildcard name (player_id) so nested routes can reuse it without Gin conflicts.
		g.GET("/:player_id", h.getByID)

		admin := g.Group("", auth.RequireRole(h.tokens, auth.RoleAdmin))
		{
			admin.POST("", h.create)
			admin.PUT("/:player_id", h.update)
			admin.DELETE("/:player_id", h.delete)
		}
	}
}

type playerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	NativePlace string `json:"native_place"`
	Category    string `json:"category"`
	Style       string `json:"style"`
	PhotoURL    string `json:"photo_url"`
	BasePrice   int    `json:"base_price"`
}

func (h *PlayerHandler) create(c *gin.Context) {
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	player, err := h.svc.CreatePlayer(c.Request.Context(), service.CreatePlayerInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		NativePlace: req.NativePlace,
		Category:    req.Category,
		Style:       req.Style,
		PhotoURL:    req.PhotoURL,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, player)
}

func (h *PlayerHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	player, err := h.svc.GetPlayer(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) list(c *gin.Context) {
	var filter repository.PlayerFilter
	if q := c.Query("sold"); q != "" {
		sold := parseBoolQuery(q)
		filter.IsSold = &sold
	}
	if q := c.Query("category"); q != "" {
		filter.Category = &q
	}
	if q := c.Query("team_id"); q != "" {
		teamID, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			response.WriteError(c, service.NewInvalidInputError([]service.FieldError{{Field: "team_id", Message: "must be a valid integer"}}))
			return
		}
		filter.TeamID = &teamID
	}

	// Atoi errors are ignored intentionally, as 0 is a valid default for limit/offset, handled by the service layer.
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListPlayers(c.Request.Context(), filter, repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

func (h *PlayerHandler) update(c *gin.Context) {
	id, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req playerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	player, err := h.svc.UpdatePlayer(c.Request.Context(), id, service.UpdatePlayerInput{
		Name:        req.Name,
		Phone:       req.Phone,
		NativePlace: req.NativePlace,
		Category:    req.Category,
		Style:       req.Style,
		PhotoURL:    req.PhotoURL,
		BasePrice:   req.BasePrice,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, player)
}

func (h *PlayerHandler) delete(c *gin.Context) {
	id, err := pathID(c, "player_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if err := h.svc.DeletePlayer(c.Request.Context(), id); err != nil {
		response.WriteError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// pathID parses a path wildcard into an entity ID.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		return 0, service.NewInvalidInputError([]service.FieldError{{Field: name, Message: "must be a valid integer"}})
	}
	return id, nil
}
