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

type AuctionHandler struct {
	svc    service.AuctionService
	tokens *auth.TokenStore
}

func NewAuctionHandler(svc service.AuctionService, tokens *auth.TokenStore) *AuctionHandler {
	return &AuctionHandler{svc: svc, tokens: tokens}
}

func (h *AuctionHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/auction")
	{
		g.GET("/current", h.current)
		g.GET("/lots", h.history)
		g.GET("/lots/:lot_id", h.getByID)

		// Opening and settling lots is the auctioneer's job; bidding is for
		// team captains (the admin token passes the captain check too).
		admin := g.Group("", auth.RequireRole(h.tokens, auth.RoleAdmin))
		{
			admin.POST("/lots", h.open)
			admin.POST("/lots/:lot_id/settle", h.settle)
		}
		captain := g.Group("", auth.RequireRole(h.tokens, auth.RoleCaptain))
		{
			captain.POST("/lots/:lot_id/bids", h.bid)
		}
	}
}

type openLotRequest struct {
	PlayerID  int64 `json:"player_id"`
	BasePrice int   `json:"base_price"`
}

func (h *AuctionHandler) open(c *gin.Context) {
	var req openLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	lot, err := h.svc.OpenLot(c.Request.Context(), req.PlayerID, req.BasePrice)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, lot)
}

type placeBidRequest struct {
	TeamID int64 `json:"team_id"`
	Amount int   `json:"amount"`
}

func (h *AuctionHandler) bid(c *gin.Context) {
	id, err := pathID(c, "lot_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req placeBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	lot, err := h.svc.PlaceBid(c.Request.Context(), id, req.TeamID, req.Amount)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lot)
}

func (h *AuctionHandler) settle(c *gin.Context) {
	id, err := pathID(c, "lot_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	lot, err := h.svc.SettleLot(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, lot)
}

func (h *AuctionHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "lot_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	view, err := h.svc.GetLot(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, view)
}

func (h *AuctionHandler) current(c *gin.Context) {
	view, err := h.svc.CurrentLot(c.Request.Context())
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, view)
}

func (h *AuctionHandler) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.History(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}
