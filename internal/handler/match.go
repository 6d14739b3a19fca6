package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/scoring"
	"github.com/cricstack/tournament-service/internal/service"
	"github.com/cricstack/tournament-service/pkg/response"
)

type MatchHandler struct {
	svc    service.MatchService
	tokens *auth.TokenStore
}

func NewMatchHandler(svc service.MatchService, tokens *auth.TokenStore) *MatchHandler {
	return &MatchHandler{svc: svc, tokens: tokens}
}

func (h *MatchHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/matches")
	{
		g.GET("", h.list)
		g.GET("/:match_id", h.getByID)

		admin := g.Group("", auth.RequireRole(h.tokens, auth.RoleAdmin))
		{
			admin.POST("", h.create)
			admin.POST("/:match_id/toss", h.setToss)
			admin.POST("/:match_id/start", h.start)
			admin.POST("/:match_id/balls", h.recordBall)
			admin.POST("/:match_id/innings/end", h.endInnings)
			admin.POST("/:match_id/abandon", h.abandon)
		}
	}
}

type createMatchRequest struct {
	Team1ID    int64     `json:"team1_id"`
	Team2ID    int64     `json:"team2_id"`
	Venue      string    `json:"venue"`
	Date       time.Time `json:"date"`
	MatchType  string    `json:"match_type"`
	OversLimit int       `json:"overs_limit"`
}

func (h *MatchHandler) create(c *gin.Context) {
	var req createMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	match, err := h.svc.CreateMatch(c.Request.Context(), service.CreateMatchInput{
		Team1ID:    req.Team1ID,
		Team2ID:    req.Team2ID,
		Venue:      req.Venue,
		Date:       req.Date,
		MatchType:  req.MatchType,
		OversLimit: req.OversLimit,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, match)
}

func (h *MatchHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	match, err := h.svc.GetMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	res, err := h.svc.ListMatches(c.Request.Context(), repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, res)
}

type setTossRequest struct {
	WinnerID int64  `json:"winner_id"`
	Decision string `json:"decision"`
}

func (h *MatchHandler) setToss(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req setTossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	match, err := h.svc.SetToss(c.Request.Context(), id, req.WinnerID, req.Decision)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) start(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	match, err := h.svc.StartMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

type recordBallRequest struct {
	Over         int    `json:"over"`
	BallNumber   int    `json:"ball_number"`
	BatterID     int64  `json:"batter_id"`
	BowlerID     int64  `json:"bowler_id"`
	Runs         int    `json:"runs"`
	IsWicket     bool   `json:"is_wicket"`
	WicketType   string `json:"wicket_type"`
	IsExtra      bool   `json:"is_extra"`
	ExtraType    string `json:"extra_type"`
	ExtraRuns    int    `json:"extra_runs"`
	ShotLocation string `json:"shot_location"`
}

func (h *MatchHandler) recordBall(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	var req recordBallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, service.ErrInvalidInput)
		return
	}
	res, err := h.svc.RecordBall(c.Request.Context(), id, scoring.BallInput{
		Over:         req.Over,
		BallNumber:   req.BallNumber,
		BatterID:     req.BatterID,
		BowlerID:     req.BowlerID,
		Runs:         req.Runs,
		IsWicket:     req.IsWicket,
		WicketType:   req.WicketType,
		IsExtra:      req.IsExtra,
		ExtraType:    req.ExtraType,
		ExtraRuns:    req.ExtraRuns,
		ShotLocation: req.ShotLocation,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusCreated, res)
}

func (h *MatchHandler) endInnings(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	match, err := h.svc.EndInnings(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}

func (h *MatchHandler) abandon(c *gin.Context) {
	id, err := pathID(c, "match_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	match, err := h.svc.AbandonMatch(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, match)
}
