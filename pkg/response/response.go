// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/auction"
	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/scoring"
	"github.com/cricstack/tournament-service/internal/service"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	// A rejected bid carries the minimum the caller must clear; surface it so
	// auction room clients can correct without another round trip.
	var tooLow *auction.BidTooLowError
	if errors.As(err, &tooLow) {
		return http.StatusBadRequest, ErrorPayload{Error: "bid_too_low", Message: tooLow.Error()}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	case errors.Is(err, auction.ErrInsufficientFunds):
		return http.StatusPaymentRequired, ErrorPayload{Error: "insufficient_funds", Message: err.Error()}
	case errors.Is(err, auction.ErrLotNotActive):
		return http.StatusConflict, ErrorPayload{Error: "lot_not_active", Message: err.Error()}
	case errors.Is(err, scoring.ErrInningsComplete):
		return http.StatusConflict, ErrorPayload{Error: "innings_complete", Message: err.Error()}
	case errors.Is(err, scoring.ErrInningsClosed):
		return http.StatusConflict, ErrorPayload{Error: "innings_closed", Message: err.Error()}
	case errors.Is(err, service.ErrInvalidState):
		return http.StatusConflict, ErrorPayload{Error: "invalid_state", Message: err.Error()}
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, ErrorPayload{Error: "forbidden"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
