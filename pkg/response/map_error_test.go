package response_test

import (
	"errors"
	"testing"

	"github.com/cricstack/tournament-service/internal/auction"
	"github.com/cricstack/tournament-service/internal/auth"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/scoring"
	"github.com/cricstack/tournament-service/internal/service"
	"github.com/cricstack/tournament-service/pkg/response"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name     string
		in       error
		wantCode int
		wantErr  string
	}{
		{"invalid_input", service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "bad"}}), 400, "invalid_input"},
		{"bid_too_low", &auction.BidTooLowError{Amount: 150, Minimum: 200}, 400, "bid_too_low"},
		{"not_found", repository.ErrNotFound, 404, "not_found"},
		{"already_exists", repository.ErrAlreadyExists, 409, "already_exists"},
		{"conflict", repository.ErrConflict, 409, "conflict"},
		{"insufficient_funds", auction.ErrInsufficientFunds, 402, "insufficient_funds"},
		{"lot_not_active", auction.ErrLotNotActive, 409, "lot_not_active"},
		{"innings_complete", scoring.ErrInningsComplete, 409, "innings_complete"},
		{"innings_closed", scoring.ErrInningsClosed, 409, "innings_closed"},
		{"invalid_state", service.ErrInvalidState, 409, "invalid_state"},
		{"forbidden", auth.ErrForbidden, 403, "forbidden"},
		{"internal", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := response.MapError(tc.in)
			if code != tc.wantCode || payload.Error != tc.wantErr {
				t.Fatalf("unexpected mapping: got (%d,%s) want (%d,%s)", code, payload.Error, tc.wantCode, tc.wantErr)
			}
			if tc.wantErr == "invalid_input" && len(payload.FieldErrors) == 0 {
				t.Fatalf("expected field errors in payload")
			}
			if tc.wantErr == "bid_too_low" && payload.Message == "" {
				t.Fatalf("expected the minimum bid in the message")
			}
		})
	}
}
