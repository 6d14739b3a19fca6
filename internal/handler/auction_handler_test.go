package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cricstack/tournament-service/internal/auction"
	"github.com/cricstack/tournament-service/internal/handler"
	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/service"
)

func postJSON(t *testing.T, r http.Handler, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuctionHandler_OpenLot_RequiresAdmin(t *testing.T) {
	r := newRouter(handler.Services{Auction: &stubAuctionService{lot: model.Lot{ID: 1, Status: model.LotActive}}})

	w := postJSON(t, r, "/api/v1/auction/lots", "", map[string]any{"player_id": 1})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/v1/auction/lots", captainToken, map[string]any{"player_id": 1})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for captain token, got %d", w.Code)
	}

	w = postJSON(t, r, "/api/v1/auction/lots", adminToken, map[string]any{"player_id": 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for admin, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuctionHandler_PlaceBid(t *testing.T) {
	stub := &stubAuctionService{lot: model.Lot{ID: 5, CurrentBid: 200}}
	r := newRouter(handler.Services{Auction: stub})

	// Captains bid; admin passes the captain gate as well.
	w := postJSON(t, r, "/api/v1/auction/lots/5/bids", captainToken, map[string]any{"team_id": 2, "amount": 200})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	w = postJSON(t, r, "/api/v1/auction/lots/5/bids", "", map[string]any{"team_id": 2, "amount": 200})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without token, got %d", w.Code)
	}
}

func TestAuctionHandler_PlaceBid_TooLow(t *testing.T) {
	stub := &stubAuctionService{err: &auction.BidTooLowError{Amount: 250, Minimum: 300}}
	r := newRouter(handler.Services{Auction: stub})

	w := postJSON(t, r, "/api/v1/auction/lots/5/bids", captainToken, map[string]any{"team_id": 2, "amount": 250})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("bid_too_low")) || !bytes.Contains(w.Body.Bytes(), []byte("300")) {
		t.Fatalf("expected bid_too_low with minimum in body, got %s", w.Body.String())
	}
}

func TestAuctionHandler_PlaceBid_InsufficientFunds(t *testing.T) {
	stub := &stubAuctionService{err: auction.ErrInsufficientFunds}
	r := newRouter(handler.Services{Auction: stub})

	w := postJSON(t, r, "/api/v1/auction/lots/5/bids", captainToken, map[string]any{"team_id": 2, "amount": 9999})
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("expected 402, got %d", w.Code)
	}
}

func TestAuctionHandler_Current(t *testing.T) {
	stub := &stubAuctionService{view: service.LotView{Lot: model.Lot{ID: 9, Status: model.LotActive}, MinNextBid: 300}}
	r := newRouter(handler.Services{Auction: stub})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auction/current", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp service.LotView
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != 9 || resp.MinNextBid != 300 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAuctionHandler_Settle_AlreadyTerminal(t *testing.T) {
	stub := &stubAuctionService{err: auction.ErrLotNotActive}
	r := newRouter(handler.Services{Auction: stub})

	w := postJSON(t, r, "/api/v1/auction/lots/5/settle", adminToken, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestAuctionHandler_GetLot_BadID(t *testing.T) {
	r := newRouter(handler.Services{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auction/lots/abc", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}
}
