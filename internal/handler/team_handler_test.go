package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cricstack/tournament-service/internal/handler"
	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
	"github.com/cricstack/tournament-service/internal/service"
)

func TestTeamHandler_Create_OK(t *testing.T) {
	stub := &stubTeamService{team: model.Team{ID: 1, Name: "Strikers", ShortName: "STR"}}
	r := newRouter(handler.Services{Teams: stub})

	w := postJSON(t, r, "/api/v1/teams", adminToken, map[string]string{"name": "Strikers", "short_name": "STR"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp model.Team
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.ID != 1 || resp.Name != "Strikers" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestTeamHandler_Create_Invalid(t *testing.T) {
	stub := &stubTeamService{err: service.NewInvalidInputError([]service.FieldError{{Field: "name", Message: "must not be empty"}})}
	r := newRouter(handler.Services{Teams: stub})

	w := postJSON(t, r, "/api/v1/teams", adminToken, map[string]string{"name": ""})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("invalid_input")) || !bytes.Contains(w.Body.Bytes(), []byte("name")) {
		t.Fatalf("expected field error for name, body=%s", w.Body.String())
	}
}

func TestTeamHandler_Get_NotFound(t *testing.T) {
	stub := &stubTeamService{err: repository.ErrNotFound}
	r := newRouter(handler.Services{Teams: stub})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/teams/42", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestTeamHandler_Squad(t *testing.T) {
	stub := &stubTeamService{squad: []model.Player{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}}
	r := newRouter(handler.Services{Teams: stub})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/teams/1/players", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp []model.Player
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || len(resp) != 2 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestHealth_Liveness(t *testing.T) {
	r := newRouter(handler.Services{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
