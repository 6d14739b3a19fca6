// Package auth implements the capability check in front of mutating
// endpoints: a static bearer-token to role map. The engines themselves never
// authenticate; this is the orchestration-layer gate.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cricstack/tournament-service/internal/config"
)

// Roles recognized by the API.
const (
	RoleAdmin   = "admin"
	RoleCaptain = "team_captain"
)

// ErrForbidden is surfaced when the presented token does not grant the
// required role.
var ErrForbidden = errors.New("forbidden")

// TokenStore resolves a bearer token to a role. Admin tokens satisfy captain
// checks as well: the tournament operator can do everything a captain can.
type TokenStore struct {
	adminToken   string
	captainToken string
}

func NewTokenStore(cfg config.AuthConfig) *TokenStore {
	return &TokenStore{adminToken: cfg.AdminToken, captainToken: cfg.CaptainToken}
}

// Require checks that token grants role.
func (s *TokenStore) Require(token, role string) error {
	switch role {
	case RoleAdmin:
		if token != "" && token == s.adminToken {
			return nil
		}
	case RoleCaptain:
		if token != "" && (token == s.captainToken || token == s.adminToken) {
			return nil
		}
	}
	return ErrForbidden
}

// RequireRole is the gin middleware form of Require, reading the standard
// Authorization: Bearer header.
func RequireRole(store *TokenStore, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if err := store.Require(token, role); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return header[len(prefix):]
	}
	return ""
}
