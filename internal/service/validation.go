package service

import (
	"strings"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

func normalizePage(p repository.Page) repository.Page {
	limit := p.Limit
	offset := p.Offset
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return repository.Page{Limit: limit, Offset: offset}
}

func isValidCategory(cat string) bool {
	switch strings.ToLower(strings.TrimSpace(cat)) {
	case model.CategoryBatsman, model.CategoryBowler, model.CategoryAllRounder, model.CategoryWicketKeeper:
		return true
	default:
		return false
	}
}

func isValidMatchType(mt string) bool {
	switch strings.ToLower(strings.TrimSpace(mt)) {
	case model.MatchTypeLeague, model.MatchTypePlayoff, model.MatchTypeFinal:
		return true
	default:
		return false
	}
}

func isValidTossDecision(d string) bool {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case model.TossBat, model.TossBowl:
		return true
	default:
		return false
	}
}

func isValidExtraType(e string) bool {
	switch e {
	case model.ExtraWide, model.ExtraNoBall, model.ExtraBye, model.ExtraLegBye:
		return true
	default:
		return false
	}
}

// isPlausibleEmail is intentionally loose: the unique index is the real
// duplicate guard, this only catches obvious typos.
func isPlausibleEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
