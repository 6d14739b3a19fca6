package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

// playerService holds player registry logic: validation + orchestration,
// no transport / SQL details.
type playerService struct {
	repo             repository.PlayerRepository
	defaultBasePrice int
	log              zerolog.Logger
}

func NewPlayerService(repo repository.PlayerRepository, defaultBasePrice int, logger zerolog.Logger) PlayerService {
	l := logger.With().Str("module", "service").Str("component", "player").Logger()
	return &playerService{repo: repo, defaultBasePrice: defaultBasePrice, log: l}
}

func (s *playerService) CreatePlayer(ctx context.Context, in CreatePlayerInput) (model.Player, error) {
	start := time.Now()

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Category = strings.ToLower(strings.TrimSpace(in.Category))

	var ferrs []FieldError
	if in.Name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if in.Email == "" || !isPlausibleEmail(in.Email) {
		ferrs = append(ferrs, FieldError{Field: "email", Message: "must be a valid email"})
	}
	if strings.TrimSpace(in.Phone) == "" {
		ferrs = append(ferrs, FieldError{Field: "phone", Message: "must not be empty"})
	}
	if !isValidCategory(in.Category) {
		ferrs = append(ferrs, FieldError{Field: "category", Message: "must be one of batsman|bowler|all-rounder|wicket-keeper"})
	}
	if in.BasePrice < 0 {
		ferrs = append(ferrs, FieldError{Field: "base_price", Message: "must be >= 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Interface("field_errors", ferrs).Msg("player validation failed")
		return model.Player{}, err
	}

	if in.BasePrice == 0 {
		in.BasePrice = s.defaultBasePrice
	}

	out, err := s.repo.Create(ctx, model.Player{
		Name:        in.Name,
		Email:       in.Email,
		Phone:       strings.TrimSpace(in.Phone),
		NativePlace: strings.TrimSpace(in.NativePlace),
		Category:    in.Category,
		Style:       strings.TrimSpace(in.Style),
		PhotoURL:    strings.TrimSpace(in.PhotoURL),
		BasePrice:   in.BasePrice,
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("email", in.Email).Msg("create player failed")
		return model.Player{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("player_id", out.ID).Msg("player registered")
	return out, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int64) (model.Player, error) {
	if id <= 0 {
		return model.Player{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.repo.GetByID(ctx, id)
}

func (s *playerService) ListPlayers(ctx context.Context, f repository.PlayerFilter, page repository.Page) (repository.PageResult[model.Player], error) {
	if f.Category != nil && !isValidCategory(*f.Category) {
		return repository.PageResult[model.Player]{}, newInvalidInput([]FieldError{{Field: "category", Message: "unknown category"}})
	}
	p := normalizePage(page)
	res, err := s.repo.List(ctx, f, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list players failed")
		return repository.PageResult[model.Player]{}, err
	}
	return res, nil
}

// UpdatePlayer edits identity fields only. IsSold/SoldPrice/TeamID are owned
// by auction settlement and deliberately untouched here.
func (s *playerService) UpdatePlayer(ctx context.Context, id int64, in UpdatePlayerInput) (model.Player, error) {
	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if strings.TrimSpace(in.Name) == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if !isValidCategory(in.Category) {
		ferrs = append(ferrs, FieldError{Field: "category", Message: "unknown category"})
	}
	if in.BasePrice < 0 {
		ferrs = append(ferrs, FieldError{Field: "base_price", Message: "must be >= 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Player{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.Player{}, err
	}
	current.Name = strings.TrimSpace(in.Name)
	current.Phone = strings.TrimSpace(in.Phone)
	current.NativePlace = strings.TrimSpace(in.NativePlace)
	current.Category = strings.ToLower(strings.TrimSpace(in.Category))
	current.Style = strings.TrimSpace(in.Style)
	current.PhotoURL = strings.TrimSpace(in.PhotoURL)
	current.BasePrice = in.BasePrice

	return s.repo.Update(ctx, current)
}

// DeletePlayer removes an unsold player. Sold players are roster members and
// financial history; they stay.
func (s *playerService) DeletePlayer(ctx context.Context, id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.IsSold {
		return repository.ErrConflict
	}
	return s.repo.Delete(ctx, id)
}
