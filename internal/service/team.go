package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cricstack/tournament-service/internal/model"
	"github.com/cricstack/tournament-service/internal/repository"
)

// teamService holds franchise logic: validation + orchestration, no
// transport / SQL details.
type teamService struct {
	teams        repository.TeamRepository
	players      repository.PlayerRepository
	tx           repository.TxManager
	defaultPurse int
	log          zerolog.Logger
}

func NewTeamService(teams repository.TeamRepository, players repository.PlayerRepository, tx repository.TxManager, defaultPurse int, logger zerolog.Logger) TeamService {
	l := logger.With().Str("module", "service").Str("component", "team").Logger()
	return &teamService{teams: teams, players: players, tx: tx, defaultPurse: defaultPurse, log: l}
}

func (s *teamService) CreateTeam(ctx context.Context, name, shortName string) (model.Team, error) {
	start := time.Now()
	name = strings.TrimSpace(name)
	shortName = strings.ToUpper(strings.TrimSpace(shortName))

	var ferrs []FieldError
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	} else if ln := len([]rune(name)); ln < 2 || ln > 50 {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "length must be between 2 and 50"})
	}
	if shortName == "" {
		ferrs = append(ferrs, FieldError{Field: "short_name", Message: "must not be empty"})
	} else if ln := len(shortName); ln < 2 || ln > 5 {
		ferrs = append(ferrs, FieldError{Field: "short_name", Message: "length must be between 2 and 5"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		s.log.Debug().Str("name_raw", name).Interface("field_errors", ferrs).Msg("team validation failed")
		return model.Team{}, err
	}

	out, err := s.teams.Create(ctx, model.Team{Name: name, ShortName: shortName, Purse: s.defaultPurse})
	if err != nil {
		s.log.Error().Err(err).Str("name", name).Msg("create team failed")
		return model.Team{}, err
	}
	s.log.Info().Dur("took", time.Since(start)).Int64("team_id", out.ID).Msg("team created")
	return out, nil
}

func (s *teamService) GetTeam(ctx context.Context, id int64) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return s.teams.GetByID(ctx, id)
}

// ListTeams returns the point table: repository ordering is points desc,
// then net run rate desc.
func (s *teamService) ListTeams(ctx context.Context, page repository.Page) (repository.PageResult[model.Team], error) {
	p := normalizePage(page)
	res, err := s.teams.List(ctx, p)
	if err != nil {
		s.log.Error().Err(err).Int("limit", p.Limit).Int("offset", p.Offset).Msg("list teams failed")
		return repository.PageResult[model.Team]{}, err
	}
	return res, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, id int64, name, shortName string) (model.Team, error) {
	name = strings.TrimSpace(name)
	shortName = strings.ToUpper(strings.TrimSpace(shortName))

	var ferrs []FieldError
	if id <= 0 {
		ferrs = append(ferrs, FieldError{Field: "id", Message: "must be > 0"})
	}
	if name == "" {
		ferrs = append(ferrs, FieldError{Field: "name", Message: "must not be empty"})
	}
	if shortName == "" {
		ferrs = append(ferrs, FieldError{Field: "short_name", Message: "must not be empty"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Team{}, err
	}

	current, err := s.teams.GetByID(ctx, id)
	if err != nil {
		return model.Team{}, err
	}
	current.Name = name
	current.ShortName = shortName
	return s.teams.Update(ctx, current)
}

// SetCaptain promotes a roster member. The previous captain, if any, is
// demoted in the same transaction so the captain flag stays unique per team.
func (s *teamService) SetCaptain(ctx context.Context, teamID, playerID int64) (model.Team, error) {
	var ferrs []FieldError
	if teamID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "team_id", Message: "must be > 0"})
	}
	if playerID <= 0 {
		ferrs = append(ferrs, FieldError{Field: "player_id", Message: "must be > 0"})
	}
	if err := newInvalidInput(ferrs); err != nil {
		return model.Team{}, err
	}

	var out model.Team
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		team, err := s.teams.GetForUpdate(ctx, teamID)
		if err != nil {
			return err
		}
		player, err := s.players.GetForUpdate(ctx, playerID)
		if err != nil {
			return err
		}
		if player.TeamID == nil || *player.TeamID != teamID {
			return newInvalidInput([]FieldError{{Field: "player_id", Message: "player does not belong to this team"}})
		}

		if team.CaptainID != nil && *team.CaptainID != playerID {
			prev, err := s.players.GetForUpdate(ctx, *team.CaptainID)
			if err == nil {
				prev.IsCaptain = false
				if _, err := s.players.Update(ctx, prev); err != nil {
					return err
				}
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
		}

		player.IsCaptain = true
		if _, err := s.players.Update(ctx, player); err != nil {
			return err
		}

		team.CaptainID = &playerID
		out, err = s.teams.Update(ctx, team)
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Int64("team_id", teamID).Int64("player_id", playerID).Msg("set captain failed")
		return model.Team{}, err
	}
	s.log.Info().Int64("team_id", teamID).Int64("player_id", playerID).Msg("captain set")
	return out, nil
}

func (s *teamService) GetSquad(ctx context.Context, teamID int64) ([]model.Player, error) {
	if teamID <= 0 {
		return nil, newInvalidInput([]FieldError{{Field: "team_id", Message: "must be > 0"}})
	}
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	res, err := s.players.List(ctx, repository.PlayerFilter{TeamID: &teamID}, repository.Page{Limit: 50})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
