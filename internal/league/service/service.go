// Package service provides business logic layer for league module.
package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
	"github.com/festy23/fantasy_roster/internal/league/repository"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// Service defines the interface for league business logic operations.
type Service interface {
	// AddLeague creates a league, optionally starting from a named preset.
	AddLeague(ctx context.Context, req *leagueModel.AddLeagueRequest) (*leagueModel.LeagueResponse, error)

	// GetLeague returns a league's settings.
	GetLeague(ctx context.Context, leagueID string) (*leagueModel.LeagueResponse, error)
}

type service struct {
	repo     repository.Repository
	db       *gorm.DB
	settings leagueModel.Settings
	logger   *zap.SugaredLogger
}

// New creates a new league service instance.
func New(repo repository.Repository, db *gorm.DB, settings leagueModel.Settings, logger *zap.SugaredLogger) Service {
	return &service{
		repo:     repo,
		db:       db,
		settings: settings,
		logger:   logger,
	}
}

// AddLeague creates a league, optionally starting from a named preset.
func (s *service) AddLeague(ctx context.Context, req *leagueModel.AddLeagueRequest) (*leagueModel.LeagueResponse, error) {
	s.logger.Debugw("adding league", "league_id", req.LeagueID, "preset", req.Preset)

	league, err := s.buildLeague(req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Create(ctx, league)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("league created",
		"league_id", league.LeagueID,
		"total_capacity", league.SlotConfig().TotalCapacity(),
	)
	return leagueModel.NewLeagueResponse(league), nil
}

func (s *service) buildLeague(req *leagueModel.AddLeagueRequest) (*leagueModel.League, error) {
	leagueID := strings.TrimSpace(req.LeagueID)
	if leagueID == "" || strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: league_id and name are required", rules.ErrInvalidRequest)
	}

	league := &leagueModel.League{
		LeagueID:   leagueID,
		Name:       strings.TrimSpace(req.Name),
		WaiverDays: s.settings.DefaultWaiverDays,
	}

	var slots rules.SlotConfig
	if req.Preset != "" {
		preset, ok := s.settings.Presets[req.Preset]
		if !ok {
			return nil, fmt.Errorf("%w: %s", leagueModel.ErrUnknownPreset, req.Preset)
		}
		slots = preset.Slots
		league.ForeignerOnTeamLimit = preset.ForeignerOnTeamLimit
		league.ForeignerActiveLimit = preset.ForeignerActiveLimit
		league.AllowDirectToNA = preset.AllowDirectToNA
		if preset.WaiverDays != nil {
			league.WaiverDays = *preset.WaiverDays
		}
	}

	if len(req.Slots) > 0 {
		slots = req.Slots
	}
	if req.ForeignerOnTeamLimit != nil {
		league.ForeignerOnTeamLimit = req.ForeignerOnTeamLimit
	}
	if req.ForeignerActiveLimit != nil {
		league.ForeignerActiveLimit = req.ForeignerActiveLimit
	}
	if req.AllowDirectToNA != nil {
		league.AllowDirectToNA = *req.AllowDirectToNA
	}
	if req.WaiverDays != nil {
		league.WaiverDays = *req.WaiverDays
	}

	if err := slots.Validate(); err != nil {
		return nil, err
	}
	if slots.TotalCapacity() == 0 {
		return nil, leagueModel.ErrNoSlots
	}
	if isNegative(league.ForeignerOnTeamLimit) || isNegative(league.ForeignerActiveLimit) || league.WaiverDays < 0 {
		return nil, leagueModel.ErrNegativeLimit
	}

	league.SetSlots(slots)
	return league, nil
}

func isNegative(limit *int) bool {
	return limit != nil && *limit < 0
}

// GetLeague returns a league's settings.
func (s *service) GetLeague(ctx context.Context, leagueID string) (*leagueModel.LeagueResponse, error) {
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", rules.ErrInvalidRequest)
	}

	league, err := s.repo.GetByID(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	return leagueModel.NewLeagueResponse(league), nil
}
