// Package repository provides data access layer for league module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/festy23/fantasy_roster/internal/database/database"
	leagueModel "github.com/festy23/fantasy_roster/internal/league/model"
)

// Repository defines the interface for league data access operations.
type Repository interface {
	// Create stores a league together with its slots.
	Create(ctx context.Context, league *leagueModel.League) error

	// GetByID finds a league by league_id with its slots loaded.
	GetByID(ctx context.Context, leagueID string) (*leagueModel.League, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new league repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create stores a league together with its slots.
func (r *repository) Create(ctx context.Context, league *leagueModel.League) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(league).Error
	if err != nil {
		if database.IsDuplicateError(err) {
			return leagueModel.ErrLeagueExists
		}
		return err
	}

	if len(league.Slots) == 0 {
		return nil
	}
	for i := range league.Slots {
		league.Slots[i].LeagueID = league.LeagueID
	}
	return r.db.WithContext(ctx).Create(&league.Slots).Error
}

// GetByID finds a league by league_id with its slots loaded.
func (r *repository) GetByID(ctx context.Context, leagueID string) (*leagueModel.League, error) {
	var league leagueModel.League
	err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Where("league_id = ?", leagueID).
		First(&league).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leagueModel.ErrLeagueNotFound
		}
		return nil, err
	}

	return &league, nil
}
