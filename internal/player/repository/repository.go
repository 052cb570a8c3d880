// Package repository provides data access layer for player module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
)

// Repository defines the interface for player data access operations.
type Repository interface {
	// Upsert inserts players or updates them by player_id.
	Upsert(ctx context.Context, players []playerModel.Player) error

	// GetByID finds player by player_id.
	GetByID(ctx context.Context, playerID string) (*playerModel.Player, error)

	// GetByIDs returns the players found among ids, keyed by player_id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*playerModel.Player, error)

	// UpsertGames inserts games or updates their start time by (team, game_date).
	UpsertGames(ctx context.Context, games []playerModel.Game) error

	// GetGame finds the game a team plays on a date.
	GetGame(ctx context.Context, team, gameDate string) (*playerModel.Game, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new player repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Upsert inserts players or updates them by player_id.
func (r *repository) Upsert(ctx context.Context, players []playerModel.Player) error {
	if len(players) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "player_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "team", "identity", "player_type", "positions", "status", "updated_at",
			}),
		}).
		Create(&players).Error
}

// GetByID finds player by player_id.
func (r *repository) GetByID(ctx context.Context, playerID string) (*playerModel.Player, error) {
	var player playerModel.Player
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		First(&player).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, playerModel.ErrPlayerNotFound
		}
		return nil, err
	}

	return &player, nil
}

// GetByIDs returns the players found among ids, keyed by player_id.
func (r *repository) GetByIDs(ctx context.Context, ids []string) (map[string]*playerModel.Player, error) {
	result := make(map[string]*playerModel.Player, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var players []playerModel.Player
	err := r.db.WithContext(ctx).
		Where("player_id IN ?", ids).
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	for i := range players {
		result[players[i].PlayerID] = &players[i]
	}
	return result, nil
}

// UpsertGames inserts games or updates their start time by (team, game_date).
func (r *repository) UpsertGames(ctx context.Context, games []playerModel.Game) error {
	if len(games) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team"}, {Name: "game_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time"}),
		}).
		Create(&games).Error
}

// GetGame finds the game a team plays on a date.
func (r *repository) GetGame(ctx context.Context, team, gameDate string) (*playerModel.Game, error) {
	var game playerModel.Game
	err := r.db.WithContext(ctx).
		Where("team = ? AND game_date = ?", team, gameDate).
		First(&game).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, playerModel.ErrGameNotFound
		}
		return nil, err
	}

	return &game, nil
}
