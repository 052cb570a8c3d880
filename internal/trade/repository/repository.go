// Package repository provides data access layer for trade module.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	tradeModel "github.com/festy23/fantasy_roster/internal/trade/model"
)

// Repository defines the interface for trade data access operations.
type Repository interface {
	// Create stores a proposal together with its players.
	Create(ctx context.Context, trade *tradeModel.TradeProposal) error

	// GetByID finds a proposal by trade_id with its players loaded.
	GetByID(ctx context.Context, tradeID string) (*tradeModel.TradeProposal, error)

	// List returns a manager's proposals in a league, newest first.
	// An empty status matches every status.
	List(ctx context.Context, leagueID, managerID, status string) ([]tradeModel.TradeProposal, error)

	// UpdateStatus sets the status and, when executedAt is not nil, the execution time.
	UpdateStatus(ctx context.Context, tradeID, status string, executedAt *time.Time) error
}

type repository struct {
	db     *gorm.DB
	clock  clockwork.Clock
	logger *zap.SugaredLogger
}

// New creates a new trade repository instance. Timestamps come from clock.
func New(db *gorm.DB, clock clockwork.Clock, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, clock: clock, logger: logger}
}

// Create stores a proposal together with its players.
func (r *repository) Create(ctx context.Context, trade *tradeModel.TradeProposal) error {
	for i := range trade.Players {
		trade.Players[i].TradeID = trade.TradeID
	}
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = r.clock.Now().UTC()
		trade.UpdatedAt = trade.CreatedAt
	}
	return r.db.WithContext(ctx).Create(trade).Error
}

// GetByID finds a proposal by trade_id with its players loaded.
func (r *repository) GetByID(ctx context.Context, tradeID string) (*tradeModel.TradeProposal, error) {
	var trade tradeModel.TradeProposal
	err := r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("player_id ASC")
		}).
		Where("trade_id = ?", tradeID).
		First(&trade).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tradeModel.ErrTradeNotFound
		}
		return nil, err
	}

	return &trade, nil
}

// List returns a manager's proposals in a league, newest first.
func (r *repository) List(ctx context.Context, leagueID, managerID, status string) ([]tradeModel.TradeProposal, error) {
	query := r.db.WithContext(ctx).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("player_id ASC")
		}).
		Where("league_id = ?", leagueID).
		Where("(initiator_manager_id = ? OR recipient_manager_id = ?)", managerID, managerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var trades []tradeModel.TradeProposal
	if err := query.Order("created_at DESC, trade_id ASC").Find(&trades).Error; err != nil {
		r.logger.Errorw("failed to list trades", "league_id", leagueID, "manager_id", managerID, "error", err)
		return nil, err
	}
	return trades, nil
}

// UpdateStatus sets the status and, when executedAt is not nil, the execution time.
func (r *repository) UpdateStatus(ctx context.Context, tradeID, status string, executedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": r.clock.Now().UTC(),
	}
	if executedAt != nil {
		updates["executed_at"] = *executedAt
	}

	result := r.db.WithContext(ctx).
		Model(&tradeModel.TradeProposal{}).
		Where("trade_id = ?", tradeID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return tradeModel.ErrTradeNotFound
	}
	return nil
}
