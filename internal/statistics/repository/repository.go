// Package repository provides data access layer for statistics module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetManagerActivity returns per-manager transaction counts for a league.
	GetManagerActivity(ctx context.Context, leagueID string) ([]model.ManagerActivity, error)

	// GetTransactionStatistics returns league-wide transaction counts.
	GetTransactionStatistics(ctx context.Context, leagueID string) (*model.TransactionStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetManagerActivity returns per-manager transaction counts for a league.
func (r *repository) GetManagerActivity(ctx context.Context, leagueID string) ([]model.ManagerActivity, error) {
	r.logger.Debugw("GetManagerActivity called", "league_id", leagueID)

	var stats []model.ManagerActivity

	err := r.db.WithContext(ctx).
		Table("roster_transactions").
		Select(`
			manager_id,
			SUM(CASE WHEN kind = 'add' THEN 1 ELSE 0 END) as adds,
			SUM(CASE WHEN kind = 'drop' THEN 1 ELSE 0 END) as drops,
			SUM(CASE WHEN kind = 'move' THEN 1 ELSE 0 END) as moves,
			SUM(CASE WHEN kind = 'trade' THEN 1 ELSE 0 END) as trades,
			COUNT(*) as total
		`).
		Where("league_id = ?", leagueID).
		Group("manager_id").
		Order("total DESC, manager_id ASC").
		Scan(&stats).Error

	if err != nil {
		r.logger.Errorw("GetManagerActivity database error", "error", err)
		return nil, err
	}

	if stats == nil {
		stats = []model.ManagerActivity{}
	}

	r.logger.Debugw("GetManagerActivity completed", "count", len(stats))
	return stats, nil
}

// GetTransactionStatistics returns league-wide transaction counts.
func (r *repository) GetTransactionStatistics(ctx context.Context, leagueID string) (*model.TransactionStatistics, error) {
	r.logger.Debugw("GetTransactionStatistics called", "league_id", leagueID)

	var result struct {
		TotalTransactions int64 `gorm:"column:total_transactions"`
		Adds              int64 `gorm:"column:adds"`
		Drops             int64 `gorm:"column:drops"`
		Moves             int64 `gorm:"column:moves"`
		TradedPlayers     int64 `gorm:"column:traded_players"`
		DistinctPlayers   int64 `gorm:"column:distinct_players"`
	}

	err := r.db.WithContext(ctx).
		Table("roster_transactions").
		Select(`
			COUNT(*) as total_transactions,
			COALESCE(SUM(CASE WHEN kind = 'add' THEN 1 ELSE 0 END), 0) as adds,
			COALESCE(SUM(CASE WHEN kind = 'drop' THEN 1 ELSE 0 END), 0) as drops,
			COALESCE(SUM(CASE WHEN kind = 'move' THEN 1 ELSE 0 END), 0) as moves,
			COALESCE(SUM(CASE WHEN kind = 'trade' THEN 1 ELSE 0 END), 0) as traded_players,
			COUNT(DISTINCT player_id) as distinct_players
		`).
		Where("league_id = ?", leagueID).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetTransactionStatistics database error", "error", err)
		return nil, err
	}

	var pendingTrades, pendingClaims int64
	err = r.db.WithContext(ctx).
		Table("trade_proposals").
		Where("league_id = ? AND status = ?", leagueID, "pending").
		Count(&pendingTrades).Error
	if err != nil {
		r.logger.Errorw("GetTransactionStatistics database error", "error", err)
		return nil, err
	}

	err = r.db.WithContext(ctx).
		Table("waiver_claims").
		Where("league_id = ? AND status = ?", leagueID, "pending").
		Count(&pendingClaims).Error
	if err != nil {
		r.logger.Errorw("GetTransactionStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.TransactionStatistics{
		TotalTransactions: int(result.TotalTransactions),
		Adds:              int(result.Adds),
		Drops:             int(result.Drops),
		Moves:             int(result.Moves),
		TradedPlayers:     int(result.TradedPlayers),
		DistinctPlayers:   int(result.DistinctPlayers),
		PendingTrades:     int(pendingTrades),
		PendingClaims:     int(pendingClaims),
	}

	r.logger.Debugw("GetTransactionStatistics completed", "total_transactions", stats.TotalTransactions)
	return stats, nil
}
