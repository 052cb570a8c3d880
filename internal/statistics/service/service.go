// Package service provides business logic layer for statistics module.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/festy23/fantasy_roster/internal/rules"
	"github.com/festy23/fantasy_roster/internal/statistics/model"
	"github.com/festy23/fantasy_roster/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetManagerActivity returns per-manager transaction counts for a league.
	GetManagerActivity(ctx context.Context, leagueID string) (*model.ManagerActivityResponse, error)

	// GetTransactionStatistics returns league-wide transaction counts.
	GetTransactionStatistics(ctx context.Context, leagueID string) (*model.TransactionStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

var errLeagueRequired = fmt.Errorf("%w: league_id is required", rules.ErrInvalidRequest)

// GetManagerActivity returns per-manager transaction counts for a league.
func (s *service) GetManagerActivity(ctx context.Context, leagueID string) (*model.ManagerActivityResponse, error) {
	s.logger.Debugw("GetManagerActivity called", "league_id", leagueID)
	if leagueID == "" {
		return nil, errLeagueRequired
	}

	managers, err := s.repo.GetManagerActivity(ctx, leagueID)
	if err != nil {
		s.logger.Errorw("GetManagerActivity failed", "error", err)
		return nil, err
	}

	if managers == nil {
		managers = []model.ManagerActivity{}
	}

	s.logger.Infow("GetManagerActivity completed", "count", len(managers))
	return &model.ManagerActivityResponse{
		LeagueID: leagueID,
		Managers: managers,
		Total:    len(managers),
	}, nil
}

// GetTransactionStatistics returns league-wide transaction counts.
func (s *service) GetTransactionStatistics(ctx context.Context, leagueID string) (*model.TransactionStatisticsResponse, error) {
	s.logger.Debugw("GetTransactionStatistics called", "league_id", leagueID)
	if leagueID == "" {
		return nil, errLeagueRequired
	}

	stats, err := s.repo.GetTransactionStatistics(ctx, leagueID)
	if err != nil {
		s.logger.Errorw("GetTransactionStatistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetTransactionStatistics completed", "total_transactions", stats.TotalTransactions)
	return &model.TransactionStatisticsResponse{
		LeagueID:   leagueID,
		Statistics: *stats,
	}, nil
}
