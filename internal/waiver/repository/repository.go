// Package repository provides data access layer for waiver module.
package repository

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"gorm.io/gorm"

	waiverModel "github.com/festy23/fantasy_roster/internal/waiver/model"
)

// Repository defines the interface for waiver claim data access operations.
type Repository interface {
	// Create stores a new claim.
	Create(ctx context.Context, claim *waiverModel.WaiverClaim) error

	// GetByID finds a claim by claim_id.
	GetByID(ctx context.Context, claimID string) (*waiverModel.WaiverClaim, error)

	// MaxPriority returns the highest priority among pending claims of a group,
	// or 0 when the group is empty.
	MaxPriority(ctx context.Context, leagueID, managerID, offWaiverDate string) (int, error)

	// ListGroup returns pending claims of a group by ascending priority.
	ListGroup(ctx context.Context, leagueID, managerID, offWaiverDate string) ([]waiverModel.WaiverClaim, error)

	// ListPending returns a manager's pending claims by date, then priority.
	ListPending(ctx context.Context, leagueID, managerID string) ([]waiverModel.WaiverClaim, error)

	// UpdateStatus sets a claim's status.
	UpdateStatus(ctx context.Context, claimID, status string) error

	// UpdatePriority sets a claim's personal priority.
	UpdatePriority(ctx context.Context, claimID string, priority int) error
}

type repository struct {
	db     *gorm.DB
	clock  clockwork.Clock
	logger *zap.SugaredLogger
}

// New creates a new waiver repository instance. Timestamps come from clock.
func New(db *gorm.DB, clock clockwork.Clock, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, clock: clock, logger: logger}
}

// Create stores a new claim.
func (r *repository) Create(ctx context.Context, claim *waiverModel.WaiverClaim) error {
	if claim.CreatedAt.IsZero() {
		claim.CreatedAt = r.clock.Now().UTC()
		claim.UpdatedAt = claim.CreatedAt
	}
	return r.db.WithContext(ctx).Create(claim).Error
}

// GetByID finds a claim by claim_id.
func (r *repository) GetByID(ctx context.Context, claimID string) (*waiverModel.WaiverClaim, error) {
	var claim waiverModel.WaiverClaim
	err := r.db.WithContext(ctx).Where("claim_id = ?", claimID).First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, waiverModel.ErrClaimNotFound
		}
		return nil, err
	}
	return &claim, nil
}

func (r *repository) group(ctx context.Context, leagueID, managerID, offWaiverDate string) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&waiverModel.WaiverClaim{}).
		Where("league_id = ? AND manager_id = ? AND off_waiver_date = ?", leagueID, managerID, offWaiverDate).
		Where("status = ?", waiverModel.StatusPending)
}

// MaxPriority returns the highest priority among pending claims of a group.
func (r *repository) MaxPriority(ctx context.Context, leagueID, managerID, offWaiverDate string) (int, error) {
	var highest int
	err := r.group(ctx, leagueID, managerID, offWaiverDate).
		Select("COALESCE(MAX(personal_priority), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, err
	}
	return highest, nil
}

// ListGroup returns pending claims of a group by ascending priority.
func (r *repository) ListGroup(ctx context.Context, leagueID, managerID, offWaiverDate string) ([]waiverModel.WaiverClaim, error) {
	var claims []waiverModel.WaiverClaim
	err := r.group(ctx, leagueID, managerID, offWaiverDate).
		Order("personal_priority ASC, created_at ASC, claim_id ASC").
		Find(&claims).Error
	if err != nil {
		r.logger.Errorw("failed to list waiver group",
			"league_id", leagueID,
			"manager_id", managerID,
			"off_waiver_date", offWaiverDate,
			"error", err,
		)
		return nil, err
	}
	return claims, nil
}

// ListPending returns a manager's pending claims by date, then priority.
func (r *repository) ListPending(ctx context.Context, leagueID, managerID string) ([]waiverModel.WaiverClaim, error) {
	var claims []waiverModel.WaiverClaim
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND manager_id = ? AND status = ?", leagueID, managerID, waiverModel.StatusPending).
		Order("off_waiver_date ASC, personal_priority ASC, claim_id ASC").
		Find(&claims).Error
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// UpdateStatus sets a claim's status.
func (r *repository) UpdateStatus(ctx context.Context, claimID, status string) error {
	return r.update(ctx, claimID, map[string]interface{}{"status": status})
}

// UpdatePriority sets a claim's personal priority.
func (r *repository) UpdatePriority(ctx context.Context, claimID string, priority int) error {
	return r.update(ctx, claimID, map[string]interface{}{"personal_priority": priority})
}

func (r *repository) update(ctx context.Context, claimID string, updates map[string]interface{}) error {
	updates["updated_at"] = r.clock.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&waiverModel.WaiverClaim{}).
		Where("claim_id = ?", claimID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return waiverModel.ErrClaimNotFound
	}
	return nil
}
