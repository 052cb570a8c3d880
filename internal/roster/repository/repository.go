// Package repository provides data access layer for roster module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	rosterModel "github.com/festy23/fantasy_roster/internal/roster/model"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// Repository defines the interface for roster data access operations.
type Repository interface {
	// GetEntry finds the entry of a player in a league.
	GetEntry(ctx context.Context, leagueID, playerID string) (*rosterModel.RosterEntry, error)

	// Snapshot loads a manager's roster with the catalog data of its players.
	Snapshot(ctx context.Context, leagueID, managerID string) (*rosterModel.Snapshot, error)

	// Save inserts a new entry or updates an existing one.
	Save(ctx context.Context, entry *rosterModel.RosterEntry) error

	// LockedPlayerIDs returns which of playerIDs are referenced by an unresolved trade:
	// one that is pending, or accepted but not yet executed.
	LockedPlayerIDs(ctx context.Context, leagueID string, playerIDs []string) (map[string]bool, error)

	// LogTransaction appends a row to the transaction log.
	LogTransaction(ctx context.Context, tx *rosterModel.Transaction) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new roster repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// GetEntry finds the entry of a player in a league.
func (r *repository) GetEntry(ctx context.Context, leagueID, playerID string) (*rosterModel.RosterEntry, error) {
	var entry rosterModel.RosterEntry
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND player_id = ?", leagueID, playerID).
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rosterModel.ErrEntryNotFound
		}
		return nil, err
	}

	return &entry, nil
}

// Snapshot loads a manager's roster with the catalog data of its players.
func (r *repository) Snapshot(ctx context.Context, leagueID, managerID string) (*rosterModel.Snapshot, error) {
	var entries []rosterModel.RosterEntry
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND manager_id = ? AND status = ?", leagueID, managerID, rosterModel.StatusOnTeam).
		Order("id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	snapshot := &rosterModel.Snapshot{
		LeagueID:  leagueID,
		ManagerID: managerID,
		Entries:   entries,
		Players:   make(map[string]*playerModel.Player, len(entries)),
	}
	if len(entries) == 0 {
		return snapshot, nil
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.PlayerID)
	}

	var players []playerModel.Player
	if err := r.db.WithContext(ctx).Where("player_id IN ?", ids).Find(&players).Error; err != nil {
		return nil, err
	}
	for i := range players {
		snapshot.Players[players[i].PlayerID] = &players[i]
	}

	if len(players) != len(entries) {
		r.logger.Warnw("roster references players missing from the catalog",
			"league_id", leagueID,
			"manager_id", managerID,
			"entries", len(entries),
			"players", len(players),
		)
	}

	return snapshot, nil
}

// Save inserts a new entry or updates an existing one.
func (r *repository) Save(ctx context.Context, entry *rosterModel.RosterEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// LockedPlayerIDs returns which of playerIDs are referenced by an unresolved trade.
func (r *repository) LockedPlayerIDs(ctx context.Context, leagueID string, playerIDs []string) (map[string]bool, error) {
	locked := make(map[string]bool)
	if len(playerIDs) == 0 {
		return locked, nil
	}

	var ids []string
	err := r.db.WithContext(ctx).
		Table("trade_players AS tp").
		Joins("JOIN trade_proposals AS t ON t.trade_id = tp.trade_id").
		Where("t.league_id = ?", leagueID).
		Where("tp.player_id IN ?", playerIDs).
		Where("(t.status = ? OR (t.status = ? AND t.executed_at IS NULL))", "pending", "accepted").
		Pluck("tp.player_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		locked[id] = true
	}
	return locked, nil
}

// LogTransaction appends a row to the transaction log.
func (r *repository) LogTransaction(ctx context.Context, tx *rosterModel.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// EnsureUnlocked rejects players referenced by an unresolved trade. Drops, add/drops,
// waiver drop targets and new trades all go through it.
func EnsureUnlocked(ctx context.Context, r Repository, leagueID string, playerIDs ...string) error {
	locked, err := r.LockedPlayerIDs(ctx, leagueID, playerIDs)
	if err != nil {
		return err
	}
	for _, id := range playerIDs {
		if locked[id] {
			return rules.Reject(rules.ErrPlayerLocked, "player "+id+" is part of an unresolved trade")
		}
	}
	return nil
}
