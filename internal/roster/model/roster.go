// Package model provides domain models and DTOs for roster module.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	playerModel "github.com/festy23/fantasy_roster/internal/player/model"
	"github.com/festy23/fantasy_roster/internal/rules"
)

// Entry statuses.
const (
	StatusOnTeam    = "on_team"
	StatusWaiver    = "waiver"
	StatusFreeAgent = "free_agent"
)

// Transaction log kinds.
const (
	KindAdd   = "add"
	KindDrop  = "drop"
	KindMove  = "move"
	KindTrade = "trade"
	KindClaim = "claim"
)

// RosterEntry records who holds a player in a league.
// Matches the roster_entries table schema: one row per (league, player).
type RosterEntry struct {
	ID            int64     `gorm:"primaryKey;column:id;autoIncrement"                                            json:"-"`
	LeagueID      string    `gorm:"column:league_id;type:varchar(255);not null;uniqueIndex:roster_entries_player" json:"league_id"`
	PlayerID      string    `gorm:"column:player_id;type:varchar(255);not null;uniqueIndex:roster_entries_player" json:"player_id"`
	ManagerID     string    `gorm:"column:manager_id;type:varchar(255);not null;index:idx_roster_entries_manager" json:"manager_id"`
	Slot          string    `gorm:"column:slot;type:varchar(32);not null"                                         json:"slot"`
	Status        string    `gorm:"column:status;type:varchar(32);not null"                                       json:"status"`
	OffWaiverDate string    `gorm:"column:off_waiver_date;type:varchar(10);not null"                              json:"off_waiver_date,omitempty"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"                                              json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (RosterEntry) TableName() string {
	return "roster_entries"
}

// OnTeamOf reports whether the entry sits on the manager's roster.
func (e *RosterEntry) OnTeamOf(managerID string) bool {
	return e.Status == StatusOnTeam && e.ManagerID == managerID
}

// Transaction is one row of the append-only roster transaction log.
// Matches the roster_transactions table schema.
type Transaction struct {
	TransactionID   string    `gorm:"primaryKey;column:transaction_id;type:varchar(36)" json:"transaction_id"`
	LeagueID        string    `gorm:"column:league_id;type:varchar(255);not null"       json:"league_id"`
	ManagerID       string    `gorm:"column:manager_id;type:varchar(255);not null"      json:"manager_id"`
	Kind            string    `gorm:"column:kind;type:varchar(32);not null"             json:"kind"`
	PlayerID        string    `gorm:"column:player_id;type:varchar(255);not null"       json:"player_id"`
	RelatedPlayerID string    `gorm:"column:related_player_id;type:varchar(255)"        json:"related_player_id,omitempty"`
	FromSlot        string    `gorm:"column:from_slot;type:varchar(32)"                 json:"from_slot,omitempty"`
	ToSlot          string    `gorm:"column:to_slot;type:varchar(32)"                   json:"to_slot,omitempty"`
	TradeID         string    `gorm:"column:trade_id;type:varchar(36)"                  json:"trade_id,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"                  json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Transaction) TableName() string {
	return "roster_transactions"
}

// Snapshot is one manager's roster together with the catalog data of its players.
type Snapshot struct {
	LeagueID  string
	ManagerID string
	Entries   []RosterEntry
	Players   map[string]*playerModel.Player
}

// Find returns the entry for playerID, or nil when the player is not on the roster.
func (s *Snapshot) Find(playerID string) *RosterEntry {
	for i := range s.Entries {
		if s.Entries[i].PlayerID == playerID {
			return &s.Entries[i]
		}
	}
	return nil
}

// Occupants converts the roster into the form the rules package consumes.
// Entries whose player is missing from the catalog count with an empty profile.
func (s *Snapshot) Occupants() []rules.Occupant {
	result := make([]rules.Occupant, 0, len(s.Entries))
	for _, e := range s.Entries {
		result = append(result, rules.Occupant{Player: s.Player(e.PlayerID), Slot: e.Slot})
	}
	return result
}

// Player returns the rules view of a rostered player.
func (s *Snapshot) Player(playerID string) rules.Player {
	if p, ok := s.Players[playerID]; ok {
		return p.Rules()
	}
	return rules.Player{ID: playerID, Identity: rules.IdentityLocal, Status: rules.StatusMajor}
}

// Version fingerprints the roster's players and slots. Any add, drop or move
// changes it, so a client can detect that a checked roster was modified.
func (s *Snapshot) Version() string {
	pairs := make([]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		pairs = append(pairs, e.PlayerID+"="+e.Slot)
	}
	sort.Strings(pairs)

	sum := sha256.Sum256([]byte(strings.Join(pairs, ";")))
	return hex.EncodeToString(sum[:8])
}

// NewTransaction builds a log row with a fresh id.
func NewTransaction(leagueID, managerID, kind, playerID string) *Transaction {
	return &Transaction{
		TransactionID: uuid.NewString(),
		LeagueID:      leagueID,
		ManagerID:     managerID,
		Kind:          kind,
		PlayerID:      playerID,
	}
}
