// Package model provides domain models and DTOs for waiver module.
package model

import (
	"time"
)

// Claim statuses.
const (
	StatusPending   = "pending"
	StatusProcessed = "processed"
	StatusCancelled = "cancelled"
)

// Reorder directions.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// WaiverClaim is a manager's request to pick up a player when its waiver period ends.
// Claims of one manager with the same off-waiver date form a group ordered by
// PersonalPriority, lowest first.
// Matches the waiver_claims table schema.
type WaiverClaim struct {
	ClaimID          string    `gorm:"primaryKey;column:claim_id;type:varchar(36)"                                    json:"claim_id"`
	LeagueID         string    `gorm:"column:league_id;type:varchar(255);not null;index:idx_waiver_claims_group"      json:"league_id"`
	ManagerID        string    `gorm:"column:manager_id;type:varchar(255);not null;index:idx_waiver_claims_group"     json:"manager_id"`
	AddPlayerID      string    `gorm:"column:add_player_id;type:varchar(255);not null"                                json:"add_player_id"`
	DropPlayerID     string    `gorm:"column:drop_player_id;type:varchar(255);not null"                               json:"drop_player_id,omitempty"`
	OffWaiverDate    string    `gorm:"column:off_waiver_date;type:varchar(10);not null;index:idx_waiver_claims_group" json:"off_waiver_date"`
	PersonalPriority int       `gorm:"column:personal_priority;not null"                                              json:"personal_priority"`
	Status           string    `gorm:"column:status;type:varchar(32);not null;index:idx_waiver_claims_group"          json:"status"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"                                               json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"                                               json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (WaiverClaim) TableName() string {
	return "waiver_claims"
}

// IsPending reports whether the claim still awaits processing.
func (c *WaiverClaim) IsPending() bool {
	return c.Status == StatusPending
}
