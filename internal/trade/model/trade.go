// Package model provides domain models and DTOs for trade module.
package model

import (
	"time"
)

// Trade statuses. Pending and accepted-but-not-executed proposals lock their players.
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// TradeProposal represents a player exchange between two managers of one league.
// Matches the trade_proposals table schema.
type TradeProposal struct {
	TradeID            string        `gorm:"primaryKey;column:trade_id;type:varchar(36)"                                         json:"trade_id"`
	LeagueID           string        `gorm:"column:league_id;type:varchar(255);not null;index:idx_trade_proposals_league_status" json:"league_id"`
	InitiatorManagerID string        `gorm:"column:initiator_manager_id;type:varchar(255);not null"                              json:"initiator_manager_id"`
	RecipientManagerID string        `gorm:"column:recipient_manager_id;type:varchar(255);not null"                              json:"recipient_manager_id"`
	Status             string        `gorm:"column:status;type:varchar(32);not null;index:idx_trade_proposals_league_status"     json:"status"`
	CreatedAt          time.Time     `gorm:"column:created_at;autoCreateTime"                                                    json:"created_at"`
	UpdatedAt          time.Time     `gorm:"column:updated_at;autoUpdateTime"                                                    json:"updated_at"`
	ExecutedAt         *time.Time    `gorm:"column:executed_at"                                                                  json:"executed_at,omitempty"`
	Players            []TradePlayer `gorm:"foreignKey:TradeID;references:TradeID"                                               json:"players"`
}

// TableName specifies the table name for GORM.
func (TradeProposal) TableName() string {
	return "trade_proposals"
}

// TradePlayer names one player changing hands and the manager giving it up.
// Matches the trade_players table schema.
type TradePlayer struct {
	TradeID       string `gorm:"primaryKey;column:trade_id;type:varchar(36)"       json:"-"`
	PlayerID      string `gorm:"primaryKey;column:player_id;type:varchar(255)"     json:"player_id"`
	FromManagerID string `gorm:"column:from_manager_id;type:varchar(255);not null" json:"from_manager_id"`
}

// TableName specifies the table name for GORM.
func (TradePlayer) TableName() string {
	return "trade_players"
}

// PlayersFrom returns the ids of players the manager gives up, in stored order.
func (t *TradeProposal) PlayersFrom(managerID string) []string {
	ids := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		if p.FromManagerID == managerID {
			ids = append(ids, p.PlayerID)
		}
	}
	return ids
}

// IsPending reports whether the proposal still awaits a decision.
func (t *TradeProposal) IsPending() bool {
	return t.Status == StatusPending
}

// Counterparty returns the other manager of the trade.
func (t *TradeProposal) Counterparty(managerID string) string {
	if managerID == t.InitiatorManagerID {
		return t.RecipientManagerID
	}
	return t.InitiatorManagerID
}
