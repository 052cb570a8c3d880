package model

import (
	"time"

	"github.com/festy23/fantasy_roster/internal/rules"
)

// ProposeTradeRequest represents the request to propose a trade.
type ProposeTradeRequest struct {
	LeagueID           string   `json:"league_id"            binding:"required"`
	InitiatorManagerID string   `json:"initiator_manager_id" binding:"required"`
	RecipientManagerID string   `json:"recipient_manager_id" binding:"required"`
	InitiatorPlayerIDs []string `json:"initiator_player_ids"`
	RecipientPlayerIDs []string `json:"recipient_player_ids"`
}

// TradeActionRequest represents accept, reject and cancel requests.
// ManagerID is the manager acting on the trade.
type TradeActionRequest struct {
	TradeID   string `json:"trade_id"   binding:"required"`
	ManagerID string `json:"manager_id" binding:"required"`
}

// SideResult is the validation outcome for one side of a trade.
type SideResult struct {
	ManagerID  string            `json:"manager_id"`
	Violations []rules.Violation `json:"violations"`
	Summary    rules.Summary     `json:"summary"`
}

// TradeResponse represents a stored trade proposal.
type TradeResponse struct {
	TradeID            string   `json:"trade_id"`
	LeagueID           string   `json:"league_id"`
	InitiatorManagerID string   `json:"initiator_manager_id"`
	RecipientManagerID string   `json:"recipient_manager_id"`
	InitiatorPlayerIDs []string `json:"initiator_player_ids"`
	RecipientPlayerIDs []string `json:"recipient_player_ids"`
	Status             string   `json:"status"`
	CreatedAt          string   `json:"created_at,omitempty"`
	ExecutedAt         string   `json:"executed_at,omitempty"`
}

// ProposeTradeResponse reports the per-side outcome of a proposal.
// Trade is set only when Success is true.
type ProposeTradeResponse struct {
	Success   bool           `json:"success"`
	Trade     *TradeResponse `json:"trade,omitempty"`
	Initiator SideResult     `json:"initiator"`
	Recipient SideResult     `json:"recipient"`
}

// NewTradeResponse converts a stored proposal to its response form.
func NewTradeResponse(t *TradeProposal) *TradeResponse {
	resp := &TradeResponse{
		TradeID:            t.TradeID,
		LeagueID:           t.LeagueID,
		InitiatorManagerID: t.InitiatorManagerID,
		RecipientManagerID: t.RecipientManagerID,
		InitiatorPlayerIDs: t.PlayersFrom(t.InitiatorManagerID),
		RecipientPlayerIDs: t.PlayersFrom(t.RecipientManagerID),
		Status:             t.Status,
	}
	if !t.CreatedAt.IsZero() {
		resp.CreatedAt = t.CreatedAt.UTC().Format(time.RFC3339)
	}
	if t.ExecutedAt != nil {
		resp.ExecutedAt = t.ExecutedAt.UTC().Format(time.RFC3339)
	}
	return resp
}
