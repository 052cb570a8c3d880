package model

// SubmitClaimRequest represents the request to claim a player on waivers.
type SubmitClaimRequest struct {
	LeagueID     string `json:"league_id"      binding:"required"`
	ManagerID    string `json:"manager_id"     binding:"required"`
	AddPlayerID  string `json:"add_player_id"  binding:"required"`
	DropPlayerID string `json:"drop_player_id"`
}

// CancelClaimRequest represents the request to cancel a pending claim.
type CancelClaimRequest struct {
	ClaimID   string `json:"claim_id"   binding:"required"`
	ManagerID string `json:"manager_id" binding:"required"`
}

// ReorderClaimRequest represents the request to move a claim one place up or down
// within its group.
type ReorderClaimRequest struct {
	ClaimID   string `json:"claim_id"   binding:"required"`
	ManagerID string `json:"manager_id" binding:"required"`
	Direction string `json:"direction"  binding:"required,oneof=up down"`
}

// ClaimResponse represents a claim in API responses.
type ClaimResponse struct {
	ClaimID          string `json:"claim_id"`
	LeagueID         string `json:"league_id"`
	ManagerID        string `json:"manager_id"`
	AddPlayerID      string `json:"add_player_id"`
	DropPlayerID     string `json:"drop_player_id,omitempty"`
	OffWaiverDate    string `json:"off_waiver_date"`
	PersonalPriority int    `json:"personal_priority"`
	Status           string `json:"status"`
}

// ListClaimsResponse is one pending claim group in ascending priority order.
type ListClaimsResponse struct {
	LeagueID      string          `json:"league_id"`
	ManagerID     string          `json:"manager_id"`
	OffWaiverDate string          `json:"off_waiver_date"`
	Claims        []ClaimResponse `json:"claims"`
}

// NewClaimResponse converts a stored claim to its response form.
func NewClaimResponse(c *WaiverClaim) ClaimResponse {
	return ClaimResponse{
		ClaimID:          c.ClaimID,
		LeagueID:         c.LeagueID,
		ManagerID:        c.ManagerID,
		AddPlayerID:      c.AddPlayerID,
		DropPlayerID:     c.DropPlayerID,
		OffWaiverDate:    c.OffWaiverDate,
		PersonalPriority: c.PersonalPriority,
		Status:           c.Status,
	}
}
