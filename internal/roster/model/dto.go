package model

import "github.com/festy23/fantasy_roster/internal/rules"

// CheckAddRequest asks whether adding a free agent, optionally with a drop, is legal.
type CheckAddRequest struct {
	LeagueID     string `json:"league_id"      binding:"required"`
	ManagerID    string `json:"manager_id"     binding:"required"`
	PlayerID     string `json:"player_id"      binding:"required"`
	DropPlayerID string `json:"drop_player_id"`
}

// CheckAddResponse reports where the player would land and what it would break.
type CheckAddResponse struct {
	Legal      bool              `json:"legal"`
	TargetSlot string            `json:"target_slot"`
	Violations []rules.Violation `json:"violations"`
	Summary    rules.Summary     `json:"summary"`
	Version    string            `json:"version"`
}

// AddRequest commits an add, or an add with drop when DropPlayerID is set.
// Version, when present, is the roster version returned by a previous check.
type AddRequest struct {
	LeagueID     string `json:"league_id"      binding:"required"`
	ManagerID    string `json:"manager_id"     binding:"required"`
	PlayerID     string `json:"player_id"      binding:"required"`
	DropPlayerID string `json:"drop_player_id"`
	Version      string `json:"version"`
}

// DropRequest releases a player from a roster.
type DropRequest struct {
	LeagueID  string `json:"league_id"  binding:"required"`
	ManagerID string `json:"manager_id" binding:"required"`
	PlayerID  string `json:"player_id"  binding:"required"`
}

// MoveRequest moves a player to another slot, swapping with SwapPlayerID when set.
// Date is the lineup date (YYYY-MM-DD); empty means today.
type MoveRequest struct {
	LeagueID     string `json:"league_id"      binding:"required"`
	ManagerID    string `json:"manager_id"     binding:"required"`
	PlayerID     string `json:"player_id"      binding:"required"`
	TargetSlot   string `json:"target_slot"    binding:"required"`
	SwapPlayerID string `json:"swap_player_id"`
	Date         string `json:"date"`
}

// EntryView is one rostered player as shown to the manager.
type EntryView struct {
	PlayerID      string   `json:"player_id"`
	Name          string   `json:"name"`
	Team          string   `json:"team"`
	Identity      string   `json:"identity"`
	Status        string   `json:"status"`
	Slot          string   `json:"slot"`
	EligibleSlots []string `json:"eligible_slots"`
	Eligibility   string   `json:"eligibility"`
	Locked        bool     `json:"locked"`
}

// RosterResponse is a manager's roster with its limit summary.
type RosterResponse struct {
	LeagueID  string        `json:"league_id"`
	ManagerID string        `json:"manager_id"`
	Version   string        `json:"version"`
	Entries   []EntryView   `json:"entries"`
	Summary   rules.Summary `json:"summary"`
}

// TransactionResponse reports a committed roster transaction.
type TransactionResponse struct {
	Kind          string          `json:"kind"`
	PlayerID      string          `json:"player_id"`
	Slot          string          `json:"slot,omitempty"`
	RelatedPlayer string          `json:"related_player_id,omitempty"`
	OffWaiverDate string          `json:"off_waiver_date,omitempty"`
	Roster        *RosterResponse `json:"roster"`
}
