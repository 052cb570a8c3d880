package model

import "time"

// PlayerInput is one player as delivered by the catalog feed.
// Identity, type and status are raw values translated by the service.
type PlayerInput struct {
	PlayerID   string   `json:"player_id"   binding:"required"`
	Name       string   `json:"name"        binding:"required"`
	Team       string   `json:"team"`
	Identity   string   `json:"identity"`
	PlayerType string   `json:"player_type" binding:"required"`
	Positions  []string `json:"positions"`
	Status     string   `json:"status"`
}

// UpsertPlayersRequest represents a catalog import.
type UpsertPlayersRequest struct {
	Players []PlayerInput `json:"players" binding:"required,min=1,dive"`
}

// UpsertPlayersResponse reports how many players were stored.
type UpsertPlayersResponse struct {
	Upserted int `json:"upserted"`
}

// PlayerResponse represents a player, with league eligibility when a league was given.
type PlayerResponse struct {
	PlayerID      string   `json:"player_id"`
	Name          string   `json:"name"`
	Team          string   `json:"team"`
	Identity      string   `json:"identity"`
	PlayerType    string   `json:"player_type"`
	Positions     []string `json:"positions"`
	Status        string   `json:"status"`
	EligibleSlots []string `json:"eligible_slots,omitempty"`
	Eligibility   string   `json:"eligibility,omitempty"`
}

// NewPlayerResponse builds the response for a stored player.
func NewPlayerResponse(p *Player) *PlayerResponse {
	return &PlayerResponse{
		PlayerID:   p.PlayerID,
		Name:       p.Name,
		Team:       p.Team,
		Identity:   p.Identity,
		PlayerType: p.PlayerType,
		Positions:  p.PositionList(),
		Status:     p.Status,
	}
}

// GameInput is one scheduled game.
type GameInput struct {
	Team      string    `json:"team"       binding:"required"`
	GameDate  string    `json:"game_date"  binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
}

// UpsertScheduleRequest represents a schedule import.
type UpsertScheduleRequest struct {
	Games []GameInput `json:"games" binding:"required,min=1,dive"`
}

// UpsertScheduleResponse reports how many games were stored.
type UpsertScheduleResponse struct {
	Upserted int `json:"upserted"`
}
