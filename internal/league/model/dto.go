package model

import "github.com/festy23/fantasy_roster/internal/rules"

// AddLeagueRequest represents the request to create a league.
// Fields left empty are taken from the preset when one is named.
type AddLeagueRequest struct {
	LeagueID             string               `json:"league_id"               binding:"required"`
	Name                 string               `json:"name"                    binding:"required"`
	Preset               string               `json:"preset"`
	Slots                []rules.SlotCapacity `json:"slots"`
	ForeignerOnTeamLimit *int                 `json:"foreigner_on_team_limit"`
	ForeignerActiveLimit *int                 `json:"foreigner_active_limit"`
	AllowDirectToNA      *bool                `json:"allow_direct_to_na"`
	WaiverDays           *int                 `json:"waiver_days"`
}

// LeagueResponse represents a league with its derived capacities.
type LeagueResponse struct {
	LeagueID             string               `json:"league_id"`
	Name                 string               `json:"name"`
	Slots                []rules.SlotCapacity `json:"slots"`
	ForeignerOnTeamLimit *int                 `json:"foreigner_on_team_limit"`
	ForeignerActiveLimit *int                 `json:"foreigner_active_limit"`
	AllowDirectToNA      bool                 `json:"allow_direct_to_na"`
	WaiverDays           int                  `json:"waiver_days"`
	TotalCapacity        int                  `json:"total_capacity"`
	ActiveCapacity       int                  `json:"active_capacity"`
	MinorSlot            string               `json:"minor_slot"`
}

// NewLeagueResponse builds the response for a stored league.
func NewLeagueResponse(l *League) *LeagueResponse {
	slots := l.SlotConfig()
	return &LeagueResponse{
		LeagueID:             l.LeagueID,
		Name:                 l.Name,
		Slots:                slots,
		ForeignerOnTeamLimit: l.ForeignerOnTeamLimit,
		ForeignerActiveLimit: l.ForeignerActiveLimit,
		AllowDirectToNA:      l.AllowDirectToNA,
		WaiverDays:           l.WaiverDays,
		TotalCapacity:        slots.TotalCapacity(),
		ActiveCapacity:       slots.ActiveCapacity(),
		MinorSlot:            slots.MinorSlot(),
	}
}
