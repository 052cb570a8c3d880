// Package model provides domain models and DTOs for league module.
package model

import (
	"sort"
	"time"

	"github.com/festy23/fantasy_roster/internal/rules"
)

// League represents a league's roster settings.
// Matches the leagues table schema.
type League struct {
	LeagueID             string       `gorm:"primaryKey;column:league_id;type:varchar(255)" json:"league_id"`
	Name                 string       `gorm:"column:name;type:varchar(255);not null"        json:"name"`
	ForeignerOnTeamLimit *int         `gorm:"column:foreigner_on_team_limit"                json:"foreigner_on_team_limit"`
	ForeignerActiveLimit *int         `gorm:"column:foreigner_active_limit"                 json:"foreigner_active_limit"`
	AllowDirectToNA      bool         `gorm:"column:allow_direct_to_na;not null"            json:"allow_direct_to_na"`
	WaiverDays           int          `gorm:"column:waiver_days;not null"                   json:"waiver_days"`
	Slots                []LeagueSlot `gorm:"foreignKey:LeagueID;references:LeagueID"       json:"slots"`
	CreatedAt            time.Time    `gorm:"column:created_at;autoCreateTime"              json:"created_at"`
	UpdatedAt            time.Time    `gorm:"column:updated_at;autoUpdateTime"              json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (League) TableName() string {
	return "leagues"
}

// LeagueSlot is one named slot bucket of a league.
// Matches the league_slots table schema.
type LeagueSlot struct {
	LeagueID  string `gorm:"primaryKey;column:league_id;type:varchar(255)" json:"-"`
	Slot      string `gorm:"primaryKey;column:slot;type:varchar(32)"       json:"slot"`
	Capacity  int    `gorm:"column:capacity;not null"                      json:"capacity"`
	SortOrder int    `gorm:"column:sort_order;not null"                    json:"sort_order"`
}

// TableName specifies the table name for GORM.
func (LeagueSlot) TableName() string {
	return "league_slots"
}

// SlotConfig returns the league's slots in display order.
func (l *League) SlotConfig() rules.SlotConfig {
	slots := make([]LeagueSlot, len(l.Slots))
	copy(slots, l.Slots)
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].SortOrder < slots[j].SortOrder
	})

	config := make(rules.SlotConfig, 0, len(slots))
	for _, s := range slots {
		config = append(config, rules.SlotCapacity{Name: s.Slot, Capacity: s.Capacity})
	}
	return config
}

// Rules returns the league settings in the form the rules package consumes.
func (l *League) Rules() rules.League {
	return rules.League{
		Slots: l.SlotConfig(),
		Limits: rules.Limits{
			ForeignerOnTeam: l.ForeignerOnTeamLimit,
			ForeignerActive: l.ForeignerActiveLimit,
			AllowDirectToNA: l.AllowDirectToNA,
		},
	}
}

// SetSlots replaces the league's slots, numbering them in the given order.
func (l *League) SetSlots(config rules.SlotConfig) {
	l.Slots = make([]LeagueSlot, 0, len(config))
	for i, s := range config {
		l.Slots = append(l.Slots, LeagueSlot{
			LeagueID:  l.LeagueID,
			Slot:      s.Name,
			Capacity:  s.Capacity,
			SortOrder: i,
		})
	}
}
