// Package model provides domain models and DTOs for player module.
package model

import (
	"strings"
	"time"

	"github.com/festy23/fantasy_roster/internal/rules"
)

// Player represents a catalog player.
// Matches the players table schema. Enumerated columns hold canonical values only.
type Player struct {
	PlayerID   string    `gorm:"primaryKey;column:player_id;type:varchar(255)" json:"player_id"`
	Name       string    `gorm:"column:name;type:varchar(255);not null"        json:"name"`
	Team       string    `gorm:"column:team;type:varchar(255);not null"        json:"team"`
	Identity   string    `gorm:"column:identity;type:varchar(32);not null"     json:"identity"`
	PlayerType string    `gorm:"column:player_type;type:varchar(32);not null"  json:"player_type"`
	Positions  string    `gorm:"column:positions;type:varchar(255);not null"   json:"positions"`
	Status     string    `gorm:"column:status;type:varchar(32);not null"       json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"              json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"              json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Player) TableName() string {
	return "players"
}

// PositionList splits the stored position column.
func (p *Player) PositionList() []string {
	if p.Positions == "" {
		return []string{}
	}
	parts := strings.Split(p.Positions, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Rules returns the player in the form the rules package consumes.
func (p *Player) Rules() rules.Player {
	return rules.Player{
		ID:        p.PlayerID,
		Name:      p.Name,
		Team:      p.Team,
		Identity:  rules.Identity(p.Identity),
		Type:      rules.PlayerType(p.PlayerType),
		Positions: p.PositionList(),
		Status:    rules.RealLifeStatus(p.Status),
	}
}

// Game is one scheduled game of a real team.
// Matches the games table schema.
type Game struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"                                     json:"-"`
	Team      string    `gorm:"column:team;type:varchar(255);not null;uniqueIndex:games_team_date"     json:"team"`
	GameDate  string    `gorm:"column:game_date;type:varchar(10);not null;uniqueIndex:games_team_date" json:"game_date"`
	StartTime time.Time `gorm:"column:start_time;not null"                                             json:"start_time"`
}

// TableName specifies the table name for GORM.
func (Game) TableName() string {
	return "games"
}
