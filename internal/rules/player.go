// Package rules provides the roster legality rules shared by every transaction type:
// slot eligibility, roster limit counting, automatic slot placement, violation checks
// and the lineup lock window. Everything here is pure: callers pass plain data in and
// get plain results back, nothing is read from or written to storage.
package rules

import (
	"fmt"
	"strings"
)

// Identity distinguishes local players from foreign players.
type Identity string

// Identity values.
const (
	IdentityLocal     Identity = "local"
	IdentityForeigner Identity = "foreigner"
)

// PlayerType distinguishes batters from pitchers.
type PlayerType string

// PlayerType values.
const (
	PlayerTypeBatter  PlayerType = "batter"
	PlayerTypePitcher PlayerType = "pitcher"
)

// RealLifeStatus is the player's real-world registration status.
type RealLifeStatus string

// RealLifeStatus values.
const (
	StatusMajor        RealLifeStatus = "MAJOR"
	StatusMinor        RealLifeStatus = "MINOR"
	StatusDeregistered RealLifeStatus = "DEREGISTERED"
	StatusUnregistered RealLifeStatus = "UNREGISTERED"
)

// Player is the engine's read-only view of a catalog player.
type Player struct {
	ID        string
	Name      string
	Team      string
	Identity  Identity
	Type      PlayerType
	Positions []string
	Status    RealLifeStatus
}

// IsForeigner reports whether the player counts against foreigner limits.
func (p Player) IsForeigner() bool {
	return strings.EqualFold(string(p.Identity), string(IdentityForeigner))
}

// statusAliases maps raw catalog badges and spellings onto the closed status set.
var statusAliases = map[string]RealLifeStatus{
	"MAJOR":        StatusMajor,
	"ML":           StatusMajor,
	"ACTIVE":       StatusMajor,
	"MINOR":        StatusMinor,
	"MN":           StatusMinor,
	"NA":           StatusMinor,
	"DEREGISTERED": StatusDeregistered,
	"DR":           StatusDeregistered,
	"UNREGISTERED": StatusUnregistered,
	"NR":           StatusUnregistered,
}

// ParseRealLifeStatus translates a raw status string from the player feed.
// Free text such as "Minor League" is matched by keyword. An empty value means the
// player is on the major-league roster.
func ParseRealLifeStatus(raw string) (RealLifeStatus, error) {
	value := strings.ToUpper(strings.TrimSpace(raw))
	if value == "" {
		return StatusMajor, nil
	}
	if status, ok := statusAliases[value]; ok {
		return status, nil
	}

	switch {
	case strings.Contains(value, "UNREGISTER"), strings.Contains(value, "NOT REGISTERED"):
		return StatusUnregistered, nil
	case strings.Contains(value, "DEREGISTER"):
		return StatusDeregistered, nil
	case strings.Contains(value, "MINOR"):
		return StatusMinor, nil
	case strings.Contains(value, "MAJOR"):
		return StatusMajor, nil
	}

	return "", fmt.Errorf("%w: unknown real-life status %q", ErrInvalidRequest, raw)
}

// ParseIdentity translates a raw identity value. Matching is case-insensitive.
func ParseIdentity(raw string) (Identity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(IdentityLocal):
		return IdentityLocal, nil
	case string(IdentityForeigner):
		return IdentityForeigner, nil
	}
	return "", fmt.Errorf("%w: unknown identity %q", ErrInvalidRequest, raw)
}

// ParsePlayerType translates a raw batter/pitcher value.
func ParsePlayerType(raw string) (PlayerType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(PlayerTypeBatter), "b":
		return PlayerTypeBatter, nil
	case string(PlayerTypePitcher), "p":
		return PlayerTypePitcher, nil
	}
	return "", fmt.Errorf("%w: unknown player type %q", ErrInvalidRequest, raw)
}
