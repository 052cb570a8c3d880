package config

import (
	"fmt"
	"time"
)

// LeagueConfig holds settings shared by every league on this server.
type LeagueConfig struct {
	// Timezone is the IANA zone used for calendar days (lineup lock, waiver dates).
	Timezone string
	// PresetsPath is an optional YAML file with named slot layouts.
	PresetsPath string
	// DefaultWaiverDays is used when a league is created without waiver_days.
	DefaultWaiverDays int
}

// LoadLeagueConfigFromEnv loads league configuration from environment variables.
func LoadLeagueConfigFromEnv() LeagueConfig {
	return LeagueConfig{
		Timezone:          GetEnv("LEAGUE_TIMEZONE", "UTC"),
		PresetsPath:       GetEnv("LEAGUE_PRESETS_PATH", ""),
		DefaultWaiverDays: GetEnvInt("LEAGUE_DEFAULT_WAIVER_DAYS", 2),
	}
}

// Validate validates league configuration.
func (c LeagueConfig) Validate() error {
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid LEAGUE_TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.DefaultWaiverDays < 0 {
		return fmt.Errorf("LEAGUE_DEFAULT_WAIVER_DAYS must not be negative")
	}
	return nil
}

// Location returns the configured timezone, falling back to UTC.
func (c LeagueConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
