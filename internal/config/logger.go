package config

import (
	"fmt"
	"time"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"json", "console"}
)

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	// Level is the minimum level written (debug, info, warn, error).
	Level string
	// Format is json for log shippers or console for local runs.
	Format string
	// Output is stdout, stderr or a file path.
	Output string
	// SlowRequest upgrades request logs slower than this to warn; zero disables it.
	SlowRequest time.Duration
}

// LoadLoggerConfigFromEnv loads logger configuration from LOG_* environment variables.
func LoadLoggerConfigFromEnv() LoggerConfig {
	return LoggerConfig{
		Level:       GetEnv("LOG_LEVEL", "info"),
		Format:      GetEnv("LOG_FORMAT", "json"),
		Output:      GetEnv("LOG_OUTPUT", "stdout"),
		SlowRequest: GetEnvDuration("LOG_SLOW_REQUEST", 500*time.Millisecond),
	}
}

// Validate validates logger configuration.
func (c LoggerConfig) Validate() error {
	if !oneOf(c.Level, logLevels) {
		return fmt.Errorf("invalid log level: %s (must be one of %v)", c.Level, logLevels)
	}
	if !oneOf(c.Format, logFormats) {
		return fmt.Errorf("invalid log format: %s (must be one of %v)", c.Format, logFormats)
	}
	if c.SlowRequest < 0 {
		return fmt.Errorf("LOG_SLOW_REQUEST must not be negative")
	}
	return nil
}

// IsProduction reports whether the logger should use zap's production preset.
func (c LoggerConfig) IsProduction() bool {
	return c.Format == "json" && c.Level != "debug"
}

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
