package config

import (
	"fmt"
	"time"
)

// RedisConfig holds the connection used for per-manager roster locks.
type RedisConfig struct {
	// Addr is host:port; empty disables Redis and falls back to in-process locks.
	Addr string
	// Password is the optional AUTH password.
	Password string
	// DB is the logical database number.
	DB int
	// LockTTL bounds how long a roster lock survives a crashed holder.
	LockTTL time.Duration
	// LockWait is how long a request waits for a busy roster before giving up.
	LockWait time.Duration
}

// LoadRedisConfigFromEnv loads Redis configuration from environment variables.
func LoadRedisConfigFromEnv() RedisConfig {
	return RedisConfig{
		Addr:     GetEnv("REDIS_ADDR", ""),
		Password: GetEnv("REDIS_PASSWORD", ""),
		DB:       GetEnvInt("REDIS_DB", 0),
		LockTTL:  GetEnvDuration("LOCK_TTL", 10*time.Second),
		LockWait: GetEnvDuration("LOCK_WAIT", 3*time.Second),
	}
}

// Enabled reports whether a Redis server is configured.
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// Validate validates Redis configuration.
func (c RedisConfig) Validate() error {
	if c.DB < 0 {
		return fmt.Errorf("REDIS_DB must not be negative")
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("LockTTL must be greater than 0")
	}
	if c.LockWait < 0 {
		return fmt.Errorf("LockWait must not be negative")
	}
	return nil
}
