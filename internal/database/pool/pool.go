// Package pool sizes the database connection pool.
package pool

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	appConfig "github.com/festy23/fantasy_roster/internal/config"
)

// Config holds connection pool limits. Every roster transaction keeps one connection
// for its whole read-validate-write cycle, so MaxOpenConns also caps concurrent commits.
type Config struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPoolConfig returns the pool used when no DB_POOL_* variable is set.
func DefaultPoolConfig() Config {
	return Config{
		MaxOpenConns:    20,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// LoadConfigFromEnv overrides the defaults with DB_POOL_* environment variables.
func LoadConfigFromEnv() Config {
	cfg := DefaultPoolConfig()
	cfg.MaxOpenConns = appConfig.GetEnvInt("DB_POOL_MAX_OPEN", cfg.MaxOpenConns)
	cfg.MaxIdleConns = appConfig.GetEnvInt("DB_POOL_MAX_IDLE", cfg.MaxIdleConns)
	cfg.ConnMaxLifetime = appConfig.GetEnvDuration("DB_POOL_MAX_LIFETIME", cfg.ConnMaxLifetime)
	cfg.ConnMaxIdleTime = appConfig.GetEnvDuration("DB_POOL_MAX_IDLE_TIME", cfg.ConnMaxIdleTime)
	return cfg
}

// Validate reports every inconsistent limit at once.
func (c Config) Validate() error {
	var errs []error
	if c.MaxOpenConns <= 0 {
		errs = append(errs, fmt.Errorf("MaxOpenConns must be greater than 0"))
	}
	if c.MaxIdleConns < 0 {
		errs = append(errs, fmt.Errorf("MaxIdleConns must be non-negative"))
	} else if c.MaxOpenConns > 0 && c.MaxIdleConns > c.MaxOpenConns {
		errs = append(errs, fmt.Errorf("MaxIdleConns (%d) cannot be greater than MaxOpenConns (%d)", c.MaxIdleConns, c.MaxOpenConns))
	}
	if c.ConnMaxLifetime < 0 || c.ConnMaxIdleTime < 0 {
		errs = append(errs, fmt.Errorf("connection lifetimes must be non-negative"))
	}
	return errors.Join(errs...)
}

// Apply sets the limits on sqlDB.
func (c Config) Apply(sqlDB *sql.DB) {
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(c.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(c.ConnMaxIdleTime)
}

// SetupConnectionPool validates poolCfg and applies it to db.
func SetupConnectionPool(db *gorm.DB, poolCfg Config) error {
	if err := poolCfg.Validate(); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	poolCfg.Apply(sqlDB)
	return nil
}
