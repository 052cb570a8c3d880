// Package database provides database connection management for PostgreSQL.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/festy23/fantasy_roster/internal/database/config"
	"github.com/festy23/fantasy_roster/internal/database/pool"
	"github.com/festy23/fantasy_roster/pkg/retry"
)

// Open connects to PostgreSQL with retries and configures the connection pool.
// ctx bounds the total time spent retrying.
func Open(ctx context.Context, cfg config.Config, poolCfg pool.Config, logger *zap.SugaredLogger) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid database config: %w", err)
	}

	retryCfg := config.LoadRetryConfigFromEnv()
	retryCfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Warnw("database connection attempt failed",
			"attempt", attempt,
			"max_attempts", retryCfg.MaxAttempts,
			"retry_in", delay,
			"host", cfg.Host,
			"error", config.SanitizeError(err, cfg),
		)
	}
	dsn := config.BuildDSN(cfg)

	attempts := 0
	db, err := retry.DoWithResult(ctx, retryCfg, func() (*gorm.DB, error) {
		attempts++
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.SetupConnectionPool(db, poolCfg); err != nil {
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}

	logger.Infow("database connected",
		"host", cfg.Host,
		"db_name", cfg.DBName,
		"attempts", attempts,
	)

	return db, nil
}

// HealthCheck verifies database connection availability.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close gracefully closes database connection.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns database connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	stats := sqlDB.Stats()
	return &stats, nil
}

// IsDuplicateError reports whether err is a unique constraint violation from
// PostgreSQL or SQLite.
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
