package pool

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestDefaultPoolConfig(t *testing.T) {
	cfg := DefaultPoolConfig()
	assert.Equal(t, 20, cfg.MaxOpenConns)
	assert.Equal(t, 10, cfg.MaxIdleConns)
	assert.Equal(t, 30*time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_POOL_MAX_OPEN", "40")
	t.Setenv("DB_POOL_MAX_IDLE", "8")
	t.Setenv("DB_POOL_MAX_LIFETIME", "1m")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, 40, cfg.MaxOpenConns)
	assert.Equal(t, 8, cfg.MaxIdleConns)
	assert.Equal(t, time.Minute, cfg.ConnMaxLifetime)
	assert.Equal(t, 5*time.Minute, cfg.ConnMaxIdleTime)
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	err := Config{MaxOpenConns: 0, MaxIdleConns: -1, ConnMaxLifetime: -time.Second}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxOpenConns must be greater than 0")
	assert.Contains(t, err.Error(), "MaxIdleConns must be non-negative")
	assert.Contains(t, err.Error(), "lifetimes must be non-negative")
}

func TestSetupConnectionPool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	defer func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	}()

	tests := []struct {
		name      string
		config    Config
		wantError string
	}{
		{name: "defaults", config: DefaultPoolConfig()},
		{name: "zero open", config: Config{MaxOpenConns: 0}, wantError: "MaxOpenConns must be greater than 0"},
		{name: "negative idle", config: Config{MaxOpenConns: 1, MaxIdleConns: -1}, wantError: "MaxIdleConns must be non-negative"},
		{name: "idle above open", config: Config{MaxOpenConns: 2, MaxIdleConns: 3}, wantError: "cannot be greater than MaxOpenConns"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetupConnectionPool(db, tt.config)
			if tt.wantError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantError)
				return
			}
			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			assert.Equal(t, tt.config.MaxOpenConns, sqlDB.Stats().MaxOpenConnections)
		})
	}
}
