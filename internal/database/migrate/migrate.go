// Package migrate applies the schema migrations. The SQL files are embedded in the
// binary; MIGRATIONS_PATH points at a directory to use instead while developing.
package migrate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appConfig "github.com/festy23/fantasy_roster/internal/config"
	"github.com/festy23/fantasy_roster/migrations"
)

// MigrationsTable records the applied schema version.
const MigrationsTable = "roster_schema_migrations"

// Source returns the migration files and a label for logs: the directory named by
// MIGRATIONS_PATH when set, otherwise the embedded copy.
func Source() (fs.FS, string, error) {
	dir := appConfig.GetEnv("MIGRATIONS_PATH", "")
	if dir == "" {
		return migrations.Files, "embedded", nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, "", fmt.Errorf("migrations directory does not exist: %s", dir)
	}
	return os.DirFS(dir), dir, nil
}

// Migrate applies all pending migrations and logs the resulting schema version.
func Migrate(db *gorm.DB, logger *zap.SugaredLogger) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	files, origin, err := Source()
	if err != nil {
		return err
	}
	src, err := iofs.New(files, ".")
	if err != nil {
		return fmt.Errorf("failed to read migrations from %s: %w", origin, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	switch err := m.Up(); {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Debugw("schema already up to date", "source", origin)
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	logger.Infow("migrations applied", "version", version, "dirty", dirty, "source", origin)

	return nil
}
