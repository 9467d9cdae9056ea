package database

import (
	"fmt"
	"strings"

	"vividmedi-backend/internal/domain/usage"
	"vividmedi-backend/internal/domain/users"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by dsn and migrates the schema.
// Postgres DSNs get the postgres driver; anything else is treated as a
// sqlite file path. The handle is returned, not stored in a global, so
// tests can substitute their own.
func Open(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty database DSN")
	}

	var dial gorm.Dialector
	if isPostgresDSN(dsn) {
		dial = postgres.Open(dsn)
	} else {
		dial = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	fmt.Println("✅ Connected and migrated successfully")
	return db, nil
}

// Migrate creates the durable tables: users (unique on id and email),
// usage_counters (unique on actor_kind+actor_id) and sessions.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&users.User{},
		&users.Session{},
		&usage.Counter{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}
