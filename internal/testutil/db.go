// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dbpkg "github.com/BruksfildServices01/carwash-scheduler/internal/db"
)

// NewDB returns a migrated in-memory sqlite database. A single connection is
// kept open so every query sees the same memory database.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	opts := dbpkg.Options()
	opts.PrepareStmt = false
	opts.Logger = logger.Default.LogMode(logger.Silent)

	db, err := gorm.Open(sqlite.Open(":memory:"), opts)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}
