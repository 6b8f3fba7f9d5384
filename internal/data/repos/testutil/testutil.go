package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/planvane/planvane-backend/internal/data/db"
	"github.com/planvane/planvane-backend/internal/pkg/logger"
)

var (
	dbOnce sync.Once
	handle *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a shared migrated handle. Set TEST_POSTGRES_DSN for a real
// postgres; otherwise tests run against in-memory sqlite, which covers
// everything except postgres-only SQLSTATE mapping.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}

		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			handle, dbErr = gorm.Open(postgres.Open(dsn), cfg)
			if dbErr != nil {
				return
			}
			if dbErr = handle.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; dbErr != nil {
				return
			}
			dbErr = db.AutoMigrateAll(handle)
			return
		}

		handle, dbErr = gorm.Open(sqlite.Open("file::memory:?cache=shared"), cfg)
		if dbErr != nil {
			return
		}
		dbErr = db.AutoMigrateAll(handle)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return handle
}

// Tx opens a transaction rolled back at test cleanup, keeping the shared
// handle clean between tests.
func Tx(tb testing.TB, handle *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := handle.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
