package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	dbpkg "github.com/yungbote/edulearn-backend/internal/data/db"
	"github.com/yungbote/edulearn-backend/internal/pkg/dbctx"
	"github.com/yungbote/edulearn-backend/internal/platform/logger"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.Nop()
}

// DB opens the shared test database: Postgres when TEST_POSTGRES_DSN is set,
// otherwise an in-memory SQLite database on a single connection.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		cfg := &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		}
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			db, dbErr = gorm.Open(postgres.Open(dsn), cfg)
		} else {
			db, dbErr = gorm.Open(sqlite.Open("file::memory:"), cfg)
			if dbErr == nil {
				sqlDB, err := db.DB()
				if err != nil {
					dbErr = err
					return
				}
				sqlDB.SetMaxOpenConns(1)
			}
		}
		if dbErr != nil {
			return
		}
		if err := dbpkg.AutoMigrateAll(db); err != nil {
			dbErr = err
			return
		}
		dbErr = dbpkg.EnsureIndexes(db)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

// Tx begins a transaction that is rolled back when the test ends.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

// DBC binds tx to a background context for repository calls.
func DBC(tx *gorm.DB) dbctx.Context {
	return dbctx.Context{Ctx: context.Background(), Tx: tx}
}
