// Package dbtest opens throwaway in-memory SQLite databases for tests, with
// foreign keys enforced so cascade rules behave as in production.
package dbtest

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/config"
	"github.com/aldoetobex/legal-practice-backend/pkg/database"
)

// Open returns a migrated, isolated database that lives for the test's duration.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:    "sqlite",
		DatabaseURL: "file:" + uuid.NewString() + "?mode=memory&cache=shared&_foreign_keys=on",
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(cfg, db, Logger()))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Logger discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
