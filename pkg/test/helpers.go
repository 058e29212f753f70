package test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"

	"todolist/internal/adapter/database"
	"todolist/pkg/config"
)

// findProjectRoot walks up from this file until it finds go.mod, so tests can
// locate migrations regardless of which package runs them.
func findProjectRoot() string {
	_, filename, _, _ := runtime.Caller(0)
	dir := filepath.Dir(filename)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)

		if parent == dir {
			break
		}

		dir = parent
	}

	if wd, err := os.Getwd(); err == nil {
		return wd
	}

	return "."
}

// InitTestDB opens a migrated in-memory sqlite database. A single connection
// keeps the in-memory state alive across queries; query logging stays off so
// the logger wrapper does not open a second pool.
func InitTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Open(config.Database{
		Driver:         "sqlite3",
		DSN:            "file::memory:?_foreign_keys=on",
		MigrationsPath: filepath.Join(findProjectRoot(), "db", "migrations", "sqlite"),
		MaxOpenConns:   1,
		MaxIdleConns:   1,
	}, zerolog.Nop())

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
