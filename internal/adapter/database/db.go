package database

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/rs/zerolog"
	sqldblogger "github.com/simukti/sqldb-logger"
	"github.com/simukti/sqldb-logger/logadapter/zerologadapter"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"todolist/pkg/config"
)

// DB wraps the pool with a placeholder-aware statement builder. Both drivers
// accept numbered ($1) placeholders, so one builder serves sqlite and
// postgres alike.
type DB struct {
	*sql.DB
	QueryBuilder *squirrel.StatementBuilderType
	driver       string
}

// Open connects, optionally wraps the driver with statement logging, and runs
// pending migrations on the returned handle.
func Open(cfg config.Database, logger zerolog.Logger) (*DB, error) {
	sqlDB, err := sql.Open(cfg.Driver, cfg.DSN)

	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}

	if cfg.LogQueries {
		// Replace the pool with one whose driver logs every statement
		// through zerolog.
		wrapped := sqldblogger.OpenDriver(cfg.DSN, sqlDB.Driver(), zerologadapter.New(logger))
		sqlDB.Close()
		sqlDB = wrapped
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if cfg.MigrationsPath != "" {
		if err := RunMigrations(sqlDB, cfg.Driver, cfg.MigrationsPath); err != nil {
			sqlDB.Close()
			return nil, err
		}
	}

	queryBuilder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	return &DB{
		DB:           sqlDB,
		QueryBuilder: &queryBuilder,
		driver:       cfg.Driver,
	}, nil
}

func (db *DB) DriverName() string {
	return db.driver
}

// RunMigrations applies pending migrations on the given handle. Running on
// the same handle matters for in-memory sqlite, where a second connection
// would see a different database.
func RunMigrations(db *sql.DB, driverName, migrationsPath string) error {
	var (
		m   *migrate.Migrate
		err error
	)

	switch driverName {
	case "pgx":
		driver, derr := migratepg.WithInstance(db, &migratepg.Config{})

		if derr != nil {
			return fmt.Errorf("creating migration driver: %w", derr)
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsPath, "postgres", driver)
	default:
		driver, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})

		if derr != nil {
			return fmt.Errorf("creating migration driver: %w", derr)
		}

		m, err = migrate.NewWithDatabaseInstance("file://"+migrationsPath, "sqlite3", driver)
	}

	if err != nil {
		return fmt.Errorf("creating migration instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}
