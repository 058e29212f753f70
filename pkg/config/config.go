package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at process start and treated as immutable for the
// process lifetime. Components receive it (or a sub-struct) explicitly; there
// is no ambient global lookup.
type Config struct {
	Port        string
	Environment string

	Database Database
	Auth     Auth
	Storage  Storage

	RateLimitEnabled bool
}

type Database struct {
	// Driver is "sqlite3" or "pgx".
	Driver string
	DSN    string

	MigrationsPath string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// LogQueries wires the sqldb-logger driver wrapper. Off for tests.
	LogQueries bool
}

type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

type Storage struct {
	// UploadDir empty means no attachment backend is configured; uploads
	// fail with StorageUnavailable instead of silently succeeding.
	UploadDir    string
	ImageBaseURL string
}

func (s Storage) Enabled() bool {
	return s.UploadDir != ""
}

// Load reads the environment, with a best-effort .env load first.
func Load() (*Config, error) {
	_ = godotenv.Load()

	driver := getEnv("DATABASE_DRIVER", "sqlite3")

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		Database: Database{
			Driver:          driver,
			DSN:             getEnv("DATABASE_URL", "file:todolist.db?_foreign_keys=on"),
			MigrationsPath:  getEnv("MIGRATIONS_PATH", "db/migrations/"+migrationsDirFor(driver)),
			MaxOpenConns:    getEnvInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: time.Duration(getEnvInt("DATABASE_CONN_MAX_LIFETIME_MINUTES", 5)) * time.Minute,
			LogQueries:      getEnv("DATABASE_LOG_QUERIES", "true") == "true",
		},
		Auth: Auth{
			Secret:   os.Getenv("JWT_SECRET"),
			TokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		},
		Storage: Storage{
			UploadDir:    os.Getenv("UPLOAD_DIR"),
			ImageBaseURL: getEnv("IMAGE_BASE_URL", "/static/images/"),
		},
		RateLimitEnabled: getEnv("RATE_LIMIT_ENABLED", "true") == "true",
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}

	return cfg, nil
}

func migrationsDirFor(driver string) string {
	if driver == "pgx" {
		return "postgres"
	}

	return "sqlite"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)

	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)

	if err != nil {
		return fallback
	}

	return n
}
