package database

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/listkeep-io/listkeep/internal/config"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already exists")
	ErrEmailTaken      = errors.New("email already exists")
	ErrTodoNotFound    = errors.New("todo item not found")
	ErrSessionNotFound = errors.New("session not found")
)

var (
	dbConn *sql.DB
	dbType string
)

// Init opens the database connection and initializes the schema. It must be
// called once at startup before any query helpers are used.
func Init(cfg *config.Config) error {
	if dbConn != nil {
		return nil
	}

	var db *sql.DB
	var err error

	switch cfg.Database.Type {
	case "postgres":
		db, err = initPostgreSQL(cfg)
	case "sqlite", "":
		db, err = initSQLite(cfg)
	default:
		return fmt.Errorf("unsupported database type: %s", cfg.Database.Type)
	}
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(db, cfg.Database.Type); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	dbConn = db
	dbType = cfg.Database.Type
	if dbType == "" {
		dbType = "sqlite"
	}
	log.Info().Str("type", dbType).Msg("database initialized")
	return nil
}

func initPostgreSQL(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func initSQLite(cfg *config.Config) (*sql.DB, error) {
	dataDir := filepath.Dir(cfg.Database.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dsn := cfg.Database.Path + "?_foreign_keys=on"
	if cfg.Database.WALMode {
		dsn += "&_journal=WAL"
	}

	var db *sql.DB
	var lastErr error
	for i := 0; i < cfg.Database.MaxRetries; i++ {
		var err error
		db, err = sql.Open("sqlite3", dsn)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
		log.Warn().Err(err).Int("attempt", i+1).Int("max", cfg.Database.MaxRetries).Msg("sqlite open failed, retrying")
		time.Sleep(time.Duration(cfg.Database.RetryDelay) * time.Second)
	}
	if lastErr != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.Database.MaxRetries, lastErr)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// GetDB returns the process-wide database connection.
func GetDB() *sql.DB {
	return dbConn
}

// Close closes the database connection. Safe to call when Init never ran.
func Close() error {
	if dbConn != nil {
		err := dbConn.Close()
		dbConn = nil
		dbType = ""
		return err
	}
	return nil
}

// bind rewrites `?` placeholders to `$n` for PostgreSQL. Query helpers are
// written against the SQLite placeholder style.
func bind(query string) string {
	if dbType != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func initSchema(db *sql.DB, dbType string) error {
	var statements []string

	if dbType == "postgres" {
		statements = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id SERIAL PRIMARY KEY,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
			`CREATE TABLE IF NOT EXISTS todos (
				id SERIAL PRIMARY KEY,
				user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				title TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ
			)`,
			`CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				token TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				expires_at TIMESTAMPTZ NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		}
	} else {
		statements = []string{
			`CREATE TABLE IF NOT EXISTS users (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				username TEXT UNIQUE NOT NULL,
				email TEXT UNIQUE NOT NULL,
				password TEXT NOT NULL,
				created_at DATETIME NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS todos (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				user_id INTEGER NOT NULL,
				title TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				updated_at DATETIME,
				FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS sessions (
				id TEXT PRIMARY KEY,
				token TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				expires_at DATETIME NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_todos_user_id ON todos(user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at)`,
		}
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema statement failed: %w", err)
		}
	}
	return nil
}
