package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/sahilchouksey/institute-site/config"
	"github.com/sahilchouksey/institute-site/utils/logger"
)

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	// GetDB returns *gorm.DB for GORMStore
	GetDB() interface{}
}

var _ Storage = (*GORMStore)(nil)

// EnsureDatabase connects to the maintenance database and creates DB_NAME when it does not exist yet
func EnsureDatabase(env *config.EnvironmentVariable) error {
	if env.DB_NAME == "" {
		return fmt.Errorf("DB_NAME is not set")
	}

	db, err := sql.Open("postgres", DSN(env, "postgres"))
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, env.DB_NAME).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to look up database %q: %w", env.DB_NAME, err)
	}
	if exists {
		return nil
	}

	// CREATE DATABASE does not accept bind parameters
	if _, err := db.Exec("CREATE DATABASE " + pq.QuoteIdentifier(env.DB_NAME)); err != nil {
		return fmt.Errorf("failed to create database %q: %w", env.DB_NAME, err)
	}

	logger.Info().Str("db", env.DB_NAME).Msg("created PostgreSQL database")
	return nil
}
