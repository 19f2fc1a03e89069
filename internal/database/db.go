package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/orgdir/orgdir/internal/config"
)

// DB wraps the Postgres connection pool
type DB struct {
	*sql.DB
}

// DSN renders a Postgres connection string from config. The password is
// URL-encoded to handle special characters (/, +, =, etc.).
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, url.QueryEscape(cfg.Password), cfg.Host, cfg.Port, cfg.Name)
}

// NewDB opens a database connection pool, verifies it and runs migrations.
func NewDB(cfg config.DatabaseConfig) (*DB, error) {
	dsn := DSN(cfg)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.MigrationsPath != "" {
		if err := Migrate(cfg, "up"); err != nil {
			db.Close()
			return nil, err
		}
	}

	return &DB{DB: db}, nil
}

// Migrate runs the file-based migrations in the given direction ("up" or
// "down"). Shared by server startup and the admin CLI.
func Migrate(cfg config.DatabaseConfig, direction string) error {
	m, err := migrate.New("file://"+cfg.MigrationsPath, DSN(cfg))
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer m.Close()

	switch direction {
	case "down":
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
