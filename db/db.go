package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	_ "github.com/lib/pq" // Import postgres driver
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DefaultPool sizes the pool for maxOpen connections and keeps half of them idle.
func DefaultPool(maxOpen int) PoolConfig {
	idle := maxOpen / 2
	if idle < 1 {
		idle = 1
	}
	return PoolConfig{
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    idle,
		ConnMaxLifetime: 30 * time.Minute,
		ConnMaxIdleTime: 5 * time.Minute,
	}
}

// Connect opens the pool and pings the server. The ping is bounded by ctx.
func Connect(ctx context.Context, dsn string, pool PoolConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(pool.MaxOpenConns)
	db.SetMaxIdleConns(pool.MaxIdleConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	if err = db.PingContext(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database handle after ping error", slog.Any("error", closeErr))
		}
		return nil, fmt.Errorf("failed to ping database %s: %w", redact(dsn), err)
	}

	slog.Info("database pool ready",
		slog.String("target", redact(dsn)),
		slog.Int("max_open_conns", pool.MaxOpenConns),
	)
	return db, nil
}

// redact strips credentials from a URL-style DSN for logging.
func redact(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "postgres"
	}
	return u.Host + u.Path
}
