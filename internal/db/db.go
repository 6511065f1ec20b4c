package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The server writes from a single event writer and reads profiles once at startup.
const (
	maxConns          = 4
	healthCheckPeriod = 30 * time.Second
)

// DB owns the pgx pool shared by the repositories.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL at dsn and checks the connection.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing database dsn: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.HealthCheckPeriod = healthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close releases all pooled connections.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the pool for repositories.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}
