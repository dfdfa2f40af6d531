package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mcdev12/transfermarket/go/internal/migrations"
	"github.com/rs/zerolog/log"
)

// setupDatabase opens a pool, applies migrations and exposes the pool through
// database/sql for the repository.
func setupDatabase(ctx context.Context, cfg *Config) (*pgxpool.Pool, *sql.DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolCfg.MaxConns = 20
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrations.Run(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Msg("connected to database")
	return pool, stdlib.OpenDBFromPool(pool), nil
}
