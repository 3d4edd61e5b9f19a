package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/medseed/internal/seederr"
)

// NewPool creates a pgxpool with session-level params suitable for bulk
// loads. maxConns <= 0 keeps the pgx default. Failures wrap
// seederr.ErrConnectionFailure, except a malformed DSN which is a
// configuration error.
func NewPool(ctx context.Context, dsn string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, seederr.Wrap(seederr.ErrConfiguration, fmt.Errorf("parse dsn: %w", err))
	}

	// Disable statement timeout for bulk loading sessions.
	cfg.ConnConfig.RuntimeParams["statement_timeout"] = "0"
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, seederr.Wrap(seederr.ErrConnectionFailure, fmt.Errorf("create pool: %w", err))
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, seederr.Wrap(seederr.ErrConnectionFailure, fmt.Errorf("ping database: %w", err))
	}

	return pool, nil
}
