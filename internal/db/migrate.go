package db

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seederr"
	embedsql "github.com/gyeh/medseed/internal/sql"
)

// Execer runs a statement. *pgxpool.Pool and pgx.Tx satisfy it.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ApplyMigrations runs all embedded SQL migrations in filename order, then
// verifies the seeded tables exist. All DDL is guarded so migrations are
// idempotent. Failures wrap seederr.ErrSchemaPrecondition.
func ApplyMigrations(ctx context.Context, db Execer, log zerolog.Logger) error {
	entries, err := fs.ReadDir(embedsql.Migrations, "migrations")
	if err != nil {
		return seederr.Wrap(seederr.ErrSchemaPrecondition, fmt.Errorf("read migrations dir: %w", err))
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	applied := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		data, err := fs.ReadFile(embedsql.Migrations, "migrations/"+name)
		if err != nil {
			return seederr.Wrap(seederr.ErrSchemaPrecondition, fmt.Errorf("read migration %s: %w", name, err))
		}

		log.Debug().Str("migration", name).Msg("applying migration")
		if _, err := db.Exec(ctx, string(data)); err != nil {
			return schemaError(fmt.Errorf("execute migration %s: %w", name, err))
		}
		applied++
	}

	if err := VerifySchema(ctx, db); err != nil {
		return err
	}

	log.Info().Int("count", applied).Msg("schema ready")
	return nil
}

// VerifySchema checks that every seeded table and the record_type enum exist.
func VerifySchema(ctx context.Context, db Execer) error {
	for _, t := range model.AllTables {
		// The regclass cast fails with undefined_table when t is missing.
		if _, err := db.Exec(ctx, fmt.Sprintf("SELECT '%s'::regclass", t.Name)); err != nil {
			return schemaError(fmt.Errorf("table %s: %w", t.Name, err))
		}
	}
	if _, err := db.Exec(ctx, "SELECT 'lab_result'::record_type"); err != nil {
		return schemaError(fmt.Errorf("type record_type: %w", err))
	}
	return nil
}

// schemaError tags err as a schema failure, unless the sink itself was
// unreachable.
func schemaError(err error) error {
	if classified := seederr.Classify(err); seederr.Kind(classified) == seederr.ErrConnectionFailure {
		return classified
	}
	return seederr.Wrap(seederr.ErrSchemaPrecondition, err)
}
