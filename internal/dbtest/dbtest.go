// Package dbtest runs an embedded PostgreSQL for integration tests.
package dbtest

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/logging"
)

const (
	testDB       = "medseedtest"
	testUser     = "postgres"
	testPassword = "postgres"
)

var dsn string

// SkipEnv names the variable that opts out of the embedded server.
const SkipEnv = "MEDSEED_SKIP_PG"

// skipRequested reports whether integration tests were explicitly disabled,
// with -short or by setting SkipEnv to a true value.
func skipRequested() bool {
	if testing.Short() {
		return true
	}
	skip, _ := strconv.ParseBool(os.Getenv(SkipEnv))
	return skip
}

// Main starts PostgreSQL on port, runs the package tests and stops it. Under
// -short or SkipEnv integration tests are skipped and unit tests still run.
// A server that fails to start fails the package. Each package must use its
// own port.
func Main(m *testing.M, port uint32) int {
	flag.Parse()
	if skipRequested() {
		return m.Run()
	}

	runtimePath, err := os.MkdirTemp("", "medseed-pg-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "create runtime dir: %v\n", err)
		return 1
	}
	defer os.RemoveAll(runtimePath)

	pg := embeddedpostgres.NewDatabase(
		embeddedpostgres.DefaultConfig().
			Port(port).
			Database(testDB).
			Username(testUser).
			Password(testPassword).
			Version(embeddedpostgres.V16).
			RuntimePath(runtimePath).
			StartTimeout(30 * time.Second),
	)

	if err := pg.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start embedded postgres (set %s=1 to skip): %v\n", SkipEnv, err)
		return 1
	}
	dsn = fmt.Sprintf("postgresql://%s:%s@localhost:%d/%s?sslmode=disable",
		testUser, testPassword, port, testDB)

	code := m.Run()

	if err := pg.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to stop embedded postgres: %v\n", err)
	}
	return code
}

// DSN returns the connection string of the running server. It skips t when
// no server is running.
func DSN(t *testing.T) string {
	t.Helper()
	if dsn == "" {
		t.Skip("embedded postgres not running")
	}
	return dsn
}

// Pool connects to a freshly reset schema. Migrations are applied unless
// migrate is false.
func Pool(t *testing.T, migrate bool) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, DSN(t))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	for _, stmt := range []string{
		"DROP TABLE IF EXISTS medical_records, patients, healthcare_providers, departments, facilities CASCADE",
		"DROP TYPE IF EXISTS record_type",
	} {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("reset schema: %v", err)
		}
	}

	if migrate {
		if err := db.ApplyMigrations(ctx, pool, logging.Setup("text")); err != nil {
			t.Fatalf("migrations: %v", err)
		}
	}
	return pool
}

// Count returns the row count of table.
func Count(t *testing.T, pool *pgxpool.Pool, table string) int64 {
	t.Helper()
	var n int64
	if err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}
