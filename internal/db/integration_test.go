package db_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/dbtest"
	"github.com/gyeh/medseed/internal/logging"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seederr"
)

func TestMain(m *testing.M) {
	os.Exit(dbtest.Main(m, 15433))
}

func TestMigrations_Idempotent(t *testing.T) {
	pool := dbtest.Pool(t, true)
	ctx := context.Background()

	if err := db.ApplyMigrations(ctx, pool, logging.Setup("text")); err != nil {
		t.Fatalf("second migration run should be idempotent: %v", err)
	}

	for _, tbl := range model.AllTables {
		var exists bool
		err := pool.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = 'public' AND table_name = $1)",
			tbl.Name).Scan(&exists)
		if err != nil {
			t.Fatalf("check table %s: %v", tbl.Name, err)
		}
		if !exists {
			t.Errorf("table %s should exist after migrations", tbl.Name)
		}
	}

	var labels int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM pg_enum e JOIN pg_type t ON t.oid = e.enumtypid WHERE t.typname = 'record_type'`,
	).Scan(&labels); err != nil {
		t.Fatalf("query enum: %v", err)
	}
	if labels != len(model.AllRecordTypes) {
		t.Errorf("record_type has %d labels, want %d", labels, len(model.AllRecordTypes))
	}

	var indexes int
	if err := pool.QueryRow(ctx,
		`SELECT count(*) FROM pg_indexes WHERE tablename = 'medical_records' AND indexname LIKE 'idx_medical_records_%'`,
	).Scan(&indexes); err != nil {
		t.Fatalf("query indexes: %v", err)
	}
	if indexes != 7 {
		t.Errorf("expected 7 medical_records indexes, got %d", indexes)
	}
}

func TestVerifySchema_Missing(t *testing.T) {
	pool := dbtest.Pool(t, false)

	err := db.VerifySchema(context.Background(), pool)
	if !errors.Is(err, seederr.ErrSchemaPrecondition) {
		t.Fatalf("expected schema precondition error, got %v", err)
	}
}

func TestLoadBatch_ReturnsIDs(t *testing.T) {
	pool := dbtest.Pool(t, true)
	ctx := context.Background()

	rows := make([][]any, 25)
	for i := range rows {
		rows[i] = []any{fmt.Sprintf("Facility %d", i), "1 Main St, Springfield"}
	}
	res, err := db.LoadBatch(ctx, pool, model.FacilitiesTable, rows, db.LoadOptions{MaxRows: 10, Returning: "id"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Chunks != 3 {
		t.Errorf("chunks = %d, want 3", res.Chunks)
	}
	if len(res.IDs) != 25 {
		t.Fatalf("ids = %d, want 25", len(res.IDs))
	}
	for i, id := range res.IDs {
		if id != int64(i+1) {
			t.Errorf("ids[%d] = %d, want %d", i, id, i+1)
		}
	}
	if n := dbtest.Count(t, pool, "facilities"); n != 25 {
		t.Errorf("facilities = %d, want 25", n)
	}
}

func TestLoadBatch_ConstraintViolationKeepsEarlierChunks(t *testing.T) {
	pool := dbtest.Pool(t, true)
	ctx := context.Background()
	opts := db.LoadOptions{MaxRows: 3}

	mustLoad := func(table model.Table, rows [][]any) {
		t.Helper()
		if _, err := db.LoadBatch(ctx, pool, table, rows, opts); err != nil {
			t.Fatalf("load %s: %v", table.Name, err)
		}
	}
	mustLoad(model.FacilitiesTable, [][]any{{"General Medical Center", "1 Main St, Springfield"}})
	mustLoad(model.DepartmentsTable, [][]any{{int64(1), "Cardiology"}})
	mustLoad(model.ProvidersTable, [][]any{{int64(1), "Ada", "Lovelace", "Cardiologist"}})
	mustLoad(model.PatientsTable, [][]any{{"Alan", "Turing", time.Date(1950, 6, 23, 0, 0, 0, 0, time.UTC), "male"}})

	record := func(providerID int64) []any {
		return model.MedicalRecord{
			PatientID:    1,
			ProviderID:   providerID,
			FacilityID:   1,
			DepartmentID: 1,
			Type:         model.Diagnosis,
			RecordDate:   time.Now(),
			Description:  "Routine visit.",
			Status:       "Active",
			Data:         []byte(`{"condition":"I10","severity":"Mild","notes":"ok","is_chronic":false}`),
		}.Values()
	}
	rows := [][]any{
		record(1), record(1), record(1), // chunk 1
		record(1), record(9999), record(1), // chunk 2
		record(1), // chunk 3
	}

	res, err := db.LoadBatch(ctx, pool, model.MedicalRecordsTable, rows, opts)
	if !errors.Is(err, seederr.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23503" {
		t.Errorf("expected foreign key violation 23503, got %v", err)
	}
	if res.Rows != 3 || res.Chunks != 1 {
		t.Errorf("result = %+v, want 3 rows in 1 chunk", res)
	}
	if n := dbtest.Count(t, pool, "medical_records"); n != 3 {
		t.Errorf("medical_records = %d, want 3 (chunk 1 only)", n)
	}
}

func TestLoadBatch_AtomicRollsBackAll(t *testing.T) {
	pool := dbtest.Pool(t, true)
	ctx := context.Background()

	rows := [][]any{
		{int64(1), "Cardiology"},
		{int64(1), "Neurology"},
		{int64(42), "Oncology"},
	}
	if _, err := db.LoadBatch(ctx, pool, model.FacilitiesTable, [][]any{{"A Medical Center", "1 Main St"}}, db.LoadOptions{MaxRows: 1}); err != nil {
		t.Fatalf("load facility: %v", err)
	}

	_, err := db.LoadBatch(ctx, pool, model.DepartmentsTable, rows, db.LoadOptions{MaxRows: 1, Atomic: true})
	if !errors.Is(err, seederr.ErrConstraintViolation) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
	if n := dbtest.Count(t, pool, "departments"); n != 0 {
		t.Errorf("departments = %d, want 0 after atomic rollback", n)
	}
}
