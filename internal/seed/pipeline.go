// Package seed sequences the generation stages against the sink: schema,
// facilities, departments, providers, patients and finally medical records.
// Each stage starts only after the previous one has committed.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/medseed/internal/config"
	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/generate"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/synth"
)

// Stage names used in logs and PipelineError.
const (
	StageConfig         = "config"
	StageSchema         = "schema"
	StageFacilities     = "facilities"
	StageDepartments    = "departments"
	StageProviders      = "providers"
	StagePatients       = "patients"
	StageMedicalRecords = "medical_records"
)

// PipelineError wraps an error with the stage where it occurred.
type PipelineError struct {
	Stage string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Sink is the store a run writes to. *pgxpool.Pool satisfies it.
type Sink interface {
	db.TxBeginner
	db.Execer
}

// Seeder runs one seeding pass. It is not reusable.
type Seeder struct {
	sink  Sink
	log   zerolog.Logger
	cfg   *config.Config
	synth *synth.Synthesizer
	now   time.Time
	state State
}

// New prepares a run. The caller owns sink and closes it after Run returns.
func New(sink Sink, log zerolog.Logger, cfg *config.Config) *Seeder {
	return &Seeder{
		sink:  sink,
		log:   log,
		cfg:   cfg,
		synth: synth.New(cfg.Seed),
		now:   time.Now(),
		state: Idle,
	}
}

// State returns the current state.
func (s *Seeder) State() State {
	return s.state
}

// Run seeds the sink with the configured entity counts.
func Run(ctx context.Context, sink Sink, log zerolog.Logger, cfg *config.Config) (*model.SeedSummary, error) {
	return New(sink, log, cfg).Run(ctx)
}

// Run executes every stage in dependency order. On failure the seeder moves
// to Failed and returns a *PipelineError naming the stage; rows committed by
// earlier stages stay in the sink.
func (s *Seeder) Run(ctx context.Context) (*model.SeedSummary, error) {
	if s.state != Idle {
		return nil, fmt.Errorf("seeder already ran (state %s)", s.state)
	}
	totalStart := time.Now()
	runID := uuid.New()
	s.log = s.log.With().Str("run_id", runID.String()).Logger()
	summary := &model.SeedSummary{RunID: runID.String()}

	if err := s.cfg.Validate(); err != nil {
		return nil, s.fail(StageConfig, err)
	}

	s.log.Info().
		Int("facilities", s.cfg.Facilities).
		Int("departments", s.cfg.Departments).
		Int("providers", s.cfg.Providers).
		Int("patients", s.cfg.Patients).
		Int("records_per_patient", s.cfg.RecordsPerPatient).
		Int("max_rows_per_chunk", s.cfg.MaxRowsPerChunk).
		Int("record_workers", s.cfg.RecordWorkers).
		Bool("atomic_batches", s.cfg.AtomicBatches).
		Uint64("seed", s.synth.Seed()).
		Msg("starting seed run")

	// Schema
	start := time.Now()
	if err := db.ApplyMigrations(ctx, s.sink, s.log); err != nil {
		return nil, s.fail(StageSchema, err)
	}
	summary.DurationSchema = time.Since(start)
	s.advance(StageSchema)

	// Parent entities
	parentsStart := time.Now()

	facilities, err := s.loadParents(ctx, StageFacilities, model.FacilitiesTable,
		model.Rows(generate.Facilities(s.synth, s.cfg.Facilities)))
	if err != nil {
		return nil, s.fail(StageFacilities, err)
	}
	summary.Facilities = facilities.Rows
	summary.Chunks += int64(facilities.Chunks)
	s.advance(StageFacilities)

	deps, err := generate.Departments(s.synth, s.cfg.Departments, facilities.IDs)
	if err != nil {
		return nil, s.fail(StageDepartments, err)
	}
	departments, err := s.loadParents(ctx, StageDepartments, model.DepartmentsTable, model.Rows(deps))
	if err != nil {
		return nil, s.fail(StageDepartments, err)
	}
	summary.Departments = departments.Rows
	summary.Chunks += int64(departments.Chunks)
	s.advance(StageDepartments)

	provs, err := generate.Providers(s.synth, s.cfg.Providers, departments.IDs)
	if err != nil {
		return nil, s.fail(StageProviders, err)
	}
	providers, err := s.loadParents(ctx, StageProviders, model.ProvidersTable, model.Rows(provs))
	if err != nil {
		return nil, s.fail(StageProviders, err)
	}
	summary.Providers = providers.Rows
	summary.Chunks += int64(providers.Chunks)
	s.advance(StageProviders)

	patients, err := s.loadParents(ctx, StagePatients, model.PatientsTable,
		model.Rows(generate.Patients(s.synth, s.cfg.Patients)))
	if err != nil {
		return nil, s.fail(StagePatients, err)
	}
	summary.Patients = patients.Rows
	summary.Chunks += int64(patients.Chunks)
	s.advance(StagePatients)
	summary.DurationParents = time.Since(parentsStart)

	// Medical records
	refs := generate.Refs{
		Providers:   providers.IDs,
		Facilities:  facilities.IDs,
		Departments: departments.IDs,
	}
	records, err := s.seedRecords(ctx, patients.IDs, refs)
	summary.MedicalRecords = records.Rows
	summary.Chunks += int64(records.Chunks)
	summary.DurationRecords = records.Duration
	if err != nil {
		return nil, s.fail(StageMedicalRecords, err)
	}
	s.advance(StageMedicalRecords)

	summary.DurationTotal = time.Since(totalStart)
	s.state = s.state.next()

	s.log.Info().
		Int64("top_level_rows", summary.TopLevelRows()).
		Int64("medical_records", summary.MedicalRecords).
		Int64("chunks", summary.Chunks).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("seed run complete")

	return summary, nil
}

// advance moves to the next state after stage completes.
func (s *Seeder) advance(stage string) {
	from := s.state
	s.state = s.state.next()
	s.log.Debug().Str("stage", stage).Stringer("from", from).Stringer("to", s.state).Msg("state transition")
}

// fail moves to Failed and wraps err with the stage name.
func (s *Seeder) fail(stage string, err error) error {
	s.log.Debug().Str("stage", stage).Stringer("from", s.state).Stringer("to", Failed).Msg("state transition")
	s.state = Failed
	return &PipelineError{Stage: stage, Err: err}
}
