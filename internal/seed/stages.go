package seed

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gyeh/medseed/internal/db"
	"github.com/gyeh/medseed/internal/generate"
	"github.com/gyeh/medseed/internal/model"
)

// StageResult holds metrics from one stage.
type StageResult struct {
	Rows     int64
	Chunks   int
	IDs      generate.IDSet
	Duration time.Duration
}

// parentOptions loads a whole parent stage in one transaction so a failed
// stage leaves no rows behind.
func (s *Seeder) parentOptions() db.LoadOptions {
	return db.LoadOptions{
		MaxRows:   s.cfg.MaxRowsPerChunk,
		Returning: "id",
		Atomic:    true,
	}
}

func (s *Seeder) recordOptions() db.LoadOptions {
	return db.LoadOptions{
		MaxRows: s.cfg.MaxRowsPerChunk,
		Atomic:  s.cfg.AtomicBatches,
	}
}

// loadParents loads one parent entity stage and returns the identifiers the
// sink assigned.
func (s *Seeder) loadParents(ctx context.Context, stage string, table model.Table, rows [][]any) (*StageResult, error) {
	start := time.Now()
	res, err := db.LoadBatch(ctx, s.sink, table, rows, s.parentOptions())
	if err != nil {
		return nil, err
	}
	if res.Rows != int64(len(rows)) {
		return nil, fmt.Errorf("%s: loaded %d rows, want %d", table.Name, res.Rows, len(rows))
	}
	out := &StageResult{
		Rows:     res.Rows,
		Chunks:   res.Chunks,
		IDs:      generate.IDSet(res.IDs),
		Duration: time.Since(start),
	}
	s.logStage(stage, out)
	return out, nil
}

// seedRecords generates and loads each patient's records as an independent
// unit. Up to RecordWorkers units run at once; the first failure stops new
// units from starting. The result counts committed rows even on error.
func (s *Seeder) seedRecords(ctx context.Context, patients generate.IDSet, refs generate.Refs) (*StageResult, error) {
	start := time.Now()
	out := &StageResult{}
	if err := refs.Validate(); err != nil {
		return out, err
	}

	var rows, chunks, done atomic.Int64
	opts := s.recordOptions()
	every := int64(s.cfg.ProgressEvery)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.RecordWorkers)

	for _, patientID := range patients {
		if gctx.Err() != nil {
			break
		}
		// Each patient gets its own stream so output does not depend on
		// scheduling order.
		ps := s.synth.Derive(patientID)
		g.Go(func() error {
			recs, err := generate.MedicalRecords(ps, patientID, s.cfg.RecordsPerPatient, refs, s.now)
			if err != nil {
				return fmt.Errorf("patient %d: %w", patientID, err)
			}
			res, err := db.LoadBatch(gctx, s.sink, model.MedicalRecordsTable, model.Rows(recs), opts)
			rows.Add(res.Rows)
			chunks.Add(int64(res.Chunks))
			if err != nil {
				return fmt.Errorf("patient %d: %w", patientID, err)
			}
			if n := done.Add(1); every > 0 && n%every == 0 {
				s.log.Info().
					Int64("patients_done", n).
					Int("patients_total", len(patients)).
					Int64("records", rows.Load()).
					Msg("medical records progress")
			}
			return nil
		})
	}

	err := g.Wait()
	out.Rows = rows.Load()
	out.Chunks = int(chunks.Load())
	out.Duration = time.Since(start)
	if err != nil {
		return out, err
	}
	if err := ctx.Err(); err != nil {
		return out, err
	}
	s.logStage(StageMedicalRecords, out)
	return out, nil
}

func (s *Seeder) logStage(stage string, r *StageResult) {
	rate := 0.0
	if secs := r.Duration.Seconds(); secs > 0 {
		rate = float64(r.Rows) / secs
	}
	s.log.Info().
		Str("stage", stage).
		Int64("rows", r.Rows).
		Int("chunks", r.Chunks).
		Str("duration", r.Duration.String()).
		Float64("rows_per_sec", rate).
		Msg("stage complete")
}
