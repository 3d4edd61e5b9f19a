package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/medseed/internal/config"
	"github.com/gyeh/medseed/internal/generate"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/synth"
)

// RecordWriter receives one patient's generated records at a time.
type RecordWriter interface {
	Write(recs []model.MedicalRecord) error
}

// Export generates the medical record stage without a sink, assuming parent
// identifiers are the dense ranges [1, N] a fresh run would produce, and
// hands each patient's records to w in patient order. It returns the number
// of records written.
func Export(ctx context.Context, log zerolog.Logger, cfg *config.Config, w RecordWriter) (int64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, &PipelineError{Stage: StageConfig, Err: err}
	}

	start := time.Now()
	s := synth.New(cfg.Seed)
	now := time.Now()
	refs := generate.Refs{
		Providers:   generate.RangeIDs(cfg.Providers),
		Facilities:  generate.RangeIDs(cfg.Facilities),
		Departments: generate.RangeIDs(cfg.Departments),
	}

	var written int64
	for _, patientID := range generate.RangeIDs(cfg.Patients) {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		recs, err := generate.MedicalRecords(s.Derive(patientID), patientID, cfg.RecordsPerPatient, refs, now)
		if err != nil {
			return written, &PipelineError{Stage: StageMedicalRecords, Err: fmt.Errorf("patient %d: %w", patientID, err)}
		}
		if err := w.Write(recs); err != nil {
			return written, &PipelineError{Stage: StageMedicalRecords, Err: fmt.Errorf("write patient %d: %w", patientID, err)}
		}
		written += int64(len(recs))
	}

	log.Info().
		Int64("records", written).
		Uint64("seed", s.Seed()).
		Str("duration", time.Since(start).String()).
		Msg("export complete")
	return written, nil
}
