package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/medseed/internal/config"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seederr"
)

type collectWriter struct {
	recs  []model.MedicalRecord
	fail  error
	calls int
}

func (w *collectWriter) Write(recs []model.MedicalRecord) error {
	w.calls++
	if w.fail != nil {
		return w.fail
	}
	w.recs = append(w.recs, recs...)
	return nil
}

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Facilities = 3
	cfg.Departments = 5
	cfg.Providers = 7
	cfg.Patients = 4
	cfg.RecordsPerPatient = 25
	cfg.Seed = 1234
	return cfg
}

func TestExport_Ranges(t *testing.T) {
	cfg := smallConfig()
	w := &collectWriter{}

	n, err := Export(context.Background(), zerolog.Nop(), &cfg, w)
	require.NoError(t, err)
	assert.Equal(t, int64(100), n)
	assert.Equal(t, 4, w.calls)
	require.Len(t, w.recs, 100)

	for i, r := range w.recs {
		assert.Equal(t, int64(i/25+1), r.PatientID)
		assert.True(t, r.ProviderID >= 1 && r.ProviderID <= 7)
		assert.True(t, r.FacilityID >= 1 && r.FacilityID <= 3)
		assert.True(t, r.DepartmentID >= 1 && r.DepartmentID <= 5)
	}
}

func TestExport_SameSeedSameRecords(t *testing.T) {
	cfg := smallConfig()
	a, b := &collectWriter{}, &collectWriter{}
	_, err := Export(context.Background(), zerolog.Nop(), &cfg, a)
	require.NoError(t, err)
	_, err = Export(context.Background(), zerolog.Nop(), &cfg, b)
	require.NoError(t, err)

	require.Len(t, b.recs, len(a.recs))
	for i := range a.recs {
		assert.Equal(t, a.recs[i].Type, b.recs[i].Type)
		assert.Equal(t, a.recs[i].ProviderID, b.recs[i].ProviderID)
		assert.Equal(t, string(a.recs[i].Data), string(b.recs[i].Data))
	}
}

func TestExport_Errors(t *testing.T) {
	cfg := smallConfig()
	cfg.Departments = 25
	_, err := Export(context.Background(), zerolog.Nop(), &cfg, &collectWriter{})
	assert.ErrorIs(t, err, seederr.ErrConfiguration)

	cfg = smallConfig()
	boom := errors.New("disk full")
	w := &collectWriter{fail: boom}
	n, err := Export(context.Background(), zerolog.Nop(), &cfg, w)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, n)
	assert.Equal(t, 1, w.calls)
}
