package parquetout

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/medseed/internal/generate"
	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/synth"
)

func TestWriteRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.parquet")
	refs := generate.Refs{
		Providers:   generate.RangeIDs(5),
		Facilities:  generate.RangeIDs(2),
		Departments: generate.RangeIDs(3),
	}
	s := synth.New(11)
	now := time.Now()

	w, err := Create(path)
	require.NoError(t, err)
	var want []model.MedicalRecord
	for pid := int64(1); pid <= 3; pid++ {
		recs, err := generate.MedicalRecords(s.Derive(pid), pid, 40, refs, now)
		require.NoError(t, err)
		require.NoError(t, w.Write(recs))
		want = append(want, recs...)
	}
	assert.Equal(t, int64(120), w.Rows())
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()
	assert.Equal(t, int64(120), r.NumRows())

	var got []model.MedicalRecordExportRow
	buf := make([]model.MedicalRecordExportRow, 32)
	for {
		n, err := r.Read(buf)
		got = append(got, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].PatientID, got[i].PatientID)
		assert.Equal(t, want[i].Type.String(), got[i].RecordType)
		assert.WithinDuration(t, want[i].RecordDate, got[i].RecordDate, time.Millisecond, "record_date row %d", i)
		assert.True(t, json.Valid([]byte(got[i].Data)))
		rt, err := model.ParseRecordType(got[i].RecordType)
		require.NoError(t, err)
		assert.Equal(t, want[i].Type, rt)
	}
}

func TestValidateSchema_Missing(t *testing.T) {
	type partial struct {
		PatientID int64 `parquet:"patient_id"`
	}
	err := ValidateSchema(parquet.SchemaOf(partial{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record_type")
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.parquet"))
	assert.Error(t, err)
}

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o644))
	sum, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", sum)
}

func TestVerify_CountsRecordTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.parquet")
	refs := generate.Refs{
		Providers:   generate.RangeIDs(2),
		Facilities:  generate.RangeIDs(1),
		Departments: generate.RangeIDs(1),
	}
	recs, err := generate.MedicalRecords(synth.New(3), 1, 50, refs, time.Now())
	require.NoError(t, err)

	w, err := Create(path)
	require.NoError(t, err)
	require.NoError(t, w.Write(recs))
	require.NoError(t, w.Close())

	want := make(map[model.RecordType]int64)
	for _, r := range recs {
		want[r.Type]++
	}
	st, err := Verify(path)
	require.NoError(t, err)
	assert.Equal(t, int64(50), st.Rows)
	assert.Equal(t, want, st.ByType)
}

func TestVerify_RejectsUnknownRecordType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.parquet")
	f, err := os.Create(path)
	require.NoError(t, err)
	pw := parquet.NewGenericWriter[model.MedicalRecordExportRow](f)
	_, err = pw.Write([]model.MedicalRecordExportRow{{PatientID: 1, RecordType: "x_ray", RecordDate: time.Now(), Data: "{}"}})
	require.NoError(t, err)
	require.NoError(t, pw.Close())
	require.NoError(t, f.Close())

	_, err = Verify(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown record type "x_ray"`)
}

func TestWrite_RejectsInvalidRecordType(t *testing.T) {
	w, err := Create(filepath.Join(t.TempDir(), "records.parquet"))
	require.NoError(t, err)
	defer w.Close()

	err = w.Write([]model.MedicalRecord{{PatientID: 4, Type: model.RecordType(9)}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RecordType(9)")
	assert.Zero(t, w.Rows())
}
