package parquetout

import (
	"errors"
	"fmt"
	"io"

	"github.com/gyeh/medseed/internal/model"
)

const verifyBatch = 1024

// Stats summarises the contents of an exported file.
type Stats struct {
	Rows   int64
	ByType map[model.RecordType]int64
}

// Verify reads every row of path back and checks that each one carries a
// known record type and a patient.
func Verify(path string) (*Stats, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	st := &Stats{ByType: make(map[model.RecordType]int64, len(model.AllRecordTypes))}
	buf := make([]model.MedicalRecordExportRow, verifyBatch)
	for {
		n, err := r.Read(buf)
		for i := range buf[:n] {
			row := &buf[i]
			rt, perr := model.ParseRecordType(row.RecordType)
			if perr != nil {
				return nil, fmt.Errorf("row %d: %w", st.Rows, perr)
			}
			if row.PatientID <= 0 {
				return nil, fmt.Errorf("row %d: invalid patient_id %d", st.Rows, row.PatientID)
			}
			st.ByType[rt]++
			st.Rows++
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if st.Rows != r.NumRows() {
		return nil, fmt.Errorf("read %d rows, footer says %d", st.Rows, r.NumRows())
	}
	return st, nil
}
