// Package parquetout writes generated medical records to Parquet files and
// reads them back.
package parquetout

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gyeh/medseed/internal/model"
)

// Writer streams medical records into a Parquet file.
type Writer struct {
	file   *os.File
	writer *parquet.GenericWriter[model.MedicalRecordExportRow]
	buf    []model.MedicalRecordExportRow
	rows   int64
}

// Create truncates or creates path and returns a Writer for it.
func Create(path string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	return &Writer{
		file:   f,
		writer: parquet.NewGenericWriter[model.MedicalRecordExportRow](f),
	}, nil
}

// Write appends recs to the file.
func (w *Writer) Write(recs []model.MedicalRecord) error {
	w.buf = w.buf[:0]
	for i := range recs {
		if !recs[i].Type.Valid() {
			return fmt.Errorf("patient %d: invalid record type %s", recs[i].PatientID, recs[i].Type)
		}
		w.buf = append(w.buf, recs[i].ExportRow())
	}
	n, err := w.writer.Write(w.buf)
	w.rows += int64(n)
	if err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return nil
}

// Rows returns the number of rows written so far.
func (w *Writer) Rows() int64 {
	return w.rows
}

// Close flushes the footer and closes the file.
func (w *Writer) Close() error {
	if err := w.writer.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return w.file.Close()
}
