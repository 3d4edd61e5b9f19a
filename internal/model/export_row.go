package model

import "time"

// MedicalRecordExportRow mirrors the Parquet schema written by the export
// command. The payload is stored as its JSON text.
type MedicalRecordExportRow struct {
	PatientID    int64     `parquet:"patient_id"`
	ProviderID   int64     `parquet:"provider_id"`
	FacilityID   int64     `parquet:"facility_id"`
	DepartmentID int64     `parquet:"department_id"`
	RecordType   string    `parquet:"record_type"`
	RecordDate   time.Time `parquet:"record_date"`
	Description  string    `parquet:"description"`
	Status       string    `parquet:"status"`
	Data         string    `parquet:"data"`
}

// ExportRow converts a generated record into its Parquet representation.
func (r MedicalRecord) ExportRow() MedicalRecordExportRow {
	return MedicalRecordExportRow{
		PatientID:    r.PatientID,
		ProviderID:   r.ProviderID,
		FacilityID:   r.FacilityID,
		DepartmentID: r.DepartmentID,
		RecordType:   r.Type.String(),
		RecordDate:   r.RecordDate.UTC(),
		Description:  r.Description,
		Status:       r.Status,
		Data:         string(r.Data),
	}
}
