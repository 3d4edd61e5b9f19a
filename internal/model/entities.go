package model

import (
	"encoding/json"
	"time"
)

// Table names a sink table and its insert column order. Row values passed to
// the loader must follow Columns.
type Table struct {
	Name    string
	Columns []string
}

var (
	FacilitiesTable = Table{
		Name:    "facilities",
		Columns: []string{"name", "address"},
	}
	DepartmentsTable = Table{
		Name:    "departments",
		Columns: []string{"facility_id", "name"},
	}
	ProvidersTable = Table{
		Name:    "healthcare_providers",
		Columns: []string{"department_id", "first_name", "last_name", "specialty"},
	}
	PatientsTable = Table{
		Name:    "patients",
		Columns: []string{"first_name", "last_name", "date_of_birth", "gender"},
	}
	MedicalRecordsTable = Table{
		Name: "medical_records",
		Columns: []string{
			"patient_id",
			"provider_id",
			"facility_id",
			"department_id",
			"record_type",
			"record_date",
			"description",
			"status",
			"data",
		},
	}
)

// AllTables lists the seeded tables in dependency order.
var AllTables = []Table{
	FacilitiesTable,
	DepartmentsTable,
	ProvidersTable,
	PatientsTable,
	MedicalRecordsTable,
}

// Facility is one row of facilities.
type Facility struct {
	Name    string
	Address string
}

func (f Facility) Values() []any {
	return []any{f.Name, f.Address}
}

// Department is one row of departments.
type Department struct {
	FacilityID int64
	Name       string
}

func (d Department) Values() []any {
	return []any{d.FacilityID, d.Name}
}

// Provider is one row of healthcare_providers.
type Provider struct {
	DepartmentID int64
	FirstName    string
	LastName     string
	Specialty    string
}

func (p Provider) Values() []any {
	return []any{p.DepartmentID, p.FirstName, p.LastName, p.Specialty}
}

// Patient is one row of patients.
type Patient struct {
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Gender      string
}

func (p Patient) Values() []any {
	return []any{p.FirstName, p.LastName, p.DateOfBirth, p.Gender}
}

// MedicalRecord is one row of medical_records. Data holds the serialized
// Payload; both are set together by the generator.
type MedicalRecord struct {
	PatientID    int64
	ProviderID   int64
	FacilityID   int64
	DepartmentID int64
	Type         RecordType
	RecordDate   time.Time
	Description  string
	Status       string
	Payload      Payload
	Data         json.RawMessage
}

// Values returns the row in MedicalRecordsTable.Columns order.
func (r MedicalRecord) Values() []any {
	return []any{
		r.PatientID,
		r.ProviderID,
		r.FacilityID,
		r.DepartmentID,
		r.Type.String(),
		r.RecordDate,
		r.Description,
		r.Status,
		r.Data,
	}
}

// Row is anything that can be flattened into a loader row.
type Row interface {
	Values() []any
}

// Rows flattens a slice of entities into loader rows.
func Rows[T Row](items []T) [][]any {
	out := make([][]any, len(items))
	for i, it := range items {
		out[i] = it.Values()
	}
	return out
}
