package model

import "encoding/json"

// Payload is the record-type specific body stored in medical_records.data.
// It is implemented only by the four variant structs in this file.
type Payload interface {
	RecordType() RecordType
	sealed()
}

// LabResultPayload is the data of a lab_result record.
type LabResultPayload struct {
	TestName       string  `json:"test_name"`
	ResultValue    float64 `json:"result_value"`
	Unit           string  `json:"unit"`
	ReferenceRange string  `json:"reference_range"`
	IsAbnormal     bool    `json:"is_abnormal"`
}

// PrescriptionPayload is the data of a prescription record.
type PrescriptionPayload struct {
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Frequency      string `json:"frequency"`
	DurationDays   int    `json:"duration_days"`
	Refills        int    `json:"refills"`
}

// DiagnosisPayload is the data of a diagnosis record.
type DiagnosisPayload struct {
	Condition string `json:"condition"`
	Severity  string `json:"severity"`
	Notes     string `json:"notes"`
	IsChronic bool   `json:"is_chronic"`
}

// ProcedurePayload is the data of a procedure record.
type ProcedurePayload struct {
	ProcedureName    string `json:"procedure_name"`
	DurationMinutes  int    `json:"duration_minutes"`
	Outcome          string `json:"outcome"`
	Complications    string `json:"complications"`
	FollowUpRequired bool   `json:"follow_up_required"`
}

func (LabResultPayload) RecordType() RecordType    { return LabResult }
func (PrescriptionPayload) RecordType() RecordType { return Prescription }
func (DiagnosisPayload) RecordType() RecordType    { return Diagnosis }
func (ProcedurePayload) RecordType() RecordType    { return Procedure }

func (LabResultPayload) sealed()    {}
func (PrescriptionPayload) sealed() {}
func (DiagnosisPayload) sealed()    {}
func (ProcedurePayload) sealed()    {}

// MarshalPayload serializes p into the JSON document written to the data column.
func MarshalPayload(p Payload) (json.RawMessage, error) {
	return json.Marshal(p)
}

// Field sets per variant, in JSON key order. Used by validation and tests.
var PayloadFields = map[RecordType][]string{
	LabResult:    {"test_name", "result_value", "unit", "reference_range", "is_abnormal"},
	Prescription: {"medication_name", "dosage", "frequency", "duration_days", "refills"},
	Diagnosis:    {"condition", "severity", "notes", "is_chronic"},
	Procedure:    {"procedure_name", "duration_minutes", "outcome", "complications", "follow_up_required"},
}
