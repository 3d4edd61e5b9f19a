package model

import "fmt"

// RecordType is the medical_records.record_type enum. The set is closed:
// every value is one of the constants below.
type RecordType uint8

const (
	LabResult RecordType = iota + 1
	Prescription
	Diagnosis
	Procedure
)

// AllRecordTypes lists the record types in enum declaration order.
var AllRecordTypes = []RecordType{LabResult, Prescription, Diagnosis, Procedure}

// String returns the database enum label, e.g. "lab_result".
func (t RecordType) String() string {
	switch t {
	case LabResult:
		return "lab_result"
	case Prescription:
		return "prescription"
	case Diagnosis:
		return "diagnosis"
	case Procedure:
		return "procedure"
	}
	return fmt.Sprintf("RecordType(%d)", uint8(t))
}

// Valid reports whether t is one of the declared record types.
func (t RecordType) Valid() bool {
	return t >= LabResult && t <= Procedure
}

// ParseRecordType maps an enum label back to its RecordType.
func ParseRecordType(s string) (RecordType, error) {
	for _, t := range AllRecordTypes {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown record type %q", s)
}
