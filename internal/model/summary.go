package model

import "time"

// SeedSummary captures metrics from a single seeding run.
type SeedSummary struct {
	RunID           string
	Facilities      int64
	Departments     int64
	Providers       int64
	Patients        int64
	MedicalRecords  int64
	Chunks          int64
	DurationSchema  time.Duration
	DurationParents time.Duration
	DurationRecords time.Duration
	DurationTotal   time.Duration
}

// TopLevelRows is the number of non-record rows written.
func (s *SeedSummary) TopLevelRows() int64 {
	return s.Facilities + s.Departments + s.Providers + s.Patients
}
