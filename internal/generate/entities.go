// Package generate turns synthesized values into entity rows. Generators
// never touch the sink; callers load the rows and feed the identifiers the
// sink assigned back in as IDSets for the next stage.
package generate

import (
	"fmt"
	"time"

	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/seederr"
	"github.com/gyeh/medseed/internal/synth"
)

var (
	BirthDateMin  = time.Date(1940, 1, 1, 0, 0, 0, 0, time.UTC)
	BirthDateMax  = time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)
	RecordDateMin = time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
)

// Facilities generates n facilities.
func Facilities(s *synth.Synthesizer, n int) []model.Facility {
	out := make([]model.Facility, n)
	for i := range out {
		out[i] = model.Facility{
			Name:    s.CompanyName() + " Medical Center",
			Address: s.Address(),
		}
	}
	return out
}

// Departments generates n departments. The i-th department gets the i-th
// catalog name; asking for more departments than the catalog holds is a
// configuration error.
func Departments(s *synth.Synthesizer, n int, facilities IDSet) ([]model.Department, error) {
	if n > len(model.DepartmentNames) {
		return nil, seederr.Configf("departments: requested %d, catalog has %d names", n, len(model.DepartmentNames))
	}
	if err := requireParents("departments", "facilities", n, facilities); err != nil {
		return nil, err
	}
	out := make([]model.Department, n)
	for i := range out {
		out[i] = model.Department{
			FacilityID: synth.Choice(s, facilities),
			Name:       model.DepartmentNames[i],
		}
	}
	return out, nil
}

// Providers generates n providers attached to random departments.
func Providers(s *synth.Synthesizer, n int, departments IDSet) ([]model.Provider, error) {
	if err := requireParents("providers", "departments", n, departments); err != nil {
		return nil, err
	}
	out := make([]model.Provider, n)
	for i := range out {
		first, last := s.PersonName()
		out[i] = model.Provider{
			DepartmentID: synth.Choice(s, departments),
			FirstName:    first,
			LastName:     last,
			Specialty:    synth.Choice(s, model.Specialties),
		}
	}
	return out, nil
}

// Patients generates n patients born between 1940-01-01 and 2005-12-31.
func Patients(s *synth.Synthesizer, n int) []model.Patient {
	out := make([]model.Patient, n)
	for i := range out {
		first, last := s.PersonName()
		dob := s.Date(BirthDateMin, BirthDateMax)
		out[i] = model.Patient{
			FirstName:   first,
			LastName:    last,
			DateOfBirth: time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC),
			Gender:      s.Gender(),
		}
	}
	return out
}

// Refs holds the parent identifiers a medical record may point at.
type Refs struct {
	Providers   IDSet
	Facilities  IDSet
	Departments IDSet
}

// Validate checks that every parent set is non-empty.
func (r Refs) Validate() error {
	if err := requireParents("medical records", "providers", 1, r.Providers); err != nil {
		return err
	}
	if err := requireParents("medical records", "facilities", 1, r.Facilities); err != nil {
		return err
	}
	return requireParents("medical records", "departments", 1, r.Departments)
}

// MedicalRecords generates n records for one patient, dated between
// 2019-01-01 and now. Each record carries its payload already serialized.
func MedicalRecords(s *synth.Synthesizer, patientID int64, n int, refs Refs, now time.Time) ([]model.MedicalRecord, error) {
	if n > 0 {
		if err := refs.Validate(); err != nil {
			return nil, err
		}
	}
	out := make([]model.MedicalRecord, n)
	for i := range out {
		rt := synth.Choice(s, model.AllRecordTypes)
		p, err := Payload(s, rt)
		if err != nil {
			return nil, err
		}
		data, err := model.MarshalPayload(p)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", rt, err)
		}
		out[i] = model.MedicalRecord{
			PatientID:    patientID,
			ProviderID:   synth.Choice(s, refs.Providers),
			FacilityID:   synth.Choice(s, refs.Facilities),
			DepartmentID: synth.Choice(s, refs.Departments),
			Type:         rt,
			RecordDate:   s.Date(RecordDateMin, now),
			Description:  s.Sentence(),
			Status:       synth.Choice(s, model.RecordStatuses),
			Payload:      p,
			Data:         data,
		}
	}
	return out, nil
}

func requireParents(child, parent string, n int, ids IDSet) error {
	if n > 0 && ids.Len() == 0 {
		return seederr.Configf("%s: no %s to reference", child, parent)
	}
	return nil
}
