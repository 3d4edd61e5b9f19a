package generate

import (
	"fmt"

	"github.com/gyeh/medseed/internal/model"
	"github.com/gyeh/medseed/internal/synth"
)

// Payload synthesizes the data body for a record of type rt.
func Payload(s *synth.Synthesizer, rt model.RecordType) (model.Payload, error) {
	switch rt {
	case model.LabResult:
		return labResult(s), nil
	case model.Prescription:
		return prescription(s), nil
	case model.Diagnosis:
		return diagnosis(s), nil
	case model.Procedure:
		return procedure(s), nil
	}
	return nil, fmt.Errorf("synthesize payload: unknown record type %d", rt)
}

func labResult(s *synth.Synthesizer) model.LabResultPayload {
	name, unit := s.LabTest()
	return model.LabResultPayload{
		TestName:       name,
		ResultValue:    s.Float(0, 100, 0.1),
		Unit:           unit,
		ReferenceRange: fmt.Sprintf("%.1f - %.1f", s.Float(0, 50, 0.1), s.Float(51, 100, 0.1)),
		IsAbnormal:     s.Bool(),
	}
}

func prescription(s *synth.Synthesizer) model.PrescriptionPayload {
	return model.PrescriptionPayload{
		MedicationName: s.Medication(),
		Dosage:         fmt.Sprintf("%dmg", s.Int(1, 1000)),
		Frequency:      fmt.Sprintf("%d times daily", s.Int(1, 4)),
		DurationDays:   s.Int(1, 90),
		Refills:        s.Int(0, 3),
	}
}

func diagnosis(s *synth.Synthesizer) model.DiagnosisPayload {
	return model.DiagnosisPayload{
		Condition: s.DiagnosisCode(),
		Severity:  synth.Choice(s, model.Severities),
		Notes:     s.Sentence(),
		IsChronic: s.Bool(),
	}
}

func procedure(s *synth.Synthesizer) model.ProcedurePayload {
	return model.ProcedurePayload{
		ProcedureName:    s.ProcedureName(),
		DurationMinutes:  s.Int(15, 240),
		Outcome:          synth.Choice(s, model.Outcomes),
		Complications:    synth.Choice(s, model.Complications),
		FollowUpRequired: s.Bool(),
	}
}
