package synth

type labTest struct {
	Name string
	Unit string
}

var labTests = []labTest{
	{"Glucose", "mg/dL"},
	{"Hemoglobin", "g/dL"},
	{"Hemoglobin A1c", "%"},
	{"Total Cholesterol", "mg/dL"},
	{"Triglycerides", "mg/dL"},
	{"Creatinine", "mg/dL"},
	{"Sodium", "mmol/L"},
	{"Potassium", "mmol/L"},
	{"Calcium", "mg/dL"},
	{"Magnesium", "mg/dL"},
	{"Iron", "ug/dL"},
	{"Zinc", "ug/dL"},
	{"Oxygen saturation", "%"},
	{"Thyroid stimulating hormone", "mIU/L"},
	{"Vitamin D", "ng/mL"},
	{"Platelet count", "10^3/uL"},
}

var medications = []string{
	"Metformin",
	"Lisinopril",
	"Atorvastatin",
	"Omeprazole",
	"Amoxicillin",
	"Levothyroxine",
	"Amlodipine",
	"Hydrochlorothiazide",
	"Sertraline",
	"Albuterol",
	"Losartan",
	"Gabapentin",
	"Acetaminophen",
	"Montelukast",
	"Furosemide",
	"Prednisone",
}

// ICD-10-CM codes.
var diagnosisCodes = []string{
	"E11.9", "I10", "J45.909", "E78.5", "J06.9", "M54.5", "F32.9",
	"K21.0", "N39.0", "J20.9", "E03.9", "G43.909", "R05.9", "L30.9",
	"K58.9", "G47.00", "J30.9", "M25.50", "R10.9", "E55.9",
}

var procedureNames = []string{
	"Office or outpatient visit, established patient, low complexity",
	"Radiologic examination, chest, 2 views",
	"Comprehensive metabolic panel",
	"Complete blood count with differential",
	"Electrocardiogram, routine ECG",
	"Venipuncture, routine",
	"Psychotherapy, 60 minutes",
	"Urinalysis, automated, with microscopy",
	"Colonoscopy, flexible, diagnostic",
	"Arthroscopy, knee, surgical",
	"Cataract removal with intraocular lens insertion",
	"Laparoscopic cholecystectomy",
	"Upper gastrointestinal endoscopy",
	"Magnetic resonance imaging, brain, without contrast",
}

// LabTest returns a test name with the unit it is reported in.
func (s *Synthesizer) LabTest() (name, unit string) {
	t := Choice(s, labTests)
	return t.Name, t.Unit
}

// Medication returns a medication name.
func (s *Synthesizer) Medication() string {
	return Choice(s, medications)
}

// DiagnosisCode returns an ICD-10-CM code.
func (s *Synthesizer) DiagnosisCode() string {
	return Choice(s, diagnosisCodes)
}

// ProcedureName returns a procedure description.
func (s *Synthesizer) ProcedureName() string {
	return Choice(s, procedureNames)
}
