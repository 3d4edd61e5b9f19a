package model

// DepartmentNames is the fixed department catalog. The i-th generated
// department takes the i-th name, so a run may not request more departments
// than there are entries.
var DepartmentNames = []string{
	"Cardiology",
	"Neurology",
	"Oncology",
	"Pediatrics",
	"Emergency",
	"Surgery",
	"Radiology",
	"Pathology",
	"Internal Medicine",
	"Orthopedics",
	"Psychiatry",
	"Dermatology",
	"Ophthalmology",
	"ENT",
	"Urology",
	"Gynecology",
	"Dental",
	"Physical Therapy",
	"Nutrition",
	"Pharmacy",
}

// Specialties is the provider specialty catalog.
var Specialties = []string{
	"Cardiologist",
	"Neurologist",
	"Oncologist",
	"Pediatrician",
	"Emergency Physician",
	"Surgeon",
	"Radiologist",
	"Pathologist",
	"Internist",
	"Orthopedist",
}

// RecordStatuses are the allowed medical_records.status values.
var RecordStatuses = []string{"Active", "Completed", "Cancelled", "Pending"}

var (
	Severities    = []string{"Mild", "Moderate", "Severe"}
	Outcomes      = []string{"Successful", "Partially Successful", "Incomplete"}
	Complications = []string{"None", "Minor", "Major"}
)
