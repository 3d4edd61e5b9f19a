package seed

// State is a position in the seeding state machine. A run moves forward one
// state per completed stage and ends in Finished or Failed.
type State int

const (
	Idle State = iota
	SchemaReady
	FacilitiesDone
	DepartmentsDone
	ProvidersDone
	PatientsDone
	RecordsDone
	Finished
	Failed
)

var stateNames = [...]string{
	Idle:            "idle",
	SchemaReady:     "schema_ready",
	FacilitiesDone:  "facilities_done",
	DepartmentsDone: "departments_done",
	ProvidersDone:   "providers_done",
	PatientsDone:    "patients_done",
	RecordsDone:     "records_done",
	Finished:        "finished",
	Failed:          "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Finished || s == Failed
}

// next returns the state that follows s on success.
func (s State) next() State {
	if s.Terminal() || s == RecordsDone {
		return Finished
	}
	return s + 1
}
