package study

// Patient is a study participant. Visits and samples attach to a patient.
// Age and Gender are nullable columns; nil is stored as NULL.
type Patient struct {
	ID             int64   `json:"patient_id"`
	FullName       string  `json:"full_name"`
	Age            *int64  `json:"age"`
	Gender         *Gender `json:"gender"`
	EnrollmentDate string  `json:"enrollment_date"`
}

// Visit is a dated clinical encounter recording vital measurements.
type Visit struct {
	ID           int64    `json:"visit_id"`
	PatientID    int64    `json:"patient_id"`
	VisitDate    string   `json:"visit_date"`
	SystolicBP   *int64   `json:"systolic_bp,omitempty"`
	DiastolicBP  *int64   `json:"diastolic_bp,omitempty"`
	BloodGlucose *float64 `json:"blood_glucose_mmol_l,omitempty"` // mmol/L
	Notes        *string  `json:"notes,omitempty"`
}

// Sample is a biological specimen tracked to a storage location.
type Sample struct {
	ID              int64      `json:"sample_id"`
	PatientID       int64      `json:"patient_id"`
	CollectionDate  string     `json:"collection_date"`
	SampleType      SampleType `json:"sample_type"`
	StorageLocation *string    `json:"storage_location,omitempty"`
}

// PatientSummary is one row of the patient roster report.
type PatientSummary struct {
	FullName       string `json:"full_name"`
	Age            *int64 `json:"age"`
	EnrollmentDate string `json:"enrollment_date"`
}

// VisitReading is one row of the per-patient visit report.
type VisitReading struct {
	FullName    string `json:"full_name"`
	VisitDate   string `json:"visit_date"`
	SystolicBP  *int64 `json:"systolic_bp"`
	DiastolicBP *int64 `json:"diastolic_bp"`
}
