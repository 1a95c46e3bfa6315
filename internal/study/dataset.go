package study

// Dataset is a batch of seed records. Visits and samples refer to their
// owning patient by zero-based index into Patients, since identities are
// only known once the patients have been written. The index is a pointer
// so that a record with no patient key can be told apart from index 0.
type Dataset struct {
	Patients []PatientSeed `yaml:"patients" json:"patients"`
	Visits   []VisitSeed   `yaml:"visits" json:"visits"`
	Samples  []SampleSeed  `yaml:"samples" json:"samples"`
}

// PatientSeed is a patient row before an identity is assigned.
type PatientSeed struct {
	FullName       string `yaml:"full_name" json:"full_name"`
	Age            int64  `yaml:"age" json:"age"`
	Gender         Gender `yaml:"gender" json:"gender"`
	EnrollmentDate string `yaml:"enrollment_date" json:"enrollment_date"`
}

// VisitSeed is a clinical visit row keyed by patient index.
type VisitSeed struct {
	Patient      *int     `yaml:"patient" json:"patient"`
	VisitDate    string   `yaml:"visit_date" json:"visit_date"`
	SystolicBP   *int64   `yaml:"systolic_bp,omitempty" json:"systolic_bp,omitempty"`
	DiastolicBP  *int64   `yaml:"diastolic_bp,omitempty" json:"diastolic_bp,omitempty"`
	BloodGlucose *float64 `yaml:"blood_glucose_mmol_l,omitempty" json:"blood_glucose_mmol_l,omitempty"`
	Notes        *string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// SampleSeed is a sample row keyed by patient index.
type SampleSeed struct {
	Patient         *int       `yaml:"patient" json:"patient"`
	CollectionDate  string     `yaml:"collection_date" json:"collection_date"`
	SampleType      SampleType `yaml:"sample_type" json:"sample_type"`
	StorageLocation *string    `yaml:"storage_location,omitempty" json:"storage_location,omitempty"`
}

// Patient converts the seed row to a Patient with the given identity.
func (p PatientSeed) Patient(id int64) Patient {
	age, gender := p.Age, p.Gender
	return Patient{
		ID:             id,
		FullName:       p.FullName,
		Age:            &age,
		Gender:         &gender,
		EnrollmentDate: p.EnrollmentDate,
	}
}

// Visit converts the seed row to a Visit owned by patientID.
func (v VisitSeed) Visit(patientID int64) Visit {
	return Visit{
		PatientID:    patientID,
		VisitDate:    v.VisitDate,
		SystolicBP:   v.SystolicBP,
		DiastolicBP:  v.DiastolicBP,
		BloodGlucose: v.BloodGlucose,
		Notes:        v.Notes,
	}
}

// Sample converts the seed row to a Sample owned by patientID.
func (s SampleSeed) Sample(patientID int64) Sample {
	return Sample{
		PatientID:       patientID,
		CollectionDate:  s.CollectionDate,
		SampleType:      s.SampleType,
		StorageLocation: s.StorageLocation,
	}
}
