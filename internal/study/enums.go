package study

// Gender is the enumerated gender column of Patients.
// The Patients CHECK constraint accepts exactly these values.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// SampleType is the enumerated specimen kind of Samples.
// The Samples CHECK constraint accepts exactly these values.
type SampleType string

const (
	SampleBlood  SampleType = "Blood"
	SampleSerum  SampleType = "Serum"
	SamplePlasma SampleType = "Plasma"
	SampleUrine  SampleType = "Urine"
)

// Age bounds enforced by the Patients CHECK constraint, both inclusive.
const (
	MinAge = 18
	MaxAge = 90
)
