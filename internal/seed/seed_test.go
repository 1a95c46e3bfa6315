package seed

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/biostudy/internal/study"
)

func TestDefault_Shape(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	require.Len(t, ds.Patients, 3)
	require.Len(t, ds.Visits, 4)
	require.Len(t, ds.Samples, 5)

	assert.Equal(t, "Alice Brown", ds.Patients[0].FullName)
	assert.Equal(t, study.GenderFemale, ds.Patients[0].Gender)
	assert.Equal(t, int64(45), ds.Patients[0].Age)
	assert.Equal(t, "2025-01-10", ds.Patients[0].EnrollmentDate)

	require.NotNil(t, ds.Visits[0].Patient)
	assert.Equal(t, 0, *ds.Visits[0].Patient)
	require.NotNil(t, ds.Visits[0].SystolicBP)
	assert.Equal(t, int64(150), *ds.Visits[0].SystolicBP)
	require.NotNil(t, ds.Visits[0].BloodGlucose)
	assert.InDelta(t, 8.2, *ds.Visits[0].BloodGlucose, 1e-9)

	assert.Equal(t, study.SampleBlood, ds.Samples[4].SampleType)
	require.NotNil(t, ds.Samples[4].Patient)
	assert.Equal(t, 1, *ds.Samples[4].Patient)
	require.NotNil(t, ds.Samples[4].StorageLocation)
	assert.Equal(t, "Biobank Rack 2", *ds.Samples[4].StorageLocation)
}

func TestParse_NormalizesNames(t *testing.T) {
	src := []byte(`
patients:
  - full_name: "  Jose\u0301 Garci\u0301a "
    age: 40
    gender: Male
    enrollment_date: "2025-04-01"
`)
	ds, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "Jos\u00e9 Garc\u00eda", ds.Patients[0].FullName)
	assert.Empty(t, ds.Visits)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	src := []byte(`
patients:
  - full_name: Alice Brown
    age: 45
    gender: Female
    enrollment_date: "2025-01-10"
    blood_type: O+
`)
	_, err := Parse(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidate_Constraints(t *testing.T) {
	valid := func() study.Dataset {
		return study.Dataset{
			Patients: []study.PatientSeed{{FullName: "A", Age: 30, Gender: study.GenderOther, EnrollmentDate: "2025-01-01"}},
			Visits:   []study.VisitSeed{{Patient: index(0), VisitDate: "2025-01-02"}},
			Samples:  []study.SampleSeed{{Patient: index(0), CollectionDate: "2025-01-02", SampleType: study.SampleUrine}},
		}
	}

	tests := []struct {
		name   string
		mutate func(*study.Dataset)
	}{
		{"age below range", func(ds *study.Dataset) { ds.Patients[0].Age = 17 }},
		{"age above range", func(ds *study.Dataset) { ds.Patients[0].Age = 91 }},
		{"unknown gender", func(ds *study.Dataset) { ds.Patients[0].Gender = "Unknown" }},
		{"empty name", func(ds *study.Dataset) { ds.Patients[0].FullName = "" }},
		{"bad enrollment date", func(ds *study.Dataset) { ds.Patients[0].EnrollmentDate = "10/01/2025" }},
		{"unknown sample type", func(ds *study.Dataset) { ds.Samples[0].SampleType = "Saliva" }},
		{"visit patient out of range", func(ds *study.Dataset) { ds.Visits[0].Patient = index(1) }},
		{"sample patient out of range", func(ds *study.Dataset) { ds.Samples[0].Patient = index(5) }},
		{"negative patient index", func(ds *study.Dataset) { ds.Visits[0].Patient = index(-1) }},
		{"visit without patient", func(ds *study.Dataset) { ds.Visits[0].Patient = nil }},
		{"sample without patient", func(ds *study.Dataset) { ds.Samples[0].Patient = nil }},
	}

	require.NoError(t, Validate(valid()))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := valid()
			tt.mutate(&ds)

			err := Validate(ds)
			require.Error(t, err)
			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr), "expected ValidationError, got %T", err)
		})
	}
}

func TestParse_RejectsVisitWithoutPatient(t *testing.T) {
	src := []byte(`
patients:
  - full_name: Alice Brown
    age: 45
    gender: Female
    enrollment_date: "2025-01-10"
visits:
  - visit_date: "2025-02-02"
    systolic_bp: 150
`)
	_, err := Parse(src)
	require.Error(t, err)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %T", err)
	assert.Contains(t, err.Error(), "visits[0]: patient is required")
}

func TestParse_RejectsSampleWithoutPatient(t *testing.T) {
	src := []byte(`
patients:
  - full_name: Alice Brown
    age: 45
    gender: Female
    enrollment_date: "2025-01-10"
samples:
  - collection_date: "2025-02-02"
    sample_type: Blood
`)
	_, err := Parse(src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "samples[0]: patient is required")
}

func TestValidate_AgeBoundsInclusive(t *testing.T) {
	for _, age := range []int64{study.MinAge, study.MaxAge} {
		ds := study.Dataset{
			Patients: []study.PatientSeed{{FullName: "Edge", Age: age, Gender: study.GenderFemale, EnrollmentDate: "2025-01-01"}},
		}
		assert.NoError(t, Validate(ds), "age %d", age)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, defaultYAML, 0644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, ds.Patients, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read dataset file")
}

func index(i int) *int { return &i }
