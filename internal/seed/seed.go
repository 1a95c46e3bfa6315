// Package seed loads and validates the datasets used to reset the study
// datastore.
//
// Datasets are YAML documents (see dataset.yaml for the fixed demo data).
// Before a dataset reaches the store it is checked against the CUE
// definitions in dataset.cue, which mirror the column constraints of the
// schema, so a bad file is rejected without touching the database.
package seed

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/biostudy/internal/study"
)

//go:embed dataset.yaml
var defaultYAML []byte

//go:embed dataset.cue
var schemaCUE string

// Default returns the fixed demo dataset: 3 patients, 4 visits, 5 samples.
func Default() (study.Dataset, error) {
	ds, err := Parse(defaultYAML)
	if err != nil {
		return study.Dataset{}, fmt.Errorf("default dataset: %w", err)
	}
	return ds, nil
}

// LoadFile reads, parses and validates a dataset YAML file.
func LoadFile(path string) (study.Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return study.Dataset{}, fmt.Errorf("failed to read dataset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a dataset from YAML, normalizes patient names and validates
// the result. Unknown fields are rejected.
func Parse(data []byte) (study.Dataset, error) {
	var ds study.Dataset
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&ds); err != nil {
		return study.Dataset{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range ds.Patients {
		ds.Patients[i].FullName = study.NormalizeName(ds.Patients[i].FullName)
	}

	if err := Validate(ds); err != nil {
		return study.Dataset{}, err
	}
	return ds, nil
}

// Validate verifies that every visit and sample names a patient in the
// dataset, then checks ds against the CUE dataset definition.
func Validate(ds study.Dataset) error {
	n := len(ds.Patients)
	for i, v := range ds.Visits {
		if err := checkOwner(fmt.Sprintf("visits[%d]", i), v.Patient, n); err != nil {
			return err
		}
	}
	for i, s := range ds.Samples {
		if err := checkOwner(fmt.Sprintf("samples[%d]", i), s.Patient, n); err != nil {
			return err
		}
	}

	// nil slices encode as null, which does not unify with a list.
	if ds.Patients == nil {
		ds.Patients = []study.PatientSeed{}
	}
	if ds.Visits == nil {
		ds.Visits = []study.VisitSeed{}
	}
	if ds.Samples == nil {
		ds.Samples = []study.SampleSeed{}
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("dataset.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile dataset schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Dataset"))
	value := def.Unify(ctx.Encode(ds))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{Message: err.Error(), Err: err}
	}

	return nil
}

// checkOwner rejects a missing or out-of-range patient index.
func checkOwner(path string, index *int, patients int) error {
	if index == nil {
		return &ValidationError{Message: path + ": patient is required"}
	}
	if *index < 0 || *index >= patients {
		return &ValidationError{Message: fmt.Sprintf("%s: patient index %d out of range (%d patients)", path, *index, patients)}
	}
	return nil
}

// ValidationError reports a dataset that does not satisfy the schema.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return "invalid dataset: " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
