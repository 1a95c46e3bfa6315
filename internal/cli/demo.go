package cli

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/biostudy/internal/seed"
	"github.com/roach88/biostudy/internal/store"
	"github.com/roach88/biostudy/internal/study"
)

// Fixed demo parameters.
const (
	demoThreshold = 140
	demoLocation  = "Biobank Rack 9"
)

// DemoOptions holds flags for the default (demo) command.
type DemoOptions struct {
	*RootOptions
	SeedFile string
}

// DemoReport is the JSON payload of a demo run.
type DemoReport struct {
	RunID            string                 `json:"run_id"`
	Seed             store.SeedResult       `json:"seed"`
	Patients         []study.PatientSummary `json:"patients"`
	VisitsPatientID  int64                  `json:"visits_patient_id,omitempty"`
	Visits           []study.VisitReading   `json:"visits"`
	Threshold        int64                  `json:"threshold"`
	Hypertensive     []string               `json:"hypertensive"`
	UpdatedSampleID  int64                  `json:"updated_sample_id,omitempty"`
	SampleLocation   string                 `json:"sample_location,omitempty"`
	SamplesUpdated   int64                  `json:"samples_updated"`
	DeletedPatientID int64                  `json:"deleted_patient_id,omitempty"`
	PatientsDeleted  int64                  `json:"patients_deleted"`
}

// runDemo performs the fixed sequence: ensure schema, reset and reseed,
// three reports, relocate the first seeded sample, delete the third seeded
// patient. In text mode each section is printed as soon as it completes.
func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	runID := uuid.Must(uuid.NewV7()).String()
	log := slog.With("run_id", runID)
	text := opts.Format != "json"
	w := cmd.OutOrStdout()
	f := &OutputFormatter{Format: opts.Format, Writer: w, ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	ds, err := loadDataset(f, opts.SeedFile)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	report := DemoReport{RunID: runID, Threshold: demoThreshold}

	log.Info("resetting sample data", "db", opts.Database)
	report.Seed, err = st.ResetSampleData(ctx, ds)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to reset sample data", err)
	}
	log.Info("sample data reset",
		"patients", len(report.Seed.PatientIDs),
		"visits", len(report.Seed.VisitIDs),
		"samples", len(report.Seed.SampleIDs),
	)
	f.VerboseLog("Seeded patient ids %v", report.Seed.PatientIDs)

	report.Patients, err = st.ListPatients(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list patients", err)
	}
	if text {
		writePatients(w, report.Patients)
	}

	report.Visits = []study.VisitReading{}
	if id, ok := nthID(report.Seed.PatientIDs, 0); ok {
		report.VisitsPatientID = id
		report.Visits, err = st.VisitsForPatient(ctx, id)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to list visits", err)
		}
		if text {
			fmt.Fprintln(w)
			writeVisits(w, id, report.Visits)
		}
	} else {
		log.Warn("dataset has no patients, skipping visit report")
	}

	report.Hypertensive, err = st.PatientsAboveSystolic(ctx, demoThreshold)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list hypertensive patients", err)
	}
	if text {
		fmt.Fprintln(w)
		writeHypertensive(w, demoThreshold, report.Hypertensive)
	}

	if text {
		fmt.Fprintln(w)
	}

	if id, ok := nthID(report.Seed.SampleIDs, 0); ok {
		report.UpdatedSampleID = id
		report.SampleLocation = demoLocation
		report.SamplesUpdated, err = st.UpdateSampleLocation(ctx, id, demoLocation)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to update sample location", err)
		}
		log.Info("sample relocated", "sample_id", id, "location", demoLocation, "rows", report.SamplesUpdated)
		if text {
			writeSampleUpdate(w, id, demoLocation, report.SamplesUpdated)
		}
	} else {
		log.Warn("dataset has no samples, skipping update")
	}

	if id, ok := nthID(report.Seed.PatientIDs, 2); ok {
		report.DeletedPatientID = id
		report.PatientsDeleted, err = st.DeletePatient(ctx, id)
		if err != nil {
			return WrapExitError(ExitFailure, "failed to delete patient", err)
		}
		log.Info("patient deleted", "patient_id", id, "rows", report.PatientsDeleted)
		if text {
			writePatientDelete(w, id, report.PatientsDeleted)
		}
	} else {
		log.Warn("dataset has fewer than 3 patients, skipping delete")
	}

	log.Info("demo complete")

	if !text {
		return f.Success(report)
	}
	return nil
}

// loadDataset returns the dataset in path, or the built-in one if path is empty.
func loadDataset(f *OutputFormatter, path string) (study.Dataset, error) {
	var (
		ds  study.Dataset
		err error
	)
	source := "built-in"
	if path == "" {
		ds, err = seed.Default()
	} else {
		source = path
		slog.Debug("loading dataset", "path", path)
		ds, err = seed.LoadFile(path)
	}
	if err != nil {
		return study.Dataset{}, WrapExitError(ExitFailure, "failed to load dataset", err)
	}
	f.VerboseLog("Loaded dataset %s: %d patients, %d visits, %d samples",
		source, len(ds.Patients), len(ds.Visits), len(ds.Samples))
	return ds, nil
}

// nthID returns ids[i] if present.
func nthID(ids []int64, i int) (int64, bool) {
	if i < 0 || i >= len(ids) {
		return 0, false
	}
	return ids[i], true
}
