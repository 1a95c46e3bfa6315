package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/biostudy/internal/study"
)

// ReportOptions holds flags for the report subcommands.
type ReportOptions struct {
	*RootOptions
	PatientID int64
	Threshold int64
}

// VisitsResult is the JSON payload of "report visits".
type VisitsResult struct {
	PatientID int64                `json:"patient_id"`
	Visits    []study.VisitReading `json:"visits"`
}

// HypertensiveResult is the JSON payload of "report hypertensive".
type HypertensiveResult struct {
	Threshold int64    `json:"threshold"`
	Names     []string `json:"names"`
}

// NewReportCommand creates the report command and its subcommands.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run a read-only report",
		Long: `Run one of the read-only reports against the study database.

Examples:
  biostudy report patients
  biostudy report visits --patient 1
  biostudy report hypertensive --threshold 140 --format json`,
	}

	patients := &cobra.Command{
		Use:           "patients",
		Short:         "List every patient's name, age and enrollment date",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportPatients(opts, cmd)
		},
	}

	visits := &cobra.Command{
		Use:           "visits",
		Short:         "List one patient's visits with blood pressure",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportVisits(opts, cmd)
		},
	}
	visits.Flags().Int64Var(&opts.PatientID, "patient", 0, "patient identity (required)")
	_ = visits.MarkFlagRequired("patient")

	hypertensive := &cobra.Command{
		Use:           "hypertensive",
		Short:         "List patients with any systolic reading above a threshold",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReportHypertensive(opts, cmd)
		},
	}
	hypertensive.Flags().Int64Var(&opts.Threshold, "threshold", demoThreshold, "systolic threshold in mmHg (exclusive)")

	cmd.AddCommand(patients, visits, hypertensive)
	return cmd
}

func runReportPatients(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	patients, err := st.ListPatients(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list patients", err)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(patients)
	}
	writePatients(cmd.OutOrStdout(), patients)
	return nil
}

func runReportVisits(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	visits, err := st.VisitsForPatient(ctx, opts.PatientID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list visits", err)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(VisitsResult{PatientID: opts.PatientID, Visits: visits})
	}
	writeVisits(cmd.OutOrStdout(), opts.PatientID, visits)
	return nil
}

func runReportHypertensive(opts *ReportOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	names, err := st.PatientsAboveSystolic(ctx, opts.Threshold)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list hypertensive patients", err)
	}

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(HypertensiveResult{Threshold: opts.Threshold, Names: names})
	}
	writeHypertensive(cmd.OutOrStdout(), opts.Threshold, names)
	return nil
}
