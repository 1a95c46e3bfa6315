package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// UpdateSampleOptions holds flags for the update-sample command.
type UpdateSampleOptions struct {
	*RootOptions
	SampleID int64
	Location string
}

// DeletePatientOptions holds flags for the delete-patient command.
type DeletePatientOptions struct {
	*RootOptions
	PatientID int64
}

// MutationResult is the JSON payload of update-sample and delete-patient.
type MutationResult struct {
	ID           int64 `json:"id"`
	RowsAffected int64 `json:"rows_affected"`
}

// NewUpdateSampleCommand creates the update-sample command.
func NewUpdateSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UpdateSampleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "update-sample",
		Short: "Change a sample's storage location",
		Long: `Set the storage location of one sample. An identity that matches no
sample is not an error; zero rows are reported.

Example:
  biostudy update-sample --id 1 --location "Biobank Rack 9"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdateSample(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.SampleID, "id", 0, "sample identity (required)")
	_ = cmd.MarkFlagRequired("id")
	cmd.Flags().StringVar(&opts.Location, "location", "", "new storage location (required)")
	_ = cmd.MarkFlagRequired("location")

	return cmd
}

// NewDeletePatientCommand creates the delete-patient command.
func NewDeletePatientCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeletePatientOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "delete-patient",
		Short: "Delete a patient and, by cascade, their visits and samples",
		Long: `Delete one patient. SQLite cascades the delete to every clinical
visit and sample of that patient. An identity that matches no patient is
not an error; zero rows are reported.

Example:
  biostudy delete-patient --id 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeletePatient(opts, cmd)
		},
	}

	cmd.Flags().Int64Var(&opts.PatientID, "id", 0, "patient identity (required)")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runUpdateSample(opts *UpdateSampleOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	n, err := st.UpdateSampleLocation(ctx, opts.SampleID, opts.Location)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to update sample location", err)
	}
	slog.Info("sample relocated", "sample_id", opts.SampleID, "location", opts.Location, "rows", n)

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(MutationResult{ID: opts.SampleID, RowsAffected: n})
	}
	writeSampleUpdate(cmd.OutOrStdout(), opts.SampleID, opts.Location, n)
	return nil
}

func runDeletePatient(opts *DeletePatientOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	n, err := st.DeletePatient(ctx, opts.PatientID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to delete patient", err)
	}
	slog.Info("patient deleted", "patient_id", opts.PatientID, "rows", n)

	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(MutationResult{ID: opts.PatientID, RowsAffected: n})
	}
	writePatientDelete(cmd.OutOrStdout(), opts.PatientID, n)
	return nil
}
