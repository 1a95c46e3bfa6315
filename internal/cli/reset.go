package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// ResetOptions holds flags for the reset command.
type ResetOptions struct {
	*RootOptions
	SeedFile string
}

// NewResetCommand creates the reset command.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResetOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all rows and reseed the sample dataset",
		Long: `Delete every row from Samples, Clinical_Visits and Patients, then
insert the sample dataset in a single transaction.

This is destructive and intended for demo and test databases only.
Identities keep increasing across resets.

Examples:
  biostudy reset --db ./biomed_study.db
  biostudy reset --db ./scratch.db --seed ./my-dataset.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.SeedFile, "seed", "", "dataset YAML to reseed with (default: built-in dataset)")

	return cmd
}

func runReset(opts *ResetOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), ErrWriter: cmd.ErrOrStderr(), Verbose: opts.Verbose}

	ds, err := loadDataset(f, opts.SeedFile)
	if err != nil {
		return err
	}

	st, err := openStore(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer closeStore(st)

	res, err := st.ResetSampleData(ctx, ds)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to reset sample data", err)
	}
	slog.Info("sample data reset", "db", opts.Database,
		"patients", len(res.PatientIDs), "visits", len(res.VisitIDs), "samples", len(res.SampleIDs))
	f.VerboseLog("Seeded patient ids %v", res.PatientIDs)

	if opts.Format == "json" {
		return f.Success(res)
	}
	return f.Success(fmt.Sprintf("Reseeded %d patients, %d visits, %d samples",
		len(res.PatientIDs), len(res.VisitIDs), len(res.SampleIDs)))
}
