package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/biostudy/internal/store"
)

// StatusResult is the JSON payload of the status command.
type StatusResult struct {
	Database string            `json:"database"`
	Counts   store.TableCounts `json:"counts"`
	Orphans  int64             `json:"orphans"`
}

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show row counts and referential integrity",
		Long: `Show the number of rows in each table and the number of visits and
samples whose patient no longer exists (always 0 while foreign keys are
enforced).

Example:
  biostudy status --db ./biomed_study.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	counts, err := st.Counts(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to count rows", err)
	}
	orphans, err := st.OrphanCount(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to count orphans", err)
	}

	result := StatusResult{Database: opts.Database, Counts: counts, Orphans: orphans}
	if opts.Format == "json" {
		f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return f.Success(result)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Database: %s\n", result.Database)
	fmt.Fprintf(w, "Patients: %d\n", counts.Patients)
	fmt.Fprintf(w, "Clinical_Visits: %d\n", counts.Visits)
	fmt.Fprintf(w, "Samples: %d\n", counts.Samples)
	fmt.Fprintf(w, "Orphans: %d\n", orphans)
	return nil
}
