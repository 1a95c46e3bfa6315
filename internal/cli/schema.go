package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// SchemaResult is the JSON payload of the schema command.
type SchemaResult struct {
	Database      string `json:"database"`
	SchemaVersion int    `json:"schema_version"`
}

// NewSchemaCommand creates the schema command.
func NewSchemaCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the study tables if missing",
		Long: `Create the Patients, Clinical_Visits and Samples tables if they do
not already exist. Existing tables and rows are left untouched.

Example:
  biostudy schema --db ./biomed_study.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(rootOpts, cmd)
		},
	}
}

func runSchema(opts *RootOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)

	st, err := openStore(ctx, opts)
	if err != nil {
		return err
	}
	defer closeStore(st)

	version, err := st.SchemaVersion(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read schema version", err)
	}
	slog.Info("schema ready", "db", opts.Database, "version", version)

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return f.Success(SchemaResult{Database: opts.Database, SchemaVersion: version})
	}
	return f.Success(fmt.Sprintf("Schema ready (version %d)", version))
}
