package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/biostudy/internal/store"
)

// openStore opens the database named by --db and ensures the schema.
// The caller must close the returned store with closeStore.
func openStore(ctx context.Context, opts *RootOptions) (*store.Store, error) {
	slog.Debug("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}

	if err := st.EnsureSchema(ctx); err != nil {
		st.Close()
		return nil, WrapExitError(ExitFailure, "failed to ensure schema", err)
	}
	slog.Debug("database ready", "path", opts.Database)
	return st, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// commandContext returns the command's context, or context.Background when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
