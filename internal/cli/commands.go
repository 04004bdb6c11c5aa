package cli

import (
	"github.com/spf13/cobra"

	"github.com/tessellated/extstore/internal/store"
	"github.com/tessellated/extstore/internal/value"
)

// openStore opens the record store behind --db.
func openStore(opts *RootOptions) (*store.Store, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// newFormatter builds an OutputFormatter bound to the command's writers.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// parseJSONArg parses a command-line JSON argument.
func parseJSONArg(what, src string) (value.Value, error) {
	v, err := value.Parse([]byte(src))
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid "+what+" JSON", err)
	}
	return v, nil
}
