package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tessellated/extstore/internal/engine"
)

// NewRemoveCommand creates the remove command.
func NewRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <extension-id> <key-spec>",
		Short: "Remove keys from an extension's storage area",
		Long: `Remove keys from an extension's storage area.

The key spec takes the same shapes as get (string, array of strings, or
object - defaults in an object spec are ignored). Only keys actually present
are removed and reported; removing the last key leaves an empty storage
area, it does not discard it.

Example:
  extstore remove my-extension '["theme","fontSize"]'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runRemove(opts *RootOptions, cmd *cobra.Command, extID, spec string) error {
	keySpec, err := parseJSONArg("key-spec", spec)
	if err != nil {
		return err
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	f := newFormatter(opts, cmd)

	changes, err := engine.Remove(context.Background(), st, extID, keySpec)
	if err != nil {
		return WrapExitError(ExitCommandError, "remove failed", err)
	}

	data, err := json.Marshal(changes)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode change set", err)
	}
	return f.Success(data)
}
