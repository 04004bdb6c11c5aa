package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tessellated/extstore/internal/engine"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <extension-id>",
		Short: "Discard an extension's entire storage area",
		Long: `Discard an extension's entire storage area.

Unlike removing every key, clear deletes the record itself. The printed
change set holds one entry per key that existed.

Example:
  extstore clear my-extension`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runClear(opts *RootOptions, cmd *cobra.Command, extID string) error {
	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	f := newFormatter(opts, cmd)

	changes, err := engine.Clear(context.Background(), st, extID)
	if err != nil {
		return WrapExitError(ExitCommandError, "clear failed", err)
	}

	data, err := json.Marshal(changes)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode change set", err)
	}
	return f.Success(data)
}
