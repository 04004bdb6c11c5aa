package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tessellated/extstore/internal/engine"
)

// NewSetCommand creates the set command.
func NewSetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <extension-id> <json-object>",
		Short: "Merge keys into an extension's storage area",
		Long: `Merge the keys of a JSON object into an extension's storage area.

Existing keys are replaced; other keys are untouched. The printed change set
maps each incoming key to its before/after values. A non-object value is
treated as an empty object and changes nothing.

Quota violations (TotalBytes, ItemBytes, MaxItems) abort the whole call:
nothing is persisted and the command exits with status 1.

Example:
  extstore set my-extension '{"theme":"dark","fontSize":14}'`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(rootOpts, cmd, args[0], args[1])
		},
	}

	return cmd
}

func runSet(opts *RootOptions, cmd *cobra.Command, extID, src string) error {
	val, err := parseJSONArg("value", src)
	if err != nil {
		return err
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	f := newFormatter(opts, cmd)
	f.VerboseLog("set %s on %q", src, extID)

	changes, err := engine.Set(context.Background(), st, extID, val)
	if engine.IsQuotaError(err) {
		_ = f.Error(string(engine.QuotaReasonOf(err)), err.Error())
		return WrapExitError(ExitQuotaFailure, "quota exceeded", err)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "set failed", err)
	}

	data, err := json.Marshal(changes)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode change set", err)
	}
	return f.Success(data)
}
