package cli

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tessellated/extstore/internal/engine"
	"github.com/tessellated/extstore/internal/value"
)

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <extension-id> [key-spec]",
		Short: "Read keys from an extension's storage area",
		Long: `Read keys from an extension's storage area.

With no key spec (or an explicit null), the entire stored object is
returned. Otherwise the key spec selects what to read:

  a string              one key
  an array of strings   those keys, in order
  an object             its keys, with each property value used as the
                        default when the key is absent from storage

Keys absent from storage with no default are omitted from the result.

Examples:
  extstore get my-extension
  extstore get my-extension '"theme"'
  extstore get my-extension '["theme","fontSize"]'
  extstore get my-extension '{"theme":"light"}'`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			spec := ""
			if len(args) == 2 {
				spec = args[1]
			}
			return runGet(rootOpts, cmd, args[0], spec)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, cmd *cobra.Command, extID, spec string) error {
	var keySpec value.Value
	if spec != "" {
		var err error
		keySpec, err = parseJSONArg("key-spec", spec)
		if err != nil {
			return err
		}
	}

	st, err := openStore(opts)
	if err != nil {
		return err
	}
	defer st.Close()

	f := newFormatter(opts, cmd)

	result, err := engine.Get(context.Background(), st, extID, keySpec)
	if err != nil {
		return WrapExitError(ExitCommandError, "get failed", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to encode result", err)
	}
	return f.Success(data)
}
