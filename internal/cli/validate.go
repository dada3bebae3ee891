package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vantage-sim/vantage/internal/schema"
	"github.com/vantage-sim/vantage/internal/view"
)

// ValidateResult is the validate command's output payload.
type ValidateResult struct {
	Kind     string   `json:"kind"`
	Valid    bool     `json:"valid"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command: check one raw
// payload file against a view kind, or sniff the kind when none is
// given.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "validate <payload-file>",
		Short: "Validate a raw view payload",
		Long: `Validate runs a payload file through the same shape gate and per-kind
validator the projector uses. Without --kind the payload's structure is
sniffed; payloads that sniff to nothing must name their kind.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], kindName, cmd)
		},
	}

	cmd.Flags().StringVar(&kindName, "kind", "", "view kind (graph|space2d|table|text|structure)")
	return cmd
}

func runValidate(opts *RootOptions, path, kindName string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return formatter.EmitError(ExitCommandError, fmt.Sprintf("read payload: %v", err))
	}

	kind := view.KindFromString(kindName)
	if kind == view.KindNone {
		if kindName != "" {
			return formatter.EmitError(ExitCommandError, fmt.Sprintf("unknown view kind %q", kindName))
		}
		kind = schema.Sniff(raw)
		if kind == view.KindNone {
			return formatter.EmitError(ExitFailure, "payload structure matches no view kind; pass --kind")
		}
		formatter.Verbosef("sniffed kind: %s", kind)
	}

	gate, err := schema.NewGate()
	if err != nil {
		return formatter.EmitError(ExitCommandError, fmt.Sprintf("compile shapes: %v", err))
	}

	result := ValidateResult{Kind: kind.String()}
	if err := gate.Check(kind, raw); err != nil {
		result.Error = err.Error()
		_ = formatter.Emit(result, fmt.Sprintf("%s: INVALID shape\n%s", kind, err))
		return &ExitError{Code: ExitFailure, Message: "payload shape rejected"}
	}

	_, warns, err := view.Parse(kind, raw)
	result.Warnings = warns
	if err != nil {
		result.Error = err.Error()
		_ = formatter.Emit(result, fmt.Sprintf("%s: INVALID\n%s", kind, err))
		return &ExitError{Code: ExitFailure, Message: "payload rejected"}
	}

	result.Valid = true
	text := fmt.Sprintf("%s: valid", kind)
	for _, w := range warns {
		text += "\nwarning: " + w
	}
	return formatter.Emit(result, text)
}
