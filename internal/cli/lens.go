package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantage-sim/vantage/internal/lens"
)

// LensPresetInfo is the lens command's output payload.
type LensPresetInfo struct {
	ActiveID string                 `json:"activeId"`
	Presets  map[string]lens.Preset `json:"presets"`
}

// NewLensCommand creates the lens command group.
func NewLensCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lens",
		Short: "Inspect observation lens configuration",
	}
	cmd.AddCommand(newLensPresetsCommand(rootOpts))
	return cmd
}

// newLensPresetsCommand lists the presets of a saved lens config file.
func newLensPresetsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "presets <config-file>",
		Short:         "List lens presets from a config file",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLensPresets(rootOpts, args[0], cmd)
		},
	}
}

func runLensPresets(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	f, err := os.Open(path)
	if err != nil {
		return formatter.EmitError(ExitCommandError, fmt.Sprintf("open config: %v", err))
	}
	defer f.Close()

	l := lens.New(loadHostConfig().LensCapacity)
	if err := l.DecodePresets(f); err != nil {
		return formatter.EmitError(ExitFailure, fmt.Sprintf("decode config: %v", err))
	}

	cfg := l.ExportPresets()
	info := LensPresetInfo{ActiveID: cfg.ActiveID, Presets: cfg.Presets}

	var b strings.Builder
	fmt.Fprintf(&b, "active: %s", cfg.ActiveID)
	for _, name := range l.PresetNames() {
		p := cfg.Presets[name]
		fmt.Fprintf(&b, "\n%-12s enabled=%-5v x=%-12q y=%-12q y2=%q",
			name, p.Enabled, p.XKey, p.YKey, p.Y2Key)
	}
	return formatter.Emit(info, b.String())
}
