package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vantage-sim/vantage/internal/hostconfig"
	"github.com/vantage-sim/vantage/internal/journal"
	"github.com/vantage-sim/vantage/internal/lens"
	"github.com/vantage-sim/vantage/internal/overlay"
	"github.com/vantage-sim/vantage/internal/projector"
	"github.com/vantage-sim/vantage/internal/schema"
	"github.com/vantage-sim/vantage/internal/store"
)

// ReplaySummary is the replay command's output payload.
type ReplaySummary struct {
	Session     string `json:"session"`
	Ticks       int    `json:"ticks"`
	ViewChanges int    `json:"view_changes"`
	FullRedos   int    `json:"full_redos"`
	Runs        int    `json:"runs"`
	LensSamples int    `json:"lens_samples"`
	HasGraph    bool   `json:"has_graph"`
	HasSpace2D  bool   `json:"has_space2d"`
	HasTable    bool   `json:"has_table"`
	HasText     bool   `json:"has_text"`
	HasStruct   bool   `json:"has_structure"`
}

// NewReplayCommand creates the replay command: feed a journaled session
// through a fresh projector and report what it produced.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		journalPath   string
		overridesPath string
	)
	hostCfg := loadHostConfig()

	cmd := &cobra.Command{
		Use:   "replay <session-id>",
		Short: "Replay a journaled session through the projector",
		Long: `Replay reads a session from the tick journal, applies every tick to a
fresh projector, and reports the resulting views and runs. Replaying the
same session twice produces identical output; the pipeline is
deterministic.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, hostCfg, journalPath, overridesPath, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&journalPath, "journal", hostCfg.JournalPath, "tick journal database")
	cmd.Flags().StringVar(&overridesPath, "overrides", "", "schema override table file")
	return cmd
}

func runReplay(opts *RootOptions, hostCfg hostconfig.Config, journalPath, overridesPath, sessionID string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	overrides, err := loadOverrides(overridesPath)
	if err != nil {
		return formatter.EmitError(ExitCommandError, err.Error())
	}

	j, err := journal.Open(journalPath)
	if err != nil {
		return formatter.EmitError(ExitCommandError, fmt.Sprintf("open journal: %v", err))
	}
	defer j.Close()

	ticks, err := j.ReadSession(cmd.Context(), sessionID)
	if err != nil {
		return formatter.EmitError(ExitCommandError, fmt.Sprintf("read session: %v", err))
	}
	if len(ticks) == 0 {
		return formatter.EmitError(ExitFailure, fmt.Sprintf("session %q has no ticks", sessionID))
	}

	gate, err := schema.NewGate()
	if err != nil {
		return formatter.EmitError(ExitCommandError, fmt.Sprintf("compile shapes: %v", err))
	}
	p := projector.New(
		store.New(),
		schema.NewResolver(overrides),
		gate,
		lens.New(hostCfg.LensCapacity),
		overlay.NewRegistry(nil),
		nil,
	)

	summary := ReplaySummary{Session: sessionID, Ticks: len(ticks)}
	for _, t := range ticks {
		eff := p.ApplyTick(t)
		if eff.Changed {
			summary.ViewChanges++
		}
		if eff.RequireFull {
			summary.FullRedos++
		}
		formatter.Verbosef("tick %d frame %d changed=%v full=%v",
			t.TickID, t.FrameID, eff.Changed, eff.RequireFull)
	}

	vs := p.Views()
	summary.Runs = p.Runs().Len()
	summary.LensSamples = p.Lens().Len()
	summary.HasGraph = vs.Graph != nil
	summary.HasSpace2D = vs.Space2D != nil
	summary.HasTable = vs.Table != nil
	summary.HasText = vs.Text != nil
	summary.HasStruct = vs.Structure != nil

	return formatter.Emit(summary, renderReplaySummary(summary))
}

func renderReplaySummary(s ReplaySummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "session %s: %d ticks, %d view changes, %d full reprocesses\n",
		s.Session, s.Ticks, s.ViewChanges, s.FullRedos)
	fmt.Fprintf(&b, "runs: %d, lens samples: %d\n", s.Runs, s.LensSamples)
	fmt.Fprintf(&b, "views: graph=%v space2d=%v table=%v text=%v structure=%v",
		s.HasGraph, s.HasSpace2D, s.HasTable, s.HasText, s.HasStruct)
	return b.String()
}

// loadOverrides parses an override table file, or returns an empty
// table when no path is given.
func loadOverrides(path string) (schema.Overrides, error) {
	if path == "" {
		return schema.Overrides{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()
	overrides, err := schema.ParseOverrides(f)
	if err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	return overrides, nil
}
