// Package cli implements the vantage command line interface.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vantage-sim/vantage/internal/hostconfig"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the vantage CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "vantage",
		Short: "Vantage - simulation state projection",
		Long:  "Inspect, validate, and replay the view projections of a simulation tick stream.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewLensCommand(opts))

	return cmd
}

// loadHostConfig reads the host parameters commands seed their defaults
// from. An invalid environment degrades to the built-in defaults with a
// log line rather than failing flag registration.
func loadHostConfig() hostconfig.Config {
	cfg, err := hostconfig.Load()
	if err != nil {
		slog.Warn("host config invalid, using defaults", "error", err)
		return hostconfig.Default()
	}
	return cfg
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
