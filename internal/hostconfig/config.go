// Package hostconfig loads the host-loop parameters this layer needs
// from the environment. The render loop itself lives outside; the
// projection layer only records the configured ceilings and hands them
// to whoever schedules it.
package hostconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the tunable host parameters.
type Config struct {
	// FPSCeiling throttles the host render loop. An over-budget step
	// delays the next callback; frames are never silently dropped.
	FPSCeiling int `env:"VANTAGE_FPS_CEILING" envDefault:"60"`

	// LensCapacity bounds the observation lens timeline. Clamped by the
	// lens package to its supported range.
	LensCapacity int `env:"VANTAGE_LENS_CAPACITY" envDefault:"240"`

	// SequenceInterval is the default compare playback interval.
	SequenceInterval time.Duration `env:"VANTAGE_SEQUENCE_INTERVAL" envDefault:"750ms"`

	// JournalPath is the default tick journal database path.
	JournalPath string `env:"VANTAGE_JOURNAL" envDefault:"vantage.db"`
}

// Default returns the built-in configuration, the values Load yields
// when the environment is unset.
func Default() Config {
	return Config{
		FPSCeiling:       60,
		LensCapacity:     240,
		SequenceInterval: 750 * time.Millisecond,
		JournalPath:      "vantage.db",
	}
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse host config: %w", err)
	}
	if cfg.FPSCeiling <= 0 {
		return Config{}, fmt.Errorf("fps ceiling must be positive, got %d", cfg.FPSCeiling)
	}
	return cfg, nil
}

// TickBudget returns the per-frame time budget implied by the fps
// ceiling.
func (c Config) TickBudget() time.Duration {
	return time.Second / time.Duration(c.FPSCeiling)
}
