package overlay

import (
	"fmt"
	"time"
)

// Sequenced playback interval bounds. Requested intervals are clamped.
const (
	MinSequenceInterval = 120 * time.Millisecond
	MaxSequenceInterval = 5 * time.Second
)

// Sequencer alternates baseline/variant visibility at a fixed interval.
// It is an explicit stepper: the host loop calls Advance with its
// current time, and the sequencer flips visibility when the interval
// has elapsed. No goroutines, no timers; the single-threaded host model
// stays intact.
type Sequencer struct {
	interval time.Duration
	flipAt   time.Time

	showingBaseline bool
	savedBaseline   bool
	savedVariant    bool
}

// StartSequence begins alternating playback. Requires both a baseline
// and a variant. Prior visibility of both runs is saved and restored on
// stop. While sequencing, exactly one of the two is visible.
func (r *Registry) StartSequence(interval time.Duration, now time.Time) error {
	if r.compare == nil {
		return fmt.Errorf("sequencing needs compare mode")
	}
	baseline := r.runs[r.compare.BaselineID]
	variant := r.runs[r.compare.VariantID]
	if baseline == nil || variant == nil {
		return fmt.Errorf("sequencing needs both baseline and variant")
	}
	if interval < MinSequenceInterval {
		interval = MinSequenceInterval
	}
	if interval > MaxSequenceInterval {
		interval = MaxSequenceInterval
	}

	r.seq = &Sequencer{
		interval:        interval,
		flipAt:          now.Add(interval),
		showingBaseline: true,
		savedBaseline:   baseline.Visible,
		savedVariant:    variant.Visible,
	}
	baseline.Visible = true
	variant.Visible = false
	return nil
}

// AdvanceSequence flips visibility if the interval has elapsed at now.
// A host loop running slower than the interval flips once per call; the
// sequencer never queues missed flips.
func (r *Registry) AdvanceSequence(now time.Time) {
	if r.seq == nil || r.compare == nil {
		return
	}
	if now.Before(r.seq.flipAt) {
		return
	}
	baseline := r.runs[r.compare.BaselineID]
	variant := r.runs[r.compare.VariantID]
	if baseline == nil || variant == nil {
		r.StopSequence()
		return
	}
	r.seq.showingBaseline = !r.seq.showingBaseline
	baseline.Visible = r.seq.showingBaseline
	variant.Visible = !r.seq.showingBaseline
	r.seq.flipAt = now.Add(r.seq.interval)
}

// StopSequence ends playback and restores both runs' prior visibility.
// Safe to call when not sequencing.
func (r *Registry) StopSequence() {
	if r.seq == nil {
		return
	}
	if r.compare != nil {
		if baseline := r.runs[r.compare.BaselineID]; baseline != nil {
			baseline.Visible = r.seq.savedBaseline
		}
		if variant := r.runs[r.compare.VariantID]; variant != nil {
			variant.Visible = r.seq.savedVariant
		}
	}
	r.seq = nil
}

// Sequencing reports whether playback is active.
func (r *Registry) Sequencing() bool { return r.seq != nil }
