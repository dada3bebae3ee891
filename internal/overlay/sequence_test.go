package overlay

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compareReadyRegistry(t *testing.T) (*Registry, *Run, *Run) {
	t.Helper()
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	variant := r.Display(graphWithUnits("v", "s", "m"), "b")
	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	require.True(t, r.ProposeVariant(variant.ID))
	return r, baseline, variant
}

func TestStartSequenceNeedsCompare(t *testing.T) {
	r := newTestRegistry()
	assert.Error(t, r.StartSequence(time.Second, time.Now()))

	run := r.Display(graphWithUnits("v", "s", "m"), "a")
	require.NoError(t, r.SetActiveRun(run.ID))
	require.NoError(t, r.EnterCompare())
	assert.Error(t, r.StartSequence(time.Second, time.Now()), "sequencing needs a variant too")
}

func TestSequenceAlternation(t *testing.T) {
	r, baseline, variant := compareReadyRegistry(t)
	start := time.Unix(1000, 0)

	require.NoError(t, r.StartSequence(500*time.Millisecond, start))
	assert.True(t, r.Sequencing())
	assert.True(t, baseline.Visible)
	assert.False(t, variant.Visible)

	// Before the interval elapses nothing flips.
	r.AdvanceSequence(start.Add(200 * time.Millisecond))
	assert.True(t, baseline.Visible)

	r.AdvanceSequence(start.Add(500 * time.Millisecond))
	assert.False(t, baseline.Visible)
	assert.True(t, variant.Visible)

	r.AdvanceSequence(start.Add(time.Second))
	assert.True(t, baseline.Visible)
	assert.False(t, variant.Visible)
}

func TestSequenceIntervalClamp(t *testing.T) {
	r, baseline, _ := compareReadyRegistry(t)
	start := time.Unix(1000, 0)

	require.NoError(t, r.StartSequence(time.Millisecond, start))

	// 1ms was clamped up to the minimum; a 50ms advance must not flip.
	r.AdvanceSequence(start.Add(50 * time.Millisecond))
	assert.True(t, baseline.Visible)

	r.AdvanceSequence(start.Add(MinSequenceInterval))
	assert.False(t, baseline.Visible)
}

func TestSequenceNeverQueuesMissedFlips(t *testing.T) {
	r, baseline, variant := compareReadyRegistry(t)
	start := time.Unix(1000, 0)
	require.NoError(t, r.StartSequence(MinSequenceInterval, start))

	// A host that stalled for many intervals still flips exactly once.
	r.AdvanceSequence(start.Add(10 * time.Second))
	assert.False(t, baseline.Visible)
	assert.True(t, variant.Visible)
}

func TestStopSequenceRestoresVisibility(t *testing.T) {
	r, baseline, variant := compareReadyRegistry(t)
	baseline.Visible = false
	variant.Visible = true
	start := time.Unix(1000, 0)

	require.NoError(t, r.StartSequence(time.Second, start))
	r.AdvanceSequence(start.Add(time.Second))

	r.StopSequence()
	assert.False(t, r.Sequencing())
	assert.False(t, baseline.Visible, "prior visibility restored")
	assert.True(t, variant.Visible, "prior visibility restored")

	r.StopSequence() // safe when not sequencing
}

func TestExitCompareStopsSequencing(t *testing.T) {
	r, baseline, variant := compareReadyRegistry(t)
	start := time.Unix(1000, 0)
	require.NoError(t, r.StartSequence(time.Second, start))

	r.ExitCompare()
	assert.False(t, r.Sequencing())
	assert.True(t, baseline.Visible)
	assert.True(t, variant.Visible)
}

func TestStatusReportsSequencing(t *testing.T) {
	r, _, _ := compareReadyRegistry(t)
	assert.False(t, r.Status().Sequencing)

	require.NoError(t, r.StartSequence(time.Second, time.Unix(1000, 0)))
	assert.True(t, r.Status().Sequencing)
}
