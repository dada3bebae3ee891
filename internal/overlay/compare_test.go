package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-sim/vantage/internal/view"
)

func graphWithUnits(seriesID, xUnit, yUnit string) *view.Graph {
	return &view.Graph{
		Schema: view.SchemaGraph,
		Axis: &view.Axis{
			X: view.AxisSpec{Unit: xUnit},
			Y: view.AxisSpec{Unit: yUnit},
		},
		Series: []view.Series{{ID: seriesID, Points: []view.Point{{X: 0, Y: 1}}}},
	}
}

func TestSignatureOf(t *testing.T) {
	g := &view.Graph{
		Schema: view.SchemaGraph,
		Axis: &view.Axis{
			X: view.AxisSpec{Unit: "s", AxisKind: "linear"},
			Y: view.AxisSpec{Unit: "m"},
		},
		Sample: &view.SampleSpec{Var: "t"},
		Series: []view.Series{{Points: []view.Point{{X: 0, Y: 0}}}},
	}
	assert.Equal(t, AxisSignature{
		GraphKind: "xy",
		SampleVar: "t",
		XUnit:     "s",
		YUnit:     "m",
		XKind:     "linear",
	}, SignatureOf(g))

	bare := &view.Graph{Schema: view.SchemaGraph, Series: []view.Series{{Points: []view.Point{{X: 0, Y: 0}}}}}
	assert.Equal(t, AxisSignature{GraphKind: "xy"}, SignatureOf(bare))
}

func TestEnterCompareNeedsActiveRun(t *testing.T) {
	r := newTestRegistry()
	assert.Error(t, r.EnterCompare())
}

func TestCompareAcceptsMatchingVariant(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	variant := r.Display(graphWithUnits("v", "s", "m"), "b")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	assert.Equal(t, RoleBaseline, baseline.CompareRole)

	require.True(t, r.ProposeVariant(variant.ID))
	assert.Equal(t, RoleVariant, variant.CompareRole)

	st := r.Status()
	assert.True(t, st.Enabled)
	assert.Empty(t, st.BlockReason)
	assert.Equal(t, baseline.Label, st.BaselineLabel)
	assert.Equal(t, variant.Label, st.VariantLabel)
}

func TestCompareBlocksUnitMismatch(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	candidate := r.Display(graphWithUnits("v", "m", "m"), "b")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())

	assert.False(t, r.ProposeVariant(candidate.ID))
	assert.Equal(t, RoleNone, candidate.CompareRole, "blocked candidate is not installed")
	assert.Empty(t, r.Compare().VariantID)

	st := r.Status()
	assert.True(t, st.Enabled, "compare session survives a blocked proposal")
	assert.NotEmpty(t, st.BlockReason)
	assert.Contains(t, st.BlockReason, "axis signature mismatch")
}

func TestCompareBlocksSeriesConflict(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	candidate := r.Display(graphWithUnits("w", "s", "m"), "b")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())

	assert.False(t, r.ProposeVariant(candidate.ID))
	assert.Contains(t, r.Compare().BlockReason, "series mismatch")
}

func TestCompareAllowsAbsentSeriesID(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	candidate := r.Display(graphWithUnits("", "s", "m"), "b")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	assert.True(t, r.ProposeVariant(candidate.ID), "id absent on one side is not a conflict")
}

func TestCompareRecoversAfterBlock(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	bad := r.Display(graphWithUnits("v", "m", "m"), "b")
	good := r.Display(graphWithUnits("v", "s", "m"), "c")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())

	assert.False(t, r.ProposeVariant(bad.ID))
	assert.True(t, r.ProposeVariant(good.ID))
	assert.Empty(t, r.Compare().BlockReason, "a successful proposal clears the block reason")
	assert.Equal(t, RoleVariant, good.CompareRole)
}

func TestBlockedProposalKeepsExistingVariant(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	variant := r.Display(graphWithUnits("v", "s", "m"), "b")
	bad := r.Display(graphWithUnits("v", "m", "m"), "c")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	require.True(t, r.ProposeVariant(variant.ID))

	assert.False(t, r.ProposeVariant(bad.ID))
	assert.Equal(t, RoleVariant, variant.CompareRole, "an installed variant survives a blocked proposal")
	assert.Equal(t, variant.ID, r.Compare().VariantID)
	assert.NotEmpty(t, r.Compare().BlockReason)
}

func TestProposeVariantReplacesPrevious(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	first := r.Display(graphWithUnits("v", "s", "m"), "b")
	second := r.Display(graphWithUnits("v", "s", "m"), "c")

	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	require.True(t, r.ProposeVariant(first.ID))
	require.True(t, r.ProposeVariant(second.ID))

	assert.Equal(t, RoleNone, first.CompareRole)
	assert.Equal(t, RoleVariant, second.CompareRole)
}

func TestProposeVariantRejectsBaselineItself(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())

	assert.False(t, r.ProposeVariant(baseline.ID))
	assert.NotEmpty(t, r.Compare().BlockReason)
}

func TestExitCompareClearsRoles(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	variant := r.Display(graphWithUnits("v", "s", "m"), "b")
	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	require.True(t, r.ProposeVariant(variant.ID))

	r.ExitCompare()
	assert.Equal(t, RoleNone, baseline.CompareRole)
	assert.Equal(t, RoleNone, variant.CompareRole)
	assert.Nil(t, r.Compare())
	assert.False(t, r.Status().Enabled)

	r.ExitCompare() // safe when already off
}

func TestRemovingParticipantTearsDownCompare(t *testing.T) {
	r := newTestRegistry()
	baseline := r.Display(graphWithUnits("v", "s", "m"), "a")
	variant := r.Display(graphWithUnits("v", "s", "m"), "b")
	require.NoError(t, r.SetActiveRun(baseline.ID))
	require.NoError(t, r.EnterCompare())
	require.True(t, r.ProposeVariant(variant.ID))

	require.True(t, r.RemoveRun(variant.ID))
	assert.Nil(t, r.Compare())
	assert.Equal(t, RoleNone, baseline.CompareRole)
}
