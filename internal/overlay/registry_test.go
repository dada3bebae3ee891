package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-sim/vantage/internal/view"
)

func singleSeries(id, label string, points ...view.Point) *view.Graph {
	return &view.Graph{
		Schema: view.SchemaGraph,
		Series: []view.Series{{ID: id, Label: label, Points: points}},
	}
}

func newTestRegistry() *Registry {
	return NewRegistry(&FixedGenerator{})
}

func TestAddRun(t *testing.T) {
	r := newTestRegistry()
	run := r.AddRun(singleSeries("v", "velocity", view.Point{X: 0, Y: 1}, view.Point{X: 2, Y: 3}), "sim.velocity")

	assert.Equal(t, "run-1", run.ID)
	assert.Equal(t, "velocity", run.Label)
	assert.Equal(t, "v", run.SeriesID)
	assert.Equal(t, 1, run.LayerIndex)
	assert.Equal(t, 1.0, run.Opacity)
	assert.True(t, run.Visible)
	assert.Equal(t, view.Bounds{MinX: 0, MaxX: 2, MinY: 1, MaxY: 3}, run.Bounds)
	assert.Same(t, run, r.ActiveRun(), "first run becomes active")
}

func TestRunLabelFallbacks(t *testing.T) {
	r := newTestRegistry()
	p := view.Point{X: 0, Y: 0}
	assert.Equal(t, "velocity", r.AddRun(singleSeries("v", "velocity", p), "").Label)
	assert.Equal(t, "v", r.AddRun(singleSeries("v", "", p), "").Label)
	assert.Equal(t, "series", r.AddRun(singleSeries("", "", p), "").Label)
}

func TestAddRunCopiesPoints(t *testing.T) {
	r := newTestRegistry()
	g := singleSeries("v", "v", view.Point{X: 1, Y: 1})
	run := r.AddRun(g, "")
	g.Series[0].Points[0].X = 99
	assert.Equal(t, 1.0, run.Points[0].X)
}

func TestRemoveRun(t *testing.T) {
	r := newTestRegistry()
	run := r.AddRun(singleSeries("v", "v", view.Point{}), "")

	assert.True(t, r.RemoveRun(run.ID))
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.ActiveRun())
	assert.False(t, r.RemoveRun(run.ID), "second removal is a no-op")
}

func TestVisibleRunsInLayerOrder(t *testing.T) {
	r := newTestRegistry()
	p := view.Point{X: 0, Y: 0}
	a := r.AddRun(singleSeries("a", "a", p), "")
	b := r.AddRun(singleSeries("b", "b", p), "")
	c := r.AddRun(singleSeries("c", "c", p), "")
	b.Visible = false

	visible := r.GetVisibleRuns()
	require.Len(t, visible, 2)
	assert.Same(t, a, visible[0])
	assert.Same(t, c, visible[1])
}

func TestMoveLayer(t *testing.T) {
	r := newTestRegistry()
	p := view.Point{X: 0, Y: 0}
	a := r.AddRun(singleSeries("a", "a", p), "")
	b := r.AddRun(singleSeries("b", "b", p), "")
	c := r.AddRun(singleSeries("c", "c", p), "")

	require.NoError(t, r.MoveLayer(a.ID, 1))
	assert.Equal(t, 2, a.LayerIndex)
	assert.Equal(t, 1, b.LayerIndex)

	// Moving past the top end is a silent no-op.
	require.NoError(t, r.MoveLayer(c.ID, 1))
	assert.Equal(t, 3, c.LayerIndex)

	require.NoError(t, r.MoveLayer(b.ID, -1))
	assert.Equal(t, 1, b.LayerIndex)
	require.NoError(t, r.MoveLayer(b.ID, -1))
	assert.Equal(t, 1, b.LayerIndex, "bottom run stays put")

	assert.Error(t, r.MoveLayer(a.ID, 2))
	assert.Error(t, r.MoveLayer("ghost", 1))
}

func TestSetActiveRun(t *testing.T) {
	r := newTestRegistry()
	p := view.Point{X: 0, Y: 0}
	r.AddRun(singleSeries("a", "a", p), "")
	b := r.AddRun(singleSeries("b", "b", p), "")

	require.NoError(t, r.SetActiveRun(b.ID))
	assert.Same(t, b, r.ActiveRun())
	assert.Error(t, r.SetActiveRun("ghost"))
}

func TestRegistryReset(t *testing.T) {
	r := newTestRegistry()
	r.AddRun(singleSeries("a", "a", view.Point{}), "")
	require.NoError(t, r.EnterCompare())

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Nil(t, r.Compare())
	assert.Nil(t, r.ActiveRun())

	// Layer numbering restarts.
	run := r.AddRun(singleSeries("a", "a", view.Point{}), "")
	assert.Equal(t, 1, run.LayerIndex)
}
