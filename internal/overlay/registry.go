package overlay

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vantage-sim/vantage/internal/view"
)

// Role marks a run's part in a compare session.
type Role string

const (
	RoleNone     Role = ""
	RoleBaseline Role = "baseline"
	RoleVariant  Role = "variant"
)

// Run is one renderable series.
type Run struct {
	ID          string
	Label       string
	Points      []view.Point
	Bounds      view.Bounds
	LayerIndex  int
	Opacity     float64
	Visible     bool
	CompareRole Role
	SeriesID    string

	// Signature is the axis compatibility fingerprint captured from the
	// graph that created the run. SourceText identifies the source that
	// produced the graph (resource tag, component key, or script text);
	// auto-replace matches on it so a re-run updates its existing run.
	Signature  AxisSignature
	SourceText string
}

// Registry holds the live runs of one session.
type Registry struct {
	runs     map[string]*Run
	gen      IDGenerator
	layerSeq int
	activeID string

	// AutoReplace re-runs point data in place when the same source text
	// produces a graph again, instead of stacking near-identical runs.
	AutoReplace bool

	compare *CompareSession
	seq     *Sequencer
}

// NewRegistry creates an empty registry. A nil generator defaults to
// UUIDv7 ids.
func NewRegistry(gen IDGenerator) *Registry {
	if gen == nil {
		gen = UUIDv7Generator{}
	}
	return &Registry{runs: make(map[string]*Run), gen: gen}
}

// AddRun registers a new run for a validated single-series graph.
func (r *Registry) AddRun(g *view.Graph, sourceText string) *Run {
	s := g.Series[0]
	bounds, _ := view.PointBounds(s.Points)
	r.layerSeq++
	run := &Run{
		ID:         r.gen.Generate(),
		Label:      runLabel(s),
		Points:     append([]view.Point(nil), s.Points...),
		Bounds:     bounds,
		LayerIndex: r.layerSeq,
		Opacity:    1,
		Visible:    true,
		SeriesID:   s.ID,
		Signature:  SignatureOf(g),
		SourceText: sourceText,
	}
	r.runs[run.ID] = run
	if r.activeID == "" {
		r.activeID = run.ID
	}
	slog.Debug("run added", "id", run.ID, "label", run.Label, "layer", run.LayerIndex)
	return run
}

// RemoveRun destroys a run. Removing a compare participant tears the
// compare session down as well.
func (r *Registry) RemoveRun(id string) bool {
	run, ok := r.runs[id]
	if !ok {
		return false
	}
	if run.CompareRole != RoleNone {
		r.ExitCompare()
	}
	delete(r.runs, id)
	if r.activeID == id {
		r.activeID = ""
	}
	slog.Debug("run removed", "id", id)
	return true
}

// SetActiveRun marks the run future operations (compare entry) act on.
func (r *Registry) SetActiveRun(id string) error {
	if _, ok := r.runs[id]; !ok {
		return fmt.Errorf("no run %q", id)
	}
	r.activeID = id
	return nil
}

// ActiveRun returns the active run, or nil.
func (r *Registry) ActiveRun() *Run {
	return r.runs[r.activeID]
}

// Run returns a run by id, or nil.
func (r *Registry) Run(id string) *Run {
	return r.runs[id]
}

// Len returns the number of live runs.
func (r *Registry) Len() int { return len(r.runs) }

// GetVisibleRuns returns visible runs in ascending layer order, the
// order the renderer paints them in.
func (r *Registry) GetVisibleRuns() []*Run {
	out := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		if run.Visible {
			out = append(out, run)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LayerIndex < out[j].LayerIndex })
	return out
}

// allByLayer returns every run in ascending layer order.
func (r *Registry) allByLayer() []*Run {
	out := make([]*Run, 0, len(r.runs))
	for _, run := range r.runs {
		out = append(out, run)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LayerIndex < out[j].LayerIndex })
	return out
}

// MoveLayer shifts a run one step up (+1) or down (-1) in z-order by
// swapping layer indices with its neighbor. Moving past either end is a
// no-op.
func (r *Registry) MoveLayer(id string, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("layer delta must be +1 or -1, got %d", delta)
	}
	ordered := r.allByLayer()
	pos := -1
	for i, run := range ordered {
		if run.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return fmt.Errorf("no run %q", id)
	}
	neighbor := pos + delta
	if neighbor < 0 || neighbor >= len(ordered) {
		return nil
	}
	a, b := ordered[pos], ordered[neighbor]
	a.LayerIndex, b.LayerIndex = b.LayerIndex, a.LayerIndex
	return nil
}

// Reset destroys all runs and any compare session.
func (r *Registry) Reset() {
	r.ExitCompare()
	r.runs = make(map[string]*Run)
	r.activeID = ""
	r.layerSeq = 0
}

func runLabel(s view.Series) string {
	if s.Label != "" {
		return s.Label
	}
	if s.ID != "" {
		return s.ID
	}
	return "series"
}
