package overlay

import (
	"log/slog"

	"github.com/vantage-sim/vantage/internal/view"
)

// Display routes a validated single-series graph into the registry,
// applying the merge heuristics:
//
//   - meta.update == "append": concatenate points onto the run matched
//     by series id (preferred) else label, recomputing bounds from the
//     union; no match creates a new run.
//   - auto-replace mode: a graph from the same source text matching by
//     series id (or label) replaces the run's point data in place,
//     preserving id, layer, visibility, opacity, and compare role.
//   - otherwise: a new run.
//
// Multi-series graphs must be fanned out before display.
func (r *Registry) Display(g *view.Graph, sourceText string) *Run {
	s := g.Series[0]

	if g.Meta != nil && g.Meta.Update == "append" {
		if run := r.matchSeries(s); run != nil {
			run.Points = append(run.Points, s.Points...)
			if b, ok := view.PointBounds(s.Points); ok {
				run.Bounds = run.Bounds.Union(b)
			}
			run.SourceText = sourceText
			slog.Debug("run appended", "id", run.ID, "points", len(run.Points))
			return run
		}
		return r.AddRun(g, sourceText)
	}

	if r.AutoReplace {
		if run := r.matchSource(s, sourceText); run != nil {
			run.Points = append(run.Points[:0], s.Points...)
			if b, ok := view.PointBounds(run.Points); ok {
				run.Bounds = b
			}
			run.Signature = SignatureOf(g)
			slog.Debug("run replaced in place", "id", run.ID, "points", len(run.Points))
			return run
		}
	}

	return r.AddRun(g, sourceText)
}

// matchSeries finds the append target: series id first, label second.
// Layer order breaks ties so matching is deterministic.
func (r *Registry) matchSeries(s view.Series) *Run {
	if s.ID != "" {
		for _, run := range r.allByLayer() {
			if run.SeriesID == s.ID {
				return run
			}
		}
	}
	label := runLabel(s)
	for _, run := range r.allByLayer() {
		if run.Label == label {
			return run
		}
	}
	return nil
}

// matchSource finds the auto-replace target: identical source text plus
// a series id match, falling back to label when both sides lack ids.
func (r *Registry) matchSource(s view.Series, sourceText string) *Run {
	for _, run := range r.allByLayer() {
		if run.SourceText != sourceText {
			continue
		}
		if s.ID != "" || run.SeriesID != "" {
			if run.SeriesID == s.ID {
				return run
			}
			continue
		}
		if run.Label == runLabel(s) {
			return run
		}
	}
	return nil
}
