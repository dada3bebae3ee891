package lens

import "github.com/vantage-sim/vantage/internal/view"

// lensSchema tags synthesized graphs so downstream consumers can tell
// lens output from engine-declared graphs.
const lensSchema = view.SchemaGraph

// Graph synthesizes the current lens graph, or nil when the lens is
// disabled, no y channel is configured, or the timeline is empty.
func (l *Lens) Graph() *view.Graph {
	if !l.enabled || l.yKey == "" || len(l.timeline) == 0 {
		return nil
	}

	g := &view.Graph{
		Schema: lensSchema,
		Axis: &view.Axis{
			X: view.AxisSpec{Label: l.xLabel()},
			Y: view.AxisSpec{Label: l.yKey},
		},
		Sample: &view.SampleSpec{Var: l.xLabel()},
	}

	if s := l.series(l.yKey); len(s.Points) > 0 {
		g.Series = append(g.Series, s)
	}
	if l.y2Key != "" {
		if s := l.series(l.y2Key); len(s.Points) > 0 {
			g.Series = append(g.Series, s)
		}
	}
	if len(g.Series) == 0 {
		return nil
	}
	return g
}

// series pairs each sample's x value with the given y channel. Samples
// missing either coordinate are dropped, never interpolated.
func (l *Lens) series(yKey string) view.Series {
	s := view.Series{ID: yKey, Label: yKey}
	xKey := l.resolvedXKey()
	for _, smp := range l.timeline {
		x, okX := smp[xKey]
		y, okY := smp[yKey]
		if !okX || !okY {
			continue
		}
		s.Points = append(s.Points, view.Point{X: x, Y: y})
	}
	return s
}

// resolvedXKey maps the configured x key to a sample key: empty selects
// the tick id, the reserved keys select themselves, anything else is a
// channel key.
func (l *Lens) resolvedXKey() string {
	if l.xKey == "" {
		return KeyTick
	}
	return l.xKey
}

func (l *Lens) xLabel() string {
	switch l.resolvedXKey() {
	case KeyTick:
		return "tick"
	case KeyIndex:
		return "index"
	default:
		return l.xKey
	}
}
