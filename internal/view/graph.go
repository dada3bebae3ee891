package view

import "math"

// FanOut splits a multi-series graph into one single-series clone per
// series, so visibility, opacity, and z-order stay independently
// controllable downstream. Axis, sample, viewport, and meta are shared
// by value; points are copied, not aliased.
func (g *Graph) FanOut() []*Graph {
	out := make([]*Graph, 0, len(g.Series))
	for _, s := range g.Series {
		clone := &Graph{Schema: g.Schema}
		if g.Axis != nil {
			ax := *g.Axis
			clone.Axis = &ax
		}
		if g.Sample != nil {
			sm := *g.Sample
			clone.Sample = &sm
		}
		if g.View != nil {
			vp := *g.View
			clone.View = &vp
		}
		if g.Meta != nil {
			mt := *g.Meta
			clone.Meta = &mt
		}
		series := Series{ID: s.ID, Label: s.Label, Points: append([]Point(nil), s.Points...)}
		clone.Series = []Series{series}
		out = append(out, clone)
	}
	return out
}

// PointBounds returns the extent of a point set. ok is false for an
// empty set.
func PointBounds(pts []Point) (b Bounds, ok bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b = Bounds{MinX: math.Inf(1), MaxX: math.Inf(-1), MinY: math.Inf(1), MaxY: math.Inf(-1)}
	for _, p := range pts {
		b.MinX = math.Min(b.MinX, p.X)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b, true
}

// Union merges two extents.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		MinX: math.Min(b.MinX, o.MinX),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
