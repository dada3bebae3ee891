package projector

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vantage-sim/vantage/internal/lens"
	"github.com/vantage-sim/vantage/internal/overlay"
	"github.com/vantage-sim/vantage/internal/schema"
	"github.com/vantage-sim/vantage/internal/store"
	"github.com/vantage-sim/vantage/internal/tick"
	"github.com/vantage-sim/vantage/internal/view"
)

// Reserved resource tags. A change to one of these means incremental
// state downstream of the patch can no longer be trusted: the engine
// regenerated its world or reseeded, so the tick is reprocessed in
// full.
var reservedFixed64Tags = map[string]bool{
	"sim.generation": true,
	"sim.seed":       true,
}

const reservedValueTag = "sim.world"

// Effects classifies the net effect of applying one tick.
type Effects struct {
	// Changed is set when any view visibly changed.
	Changed bool
	// Fixed64Changed is set when a fixed-point scalar changed.
	Fixed64Changed bool
	// ValueChanged is set when a generic scalar was upserted.
	ValueChanged bool
	// RequireFull records that patch semantics were discarded and the
	// tick was reprocessed in full.
	RequireFull bool
}

func (e *Effects) merge(o Effects) {
	e.Changed = e.Changed || o.Changed
	e.Fixed64Changed = e.Fixed64Changed || o.Fixed64Changed
	e.ValueChanged = e.ValueChanged || o.ValueChanged
	e.RequireFull = e.RequireFull || o.RequireFull
}

// Projector owns the per-session reconciliation pipeline. It is an
// explicit context record: every collaborator is injected, nothing is
// global.
type Projector struct {
	store    *store.Store
	resolver *schema.Resolver
	gate     *schema.Gate
	lens     *lens.Lens
	runs     *overlay.Registry
	bindings BindingTable

	viewport   view.Viewport
	axisBounds view.Bounds
}

// New wires a projector from its collaborators. A nil bindings table
// gets the defaults.
func New(s *store.Store, r *schema.Resolver, g *schema.Gate, l *lens.Lens, runs *overlay.Registry, bindings BindingTable) *Projector {
	if bindings == nil {
		bindings = DefaultBindings()
	}
	return &Projector{
		store:    s,
		resolver: r,
		gate:     g,
		lens:     l,
		runs:     runs,
		bindings: bindings,
		viewport: view.Viewport{Zoom: 1, AutoFit: true},
	}
}

// Store exposes the canonical store for inspection.
func (p *Projector) Store() *store.Store { return p.store }

// Runs exposes the run registry.
func (p *Projector) Runs() *overlay.Registry { return p.runs }

// Lens exposes the observation lens.
func (p *Projector) Lens() *lens.Lens { return p.lens }

// ApplyTick reconciles one tick record. A record without a patch is a
// full snapshot; a patch replays in order, falling back to full
// reprocessing when a reserved tag fires. The lens samples the frame
// either way.
func (p *Projector) ApplyTick(t *tick.Tick) Effects {
	var eff Effects
	if !t.HasPatch {
		eff = p.applyFull(t)
	} else {
		eff = p.applyPatch(t.Patch)
		if eff.RequireFull {
			slog.Info("patch discarded, reprocessing tick in full",
				"tick", t.TickID, "frame", t.FrameID)
			full := p.applyFull(t)
			full.RequireFull = true
			eff = full
		}
	}

	if p.lens != nil {
		res := p.lens.Sync(t)
		if res.SamplePushed && res.Graph != nil {
			eff.Changed = true
		}
	}
	return eff
}

// applyFull reprocesses every resource of the tick record. Dedup by raw
// identity still applies, so an unchanged resource refreshes nothing.
func (p *Projector) applyFull(t *tick.Tick) Effects {
	var eff Effects

	for _, tag := range sortedKeys(t.Resources.Fixed64) {
		e := p.setFixed64(tag, t.Resources.Fixed64[tag])
		e.RequireFull = false // already reprocessing
		eff.merge(e)
	}
	for _, tag := range sortedKeys(t.Resources.Value) {
		changed := p.store.SetValue(tag, t.Resources.Value[tag])
		eff.ValueChanged = eff.ValueChanged || changed
	}
	for _, tag := range sortedKeys(t.Resources.JSON) {
		if p.applyResourceJSON(tag, t.Resources.JSON[tag]) {
			eff.Changed = true
		}
	}
	return eff
}

// applyResourceJSON routes one raw resource payload through the schema
// resolver and view validator. Returns true on a visible view change.
func (p *Projector) applyResourceJSON(tag string, raw []byte) bool {
	canonical := store.CanonicalRaw(raw)
	p.store.SetRawJSON(tag, canonical)

	kind := p.resolver.Resolve(tag, raw)
	if kind == view.KindNone {
		slog.Debug("resource stored without view", "tag", tag)
		return false
	}
	if p.store.CacheFresh(kind, canonical) {
		return false
	}
	obj, ok := p.validate(kind, tag, raw)
	if !ok {
		return false
	}

	p.store.CommitView(kind, canonical, obj)
	if g, isGraph := obj.(*view.Graph); isGraph && p.runs != nil {
		for _, single := range g.FanOut() {
			p.runs.Display(single, tag)
		}
	}
	return true
}

// validate runs the shape gate and the kind validator. Failures keep
// the last good view and surface as log lines.
func (p *Projector) validate(kind view.Kind, source string, raw []byte) (view.Object, bool) {
	if p.gate != nil {
		if err := p.gate.Check(kind, raw); err != nil {
			slog.Warn("payload shape rejected", "source", source, "kind", kind.String(), "error", err)
			return nil, false
		}
	}
	obj, warns, err := view.Parse(kind, raw)
	for _, w := range warns {
		slog.Warn("view warning", "source", source, "kind", kind.String(), "warning", w)
	}
	if err != nil {
		slog.Warn("view update dropped", "source", source, "kind", kind.String(), "error", err)
		return nil, false
	}
	return obj, true
}

// setFixed64 upserts one fixed-point scalar, projecting bound tags onto
// the live viewport and flagging reserved tags.
func (p *Projector) setFixed64(tag, value string) Effects {
	var eff Effects
	changed := p.store.SetFixed64(tag, value)
	if !changed {
		return eff
	}
	eff.Fixed64Changed = true
	if target, ok := p.bindings[tag]; ok {
		if p.applyBinding(target, value) {
			eff.Changed = true
		}
	}
	if reservedFixed64Tags[tag] {
		eff.RequireFull = true
	}
	return eff
}

// ViewSet is the complete set of normalized view objects handed to the
// renderer for one paint, plus the lens-precedence outcome.
type ViewSet struct {
	Graph     *view.Graph
	Space2D   *view.Space2D
	Table     *view.Table
	Text      *view.Text
	Structure *view.Structure

	// LensGraph reports that Graph came from the observation lens
	// rather than the engine's declared graph.
	LensGraph bool
}

// Views assembles the current renderer contract. A non-empty lens graph
// takes precedence over the engine's schema-declared graph.
func (p *Projector) Views() ViewSet {
	vs := ViewSet{}
	if g, ok := p.store.View(view.KindGraph).(*view.Graph); ok {
		vs.Graph = g
	}
	if p.lens != nil {
		if g := p.lens.Graph(); g != nil {
			vs.Graph = g
			vs.LensGraph = true
		}
	}
	if s, ok := p.store.View(view.KindSpace2D).(*view.Space2D); ok {
		vs.Space2D = s
	}
	if t, ok := p.store.View(view.KindTable).(*view.Table); ok {
		vs.Table = t
	}
	if t, ok := p.store.View(view.KindText).(*view.Text); ok {
		vs.Text = t
	}
	if s, ok := p.store.View(view.KindStructure).(*view.Structure); ok {
		vs.Structure = s
	}
	return vs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func componentSource(key store.ComponentKey) string {
	return fmt.Sprintf("%d/%s", key.Entity, key.Tag)
}
