package projector

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/vantage-sim/vantage/internal/store"
	"github.com/vantage-sim/vantage/internal/tick"
	"github.com/vantage-sim/vantage/internal/view"
)

// applyPatch replays one tick's ordered op list. Ops apply strictly in
// array order; a malformed op is skipped and logged without aborting
// the remainder. Unknown op kinds are skipped silently so newer engines
// keep working against this projector.
func (p *Projector) applyPatch(ops []tick.PatchOp) Effects {
	var eff Effects
	for i, op := range ops {
		if !tick.KnownOp(op.Op) {
			slog.Debug("unknown patch op skipped", "index", i, "op", op.Op)
			continue
		}
		e, err := p.applyOp(i, op)
		if err != nil {
			slog.Warn("patch op skipped", "error", err)
			continue
		}
		eff.merge(e)
		if eff.RequireFull {
			// The caller discards patch semantics for this tick; the
			// remaining ops are subsumed by full reprocessing.
			return eff
		}
	}
	return eff
}

func (p *Projector) applyOp(index int, op tick.PatchOp) (Effects, error) {
	var eff Effects
	switch op.Op {
	case tick.OpSetResourceJSON:
		if op.Tag == "" {
			return eff, &OpError{Code: ErrCodeMissingTag, Index: index, Op: op.Op, Message: "resource tag is required"}
		}
		if len(op.Value) == 0 {
			return eff, &OpError{Code: ErrCodeBadValue, Index: index, Op: op.Op, Tag: op.Tag, Message: "empty payload"}
		}
		eff.Changed = p.applyResourceJSON(op.Tag, op.Value)

	case tick.OpSetResourceFixed64:
		if op.Tag == "" {
			return eff, &OpError{Code: ErrCodeMissingTag, Index: index, Op: op.Op, Message: "resource tag is required"}
		}
		decimal, err := scalarString(op.Value)
		if err != nil {
			return eff, &OpError{Code: ErrCodeBadValue, Index: index, Op: op.Op, Tag: op.Tag, Message: err.Error()}
		}
		eff = p.setFixed64(op.Tag, decimal)

	case tick.OpSetResourceValue:
		if op.Tag == "" {
			return eff, &OpError{Code: ErrCodeMissingTag, Index: index, Op: op.Op, Message: "resource tag is required"}
		}
		val, err := scalarValue(op.Value)
		if err != nil {
			return eff, &OpError{Code: ErrCodeBadValue, Index: index, Op: op.Op, Tag: op.Tag, Message: err.Error()}
		}
		p.store.SetValue(op.Tag, val)
		eff.ValueChanged = true
		if op.Tag == reservedValueTag {
			eff.RequireFull = true
		}

	case tick.OpSetComponentJSON:
		key, err := componentKey(index, op)
		if err != nil {
			return eff, err
		}
		if len(op.Value) == 0 {
			return eff, &OpError{Code: ErrCodeBadValue, Index: index, Op: op.Op, Tag: op.Component, Message: "empty payload"}
		}
		eff.Changed = p.applyComponentJSON(key, op.Value)

	case tick.OpRemoveComponent:
		key, err := componentKey(index, op)
		if err != nil {
			return eff, err
		}
		eff.Changed = p.removeComponent(key)
	}
	return eff, nil
}

// applyComponentJSON upserts one component entry, resolving its view
// through the router. The component tag is the schema tag.
func (p *Projector) applyComponentJSON(key store.ComponentKey, raw []byte) bool {
	canonical := store.CanonicalRaw(raw)
	if prev := p.store.Component(key); prev != nil && prev.Raw == canonical {
		return false
	}

	kind := p.resolver.Resolve(key.Tag, raw)
	entry := &store.ComponentEntry{Raw: canonical, Schema: key.Tag, Kind: kind}
	if kind == view.KindNone {
		p.store.SetComponent(key, entry)
		return false
	}

	obj, ok := p.validate(kind, componentSource(key), raw)
	if !ok {
		// Keep the previous entry: the last valid view stays displayed.
		return false
	}
	entry.Resolved = obj
	p.store.SetComponent(key, entry)
	p.store.CommitView(kind, canonical, obj)
	if g, isGraph := obj.(*view.Graph); isGraph && p.runs != nil {
		for _, single := range g.FanOut() {
			p.runs.Display(single, componentSource(key))
		}
	}
	return true
}

// removeComponent deletes a component entry and clears its view and
// cache slot when that entry is what currently fills them.
func (p *Projector) removeComponent(key store.ComponentKey) bool {
	entry := p.store.RemoveComponent(key)
	if entry == nil {
		return false
	}
	if entry.Kind != view.KindNone && p.store.CacheFresh(entry.Kind, entry.Raw) {
		p.store.DropView(entry.Kind)
		return true
	}
	return false
}

// componentKey extracts and checks the (entity, component) key of a
// component op. Non-finite or fractional entity ids are malformed.
func componentKey(index int, op tick.PatchOp) (store.ComponentKey, error) {
	if op.Component == "" {
		return store.ComponentKey{}, &OpError{Code: ErrCodeMissingTag, Index: index, Op: op.Op, Message: "component tag is required"}
	}
	if op.Entity == "" {
		return store.ComponentKey{}, &OpError{Code: ErrCodeBadEntity, Index: index, Op: op.Op, Tag: op.Component, Message: "entity id is required"}
	}
	id, err := op.Entity.Int64()
	if err != nil {
		return store.ComponentKey{}, &OpError{Code: ErrCodeBadEntity, Index: index, Op: op.Op, Tag: op.Component, Message: "entity id is not an integer: " + op.Entity.String()}
	}
	return store.ComponentKey{Entity: id, Tag: op.Component}, nil
}

// scalarString coerces a raw JSON value to the fixed-point store's
// decimal-string form. Strings pass through; numbers keep their wire
// text. Objects, arrays, booleans, and null are not scalars.
func scalarString(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), nil
	}
	return "", errNotScalar(raw)
}

// scalarValue coerces a raw JSON value for the generic scalar store.
func scalarValue(raw json.RawMessage) (any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return nil, errNotScalar(raw)
	}
	switch trimmed[0] {
	case '{', '[':
		return nil, errNotScalar(raw)
	}
	var v any
	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, errNotScalar(raw)
	}
	if n, ok := v.(json.Number); ok {
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
		return n.String(), nil
	}
	return v, nil
}

type notScalarError string

func (e notScalarError) Error() string { return "not a scalar: " + string(e) }

func errNotScalar(raw json.RawMessage) error {
	s := string(raw)
	if len(s) > 40 {
		s = s[:40] + "…"
	}
	return notScalarError(s)
}
