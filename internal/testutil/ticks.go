// Package testutil provides tick-record builders for tests.
package testutil

import (
	"encoding/json"
	"fmt"

	"github.com/vantage-sim/vantage/internal/tick"
)

// TickBuilder assembles tick records fluently. The zero builder is not
// usable; start with NewTick.
type TickBuilder struct {
	t tick.Tick
}

// NewTick starts a tick with the given id, a matching frame id, and a
// deterministic state hash.
func NewTick(id int64) *TickBuilder {
	return &TickBuilder{t: tick.Tick{
		TickID:    id,
		FrameID:   id,
		StateHash: fmt.Sprintf("h%04d", id),
	}}
}

// Frame overrides the frame id and state hash.
func (b *TickBuilder) Frame(frameID int64, hash string) *TickBuilder {
	b.t.FrameID = frameID
	b.t.StateHash = hash
	return b
}

// Channel appends one observation channel and its row value.
func (b *TickBuilder) Channel(key, dtype string, value any) *TickBuilder {
	b.t.Channels = append(b.t.Channels, tick.Channel{Key: key, DType: dtype})
	b.t.Row = append(b.t.Row, value)
	return b
}

// JSONResource sets a raw JSON resource on the snapshot maps.
func (b *TickBuilder) JSONResource(tag, raw string) *TickBuilder {
	if b.t.Resources.JSON == nil {
		b.t.Resources.JSON = map[string]json.RawMessage{}
	}
	b.t.Resources.JSON[tag] = json.RawMessage(raw)
	return b
}

// Fixed64 sets a fixed-point resource on the snapshot maps.
func (b *TickBuilder) Fixed64(tag, value string) *TickBuilder {
	if b.t.Resources.Fixed64 == nil {
		b.t.Resources.Fixed64 = map[string]string{}
	}
	b.t.Resources.Fixed64[tag] = value
	return b
}

// Value sets a generic scalar resource on the snapshot maps.
func (b *TickBuilder) Value(tag string, v any) *TickBuilder {
	if b.t.Resources.Value == nil {
		b.t.Resources.Value = map[string]any{}
	}
	b.t.Resources.Value[tag] = v
	return b
}

// Op appends a patch op; the tick becomes a patch record.
func (b *TickBuilder) Op(op tick.PatchOp) *TickBuilder {
	b.t.Patch = append(b.t.Patch, op)
	b.t.HasPatch = true
	return b
}

// Patched marks the tick as carrying a (possibly empty) patch.
func (b *TickBuilder) Patched() *TickBuilder {
	b.t.HasPatch = true
	if b.t.Patch == nil {
		b.t.Patch = []tick.PatchOp{}
	}
	return b
}

// Build returns the assembled record.
func (b *TickBuilder) Build() *tick.Tick {
	t := b.t
	return &t
}

// SetJSONOp builds a set_resource_json patch op.
func SetJSONOp(tag, raw string) tick.PatchOp {
	return tick.PatchOp{Op: tick.OpSetResourceJSON, Tag: tag, Value: json.RawMessage(raw)}
}

// SetFixed64Op builds a set_resource_fixed64 patch op.
func SetFixed64Op(tag, decimal string) tick.PatchOp {
	return tick.PatchOp{Op: tick.OpSetResourceFixed64, Tag: tag, Value: json.RawMessage(fmt.Sprintf("%q", decimal))}
}

// SetValueOp builds a set_resource_value patch op from raw JSON.
func SetValueOp(tag, rawValue string) tick.PatchOp {
	return tick.PatchOp{Op: tick.OpSetResourceValue, Tag: tag, Value: json.RawMessage(rawValue)}
}

// SetComponentOp builds a set_component_json patch op.
func SetComponentOp(entity int64, component, raw string) tick.PatchOp {
	return tick.PatchOp{
		Op:        tick.OpSetComponentJSON,
		Entity:    json.Number(fmt.Sprintf("%d", entity)),
		Component: component,
		Value:     json.RawMessage(raw),
	}
}

// RemoveComponentOp builds a remove_component patch op.
func RemoveComponentOp(entity int64, component string) tick.PatchOp {
	return tick.PatchOp{
		Op:        tick.OpRemoveComponent,
		Entity:    json.Number(fmt.Sprintf("%d", entity)),
		Component: component,
	}
}
