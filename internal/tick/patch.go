package tick

import "encoding/json"

// Patch op kinds understood by the current projector. Unknown kinds are
// skipped during apply so newer engines stay compatible with older
// viewers.
const (
	OpSetResourceJSON    = "set_resource_json"
	OpSetResourceFixed64 = "set_resource_fixed64"
	OpSetResourceValue   = "set_resource_value"
	OpSetComponentJSON   = "set_component_json"
	OpRemoveComponent    = "remove_component"
)

// PatchOp is one entry of a tick's ordered op list.
//
// The union is tag-discriminated on Op. Fields not used by a given kind
// stay zero. Ops apply strictly in array order within one tick; two ops
// targeting the same key resolve last-writer-wins.
type PatchOp struct {
	Op        string          `json:"op"`
	Tag       string          `json:"tag,omitempty"`
	Entity    json.Number     `json:"entity,omitempty"`
	Component string          `json:"component,omitempty"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// KnownOp reports whether the op kind is one this projector understands.
func KnownOp(op string) bool {
	switch op {
	case OpSetResourceJSON, OpSetResourceFixed64, OpSetResourceValue,
		OpSetComponentJSON, OpRemoveComponent:
		return true
	}
	return false
}
