package tick

import (
	"encoding/json"
	"fmt"
)

// Tick is one record emitted by the simulation engine per step.
//
// Patch is optional: a nil Patch means the record is a full snapshot and
// the Resources maps describe the complete engine state. A non-nil Patch
// (possibly empty) means only the listed ops changed since the prior tick.
type Tick struct {
	TickID    int64      `json:"tick_id"`
	FrameID   int64      `json:"frame_id"`
	StateHash string     `json:"state_hash"`
	Resources Resources  `json:"resources"`
	Channels  []Channel  `json:"channels,omitempty"`
	Row       []any      `json:"row,omitempty"`
	Patch     []PatchOp  `json:"patch"`
	HasPatch  bool       `json:"-"`
}

// Resources holds the four resource maps of a tick record.
//
// JSON payloads are kept raw: schema resolution and validation happen
// downstream, and the raw string doubles as the dedup identity.
type Resources struct {
	JSON    map[string]json.RawMessage `json:"json,omitempty"`
	Fixed64 map[string]string          `json:"fixed64,omitempty"`
	Value   map[string]any             `json:"value,omitempty"`
	Handle  map[string]string          `json:"handle,omitempty"`
}

// Channel describes one observation channel. Channels are paired
// positionally with the tick's Row slice.
type Channel struct {
	Key   string `json:"key"`
	DType string `json:"dtype"`
	Role  string `json:"role,omitempty"`
	Unit  string `json:"unit,omitempty"`
}

// FrameToken returns the identity of this tick's frame.
// Sampling and journal writes are idempotent per token.
func (t *Tick) FrameToken() string {
	return fmt.Sprintf("%d:%d:%s", t.TickID, t.FrameID, t.StateHash)
}

// tickAlias avoids recursion in UnmarshalJSON.
type tickAlias Tick

// UnmarshalJSON decodes a tick record and distinguishes an absent patch
// (full snapshot) from a present-but-empty one (no-op patch). The
// distinction matters: absence forces full reprocessing, emptiness does
// nothing.
func (t *Tick) UnmarshalJSON(data []byte) error {
	var probe struct {
		Patch json.RawMessage `json:"patch"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	var a tickAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*t = Tick(a)
	t.HasPatch = probe.Patch != nil && string(probe.Patch) != "null"
	if t.HasPatch && t.Patch == nil {
		t.Patch = []PatchOp{}
	}
	return nil
}

// MarshalJSON preserves the patch-presence distinction on the way out.
func (t *Tick) MarshalJSON() ([]byte, error) {
	a := tickAlias(*t)
	if !t.HasPatch {
		a.Patch = nil
	} else if a.Patch == nil {
		a.Patch = []PatchOp{}
	}
	return json.Marshal(a)
}
