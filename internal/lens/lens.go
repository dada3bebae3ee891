package lens

import (
	"encoding/json"
	"log/slog"
	"math"

	"github.com/vantage-sim/vantage/internal/tick"
	"github.com/vantage-sim/vantage/internal/view"
)

// Timeline capacity bounds. Capacities outside this range are clamped;
// the range keeps the lens responsive without unbounded growth.
const (
	MinCapacity     = 240
	MaxCapacity     = 400
	DefaultCapacity = MinCapacity
)

// Reserved sample keys. These never collide with engine channel keys,
// which may not start with "__".
const (
	KeyTick  = "__tick__"
	KeyIndex = "__index__"
)

// Sample is one timeline entry: the reserved tick/index keys plus every
// finite numeric channel of the frame. Absent or non-numeric channels
// are omitted, never zero-filled.
type Sample map[string]float64

// Lens samples numeric channels into a bounded timeline.
type Lens struct {
	enabled bool

	xKey  string
	yKey  string
	y2Key string

	capacity       int
	timeline       []Sample
	nextIndex      int
	lastFrameToken string

	presets *presetState
}

// New creates a lens with the given timeline capacity, clamped to
// [MinCapacity, MaxCapacity].
func New(capacity int) *Lens {
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	if capacity > MaxCapacity {
		capacity = MaxCapacity
	}
	return &Lens{capacity: capacity, presets: newPresetState()}
}

// Capacity returns the clamped timeline capacity.
func (l *Lens) Capacity() int { return l.capacity }

// Len returns the current number of samples.
func (l *Lens) Len() int { return len(l.timeline) }

// LastFrameToken returns the token of the most recently sampled frame.
func (l *Lens) LastFrameToken() string { return l.lastFrameToken }

// Keys returns the current (x, y, y2) channel configuration.
func (l *Lens) Keys() (xKey, yKey, y2Key string) {
	return l.xKey, l.yKey, l.y2Key
}

// Enabled reports whether graph synthesis is on. Sampling runs
// regardless; the flag only gates output.
func (l *Lens) Enabled() bool { return l.enabled }

// SyncResult reports what one Sync call did.
type SyncResult struct {
	Graph        *view.Graph
	SamplePushed bool
}

// Sync observes one tick: pushes at most one sample for the frame
// (idempotent per frame token), evicts past capacity, and synthesizes
// the current lens graph.
func (l *Lens) Sync(t *tick.Tick) SyncResult {
	res := SyncResult{}
	// Only the last token needs tracking: the engine emits frames in
	// order, so a repeat is always the preceding frame re-delivered.
	token := t.FrameToken()
	if token != l.lastFrameToken {
		l.push(extract(t))
		l.lastFrameToken = token
		res.SamplePushed = true
	}
	res.Graph = l.Graph()
	return res
}

// push appends a sample and evicts from the front past capacity,
// re-sequencing ordinal indices after eviction.
func (l *Lens) push(s Sample) {
	s[KeyIndex] = float64(l.nextIndex)
	l.nextIndex++
	l.timeline = append(l.timeline, s)
	if len(l.timeline) > l.capacity {
		evict := len(l.timeline) - l.capacity
		l.timeline = append(l.timeline[:0], l.timeline[evict:]...)
		for i, smp := range l.timeline {
			smp[KeyIndex] = float64(i)
		}
		l.nextIndex = len(l.timeline)
	}
}

// Samples returns the timeline oldest-first. The slice is shared;
// callers must not mutate it.
func (l *Lens) Samples() []Sample { return l.timeline }

// Reset drops the timeline and frame gate, keeping channel config and
// presets.
func (l *Lens) Reset() {
	l.timeline = nil
	l.nextIndex = 0
	l.lastFrameToken = ""
}

// extract builds a sample from a tick's channels and row. Channels and
// row values pair positionally; a short row leaves trailing channels
// absent.
func extract(t *tick.Tick) Sample {
	s := Sample{KeyTick: float64(t.TickID)}
	for i, ch := range t.Channels {
		if i >= len(t.Row) || ch.Key == "" {
			continue
		}
		v, ok := numeric(t.Row[i])
		if !ok {
			continue
		}
		s[ch.Key] = v
	}
	return s
}

// numeric coerces a row cell to a finite float64.
func numeric(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// --- Channel configuration ---
//
// Setters demote an active named preset to "custom": the user has
// diverged from the saved tuple.

// SetEnabled toggles sampling-to-graph output.
func (l *Lens) SetEnabled(on bool) {
	if l.enabled == on {
		return
	}
	l.enabled = on
	l.presets.demote()
}

// SetXKey selects the x channel ("" or __tick__ means tick id,
// __index__ means ordinal position).
func (l *Lens) SetXKey(k string) {
	if l.xKey == k {
		return
	}
	l.xKey = k
	l.presets.demote()
}

// SetYKey selects the primary y channel.
func (l *Lens) SetYKey(k string) {
	if l.yKey == k {
		return
	}
	l.yKey = k
	l.presets.demote()
}

// SetY2Key selects the optional secondary y channel.
func (l *Lens) SetY2Key(k string) {
	if l.y2Key == k {
		return
	}
	l.y2Key = k
	l.presets.demote()
}

// apply installs a preset tuple without demotion.
func (l *Lens) apply(p Preset) {
	l.enabled = p.Enabled
	l.xKey = p.XKey
	l.yKey = p.YKey
	l.y2Key = p.Y2Key
	slog.Debug("lens preset applied", "enabled", p.Enabled, "x", p.XKey, "y", p.YKey, "y2", p.Y2Key)
}

// snapshot captures the current tuple.
func (l *Lens) snapshot() Preset {
	return Preset{Enabled: l.enabled, XKey: l.xKey, YKey: l.yKey, Y2Key: l.y2Key}
}
