// Package tick defines the wire-level data model shared by every layer
// of the projection pipeline: the tick record emitted by the simulation
// engine, the sparse patch ops it may carry, and the observation
// channels paired with a value row.
//
// A Tick is immutable once received. All ordering between ticks uses the
// engine-assigned tick_id; ordering within a tick's patch is the array
// order, which is significant (last writer wins per key).
//
// The frame token "tick_id:frame_id:state_hash" is the identity of one
// observed engine frame. Downstream consumers (the observation lens, the
// journal) use it as an idempotency key: the same frame processed twice
// must have no additional effect.
package tick
