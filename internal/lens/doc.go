// Package lens implements the observation lens: an ad hoc time-series
// projection over the numeric channels a tick record carries, fully
// independent of the engine's schema-declared views.
//
// The lens keeps a bounded FIFO timeline of samples, one per distinct
// engine frame. Sampling is gated by the frame token
// "tick_id:frame_id:state_hash", so re-invoking Sync with the same tick
// pushes nothing. When the timeline overflows its capacity the oldest
// samples are evicted and ordinal indices are re-sequenced from zero.
//
// Graph synthesis pairs each sample's resolved x value (tick id,
// ordinal index, or another channel) with the configured y channels.
// Samples missing either coordinate are dropped, never interpolated.
// A non-empty lens graph takes rendering precedence over the engine's
// own declared graph.
package lens
