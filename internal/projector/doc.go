// Package projector reconciles the simulation engine's tick stream into
// the canonical store and the downstream view surfaces.
//
// One ApplyTick call handles one tick record synchronously: a sparse
// patch replays its ops strictly in array order; a record without a
// patch is a full snapshot and reprocesses every resource. Either path
// reports effect flags so the host knows what to repaint.
//
// The error posture is "skip and continue": a malformed op is logged
// and the remaining ops of the tick still apply; a payload that fails
// validation leaves the last valid view displayed. Nothing in this
// package is fatal to the host. When incremental patching is suspected
// unreliable (a reserved tag changed), the projector discards patch
// semantics for the tick and falls back to full reprocessing, the
// universal recovery path.
package projector
