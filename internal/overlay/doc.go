// Package overlay manages renderable graph runs: z-order, visibility,
// merge semantics, and compare-mode gating.
//
// A run is one independently toggleable rendered series. Runs are
// created when a validated single-series graph is first displayed and
// destroyed on removal or reset. Two merge paths avoid run churn:
// "append" graphs concatenate points onto a matching run, and
// auto-replace mode swaps point data in place when the same source
// re-runs, preserving the run's identity (id, layer, visibility,
// opacity, compare role).
//
// Compare mode freezes one run as the baseline and admits a variant
// only when the two are observably compatible: deep-equal axis
// signatures and non-conflicting series ids. Incompatibility is a
// first-class blocked state carrying a human-readable reason, not an
// error; it recovers when the mode or source changes.
package overlay
