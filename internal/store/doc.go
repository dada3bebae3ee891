// Package store holds the canonical projection state: the latest raw
// payload per resource and component key, the two resource scalar maps,
// and the per-kind view cache.
//
// The store is an explicit context record passed to every component
// that needs it; there are no package-level singletons. It is not
// safe for concurrent use and does not lock: the host model runs engine
// step, patch apply, and view updates synchronously within one host-loop
// task per tick, so the store is never accessed concurrently.
//
// Dedup is by raw-string identity, not deep equality. Raw strings are
// NFC-normalized before comparison so two byte encodings of the same
// text do not force a spurious view refresh.
package store
