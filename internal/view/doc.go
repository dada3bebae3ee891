// Package view defines the normalized view objects handed to the
// external renderer, and the strict per-kind validation that produces
// them from raw engine payloads.
//
// Five kinds exist: graph, space2d, table, text, structure. Each kind
// has exactly one normalized Go shape; whatever aliases the wire format
// allows (matrix tables, bare-string text) are folded into that shape
// during parsing. A normalized object re-serialized to JSON is accepted
// unchanged by the same parser, which keeps cached views and journal
// replays stable.
//
// Validation is strict and total per payload: either the payload yields
// a complete valid object or it yields a typed error and no object.
// The only soft spot is structure views, where dangling edges produce
// warnings rather than failure, matching how engines commonly emit
// node-graphs incrementally.
package view
