// Package schema routes a resource's declared or inferred schema to one
// of the five view kinds.
//
// Resolution order is fixed:
//
//  1. Exact match of the five fixed schema ids.
//  2. Structural sniff for untagged payloads: a matrix or columns+rows
//     payload is a table; a nodes+edges payload is a structure.
//  3. The user override table ("schema_id = view_kind" lines).
//  4. Otherwise KindNone: the payload is stored but never rendered.
//
// The override table is an injected dependency, not a global; callers
// construct a Resolver per session. The Gate applies a declarative CUE
// shape check to a payload before the Go-level validators in the view
// package run, so structurally hopeless payloads fail with positioned
// CUE errors instead of piecemeal field errors.
package schema
