package store

import (
	"golang.org/x/text/unicode/norm"

	"github.com/vantage-sim/vantage/internal/view"
)

// ComponentKey identifies one component store entry.
type ComponentKey struct {
	Entity int64
	Tag    string
}

// ComponentEntry is the latest state of one (entity, component) pair.
// Raw is the NFC-normalized payload that produced Resolved; it doubles
// as the entry's dedup identity.
type ComponentEntry struct {
	Raw      string
	Schema   string
	Kind     view.Kind
	Resolved view.Object
}

// Store is the canonical holder of projection state for one session.
type Store struct {
	components map[ComponentKey]*ComponentEntry
	fixed64    map[string]string
	values     map[string]any
	rawJSON    map[string]string

	// cacheRaw holds, per view kind, the last raw string that produced
	// the kind's resource-level view. cacheView is the object it parsed
	// to. Refreshed only when the raw differs and validation succeeds.
	cacheRaw  map[view.Kind]string
	cacheView map[view.Kind]view.Object
}

// New creates an empty store.
func New() *Store {
	return &Store{
		components: make(map[ComponentKey]*ComponentEntry),
		fixed64:    make(map[string]string),
		values:     make(map[string]any),
		rawJSON:    make(map[string]string),
		cacheRaw:   make(map[view.Kind]string),
		cacheView:  make(map[view.Kind]view.Object),
	}
}

// SetRawJSON records the latest raw payload for a resource tag,
// rendered or not. Unresolvable payloads are stored but never rendered.
func (s *Store) SetRawJSON(tag, canonical string) {
	s.rawJSON[tag] = canonical
}

// RawJSON returns the latest raw payload for a resource tag.
func (s *Store) RawJSON(tag string) (string, bool) {
	v, ok := s.rawJSON[tag]
	return v, ok
}

// CanonicalRaw returns the NFC normalization of a raw payload string.
// All identity comparisons in the store use this form.
func CanonicalRaw(raw []byte) string {
	return norm.NFC.String(string(raw))
}

// --- Resource view cache ---

// CacheFresh reports whether the given raw payload is identical to the
// one that produced the current view for kind. A fresh cache means the
// update is a no-op: no validation, no refresh.
func (s *Store) CacheFresh(kind view.Kind, canonical string) bool {
	prev, ok := s.cacheRaw[kind]
	return ok && prev == canonical
}

// CommitView installs a validated view and records the raw string that
// produced it.
func (s *Store) CommitView(kind view.Kind, canonical string, obj view.Object) {
	s.cacheRaw[kind] = canonical
	s.cacheView[kind] = obj
}

// View returns the current resource-level view for kind, or nil.
func (s *Store) View(kind view.Kind) view.Object {
	return s.cacheView[kind]
}

// DropView clears a kind's view and cache slot.
func (s *Store) DropView(kind view.Kind) {
	delete(s.cacheRaw, kind)
	delete(s.cacheView, kind)
}

// --- Scalar stores ---

// SetFixed64 upserts a fixed-point decimal string. Returns true when
// the stored value changed (last-writer-wins per tag).
func (s *Store) SetFixed64(tag, value string) bool {
	prev, ok := s.fixed64[tag]
	if ok && prev == value {
		return false
	}
	s.fixed64[tag] = value
	return true
}

// Fixed64 returns the fixed-point value for tag.
func (s *Store) Fixed64(tag string) (string, bool) {
	v, ok := s.fixed64[tag]
	return v, ok
}

// SetValue upserts an opaque scalar. Returns true when the stored value
// changed. Comparison is shallow: only comparable scalars dedupe, which
// matches the generic value store's contract.
func (s *Store) SetValue(tag string, value any) bool {
	prev, ok := s.values[tag]
	if ok && scalarEqual(prev, value) {
		return false
	}
	s.values[tag] = value
	return true
}

// Value returns the generic scalar for tag.
func (s *Store) Value(tag string) (any, bool) {
	v, ok := s.values[tag]
	return v, ok
}

func scalarEqual(a, b any) bool {
	switch a.(type) {
	case string, bool, float64, int64, int, nil:
		return a == b
	default:
		return false
	}
}

// --- Component entries ---

// SetComponent creates or overwrites a component entry.
func (s *Store) SetComponent(key ComponentKey, e *ComponentEntry) {
	s.components[key] = e
}

// Component returns the entry for key, or nil.
func (s *Store) Component(key ComponentKey) *ComponentEntry {
	return s.components[key]
}

// RemoveComponent deletes a component entry. Returns the removed entry
// so the caller can clear any view derived from it.
func (s *Store) RemoveComponent(key ComponentKey) *ComponentEntry {
	e, ok := s.components[key]
	if !ok {
		return nil
	}
	delete(s.components, key)
	return e
}

// ComponentCount returns the number of live component entries.
func (s *Store) ComponentCount() int {
	return len(s.components)
}

// Reset clears all state. Used when full reprocessing must start from a
// clean slate (e.g. a generation change).
func (s *Store) Reset() {
	s.components = make(map[ComponentKey]*ComponentEntry)
	s.fixed64 = make(map[string]string)
	s.values = make(map[string]any)
	s.rawJSON = make(map[string]string)
	s.cacheRaw = make(map[view.Kind]string)
	s.cacheView = make(map[view.Kind]view.Object)
}
