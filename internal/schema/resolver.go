package schema

import (
	"encoding/json"

	"github.com/vantage-sim/vantage/internal/view"
)

// Resolver maps schema tags to view kinds. Zero overrides is valid:
// resolution then uses only exact ids and structural sniffing.
type Resolver struct {
	overrides Overrides
}

// NewResolver creates a resolver with the given override table.
// A nil table behaves like an empty one.
func NewResolver(o Overrides) *Resolver {
	return &Resolver{overrides: o}
}

// Resolve returns the view kind for a resource payload.
// KindNone means the payload is stored but never rendered.
func (r *Resolver) Resolve(schemaTag string, raw []byte) view.Kind {
	if k := fixedID(schemaTag); k != view.KindNone {
		return k
	}
	if k := Sniff(raw); k != view.KindNone {
		return k
	}
	if k, ok := r.overrides[schemaTag]; ok {
		return k
	}
	return view.KindNone
}

// fixedID matches the five fixed schema ids exactly.
func fixedID(tag string) view.Kind {
	switch tag {
	case view.SchemaGraph:
		return view.KindGraph
	case view.SchemaSpace2D:
		return view.KindSpace2D
	case view.SchemaTable:
		return view.KindTable
	case view.SchemaText:
		return view.KindText
	case view.SchemaStructure:
		return view.KindStructure
	default:
		return view.KindNone
	}
}

// Sniff infers a kind from payload structure for untagged resources.
// Only table and structure have unambiguous structural signatures; the
// other kinds require a tag or an override.
func Sniff(raw []byte) view.Kind {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return view.KindNone
	}
	if _, ok := probe["matrix"]; ok {
		return view.KindTable
	}
	_, hasCols := probe["columns"]
	_, hasRows := probe["rows"]
	if hasCols && hasRows {
		return view.KindTable
	}
	_, hasNodes := probe["nodes"]
	_, hasEdges := probe["edges"]
	if hasNodes && hasEdges {
		return view.KindStructure
	}
	return view.KindNone
}
