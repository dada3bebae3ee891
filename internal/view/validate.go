package view

import (
	"encoding/json"
	"fmt"
)

// Fixed schema ids recognized by exact match during routing. An engine
// that tags a resource with one of these gets that kind without sniffing
// or overrides.
const (
	SchemaGraph     = "view/graph"
	SchemaSpace2D   = "view/space2d"
	SchemaTable     = "view/table"
	SchemaText      = "view/text"
	SchemaStructure = "view/structure"
)

// SchemaID returns the fixed schema id for a kind, or "" for KindNone.
func SchemaID(k Kind) string {
	switch k {
	case KindGraph:
		return SchemaGraph
	case KindSpace2D:
		return SchemaSpace2D
	case KindTable:
		return SchemaTable
	case KindText:
		return SchemaText
	case KindStructure:
		return SchemaStructure
	default:
		return ""
	}
}

// ValidationError reports why a payload failed validation for a kind.
// A failed validation drops that kind's update for the tick; the last
// valid view stays displayed.
type ValidationError struct {
	ViewKind Kind
	Field    string
	Message  string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.ViewKind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.ViewKind, e.Message)
}

func invalid(k Kind, field, format string, args ...any) error {
	return &ValidationError{ViewKind: k, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Parse validates a raw payload as the given kind and returns the
// normalized object. Warnings are non-fatal findings (currently only
// dangling structure edges).
func Parse(kind Kind, raw []byte) (Object, []string, error) {
	switch kind {
	case KindGraph:
		g, err := ParseGraph(raw)
		return objOrNil(g, err), nil, err
	case KindSpace2D:
		s, err := ParseSpace2D(raw)
		return objOrNil(s, err), nil, err
	case KindTable:
		t, err := ParseTable(raw)
		return objOrNil(t, err), nil, err
	case KindText:
		t, err := ParseText(raw)
		return objOrNil(t, err), nil, err
	case KindStructure:
		s, warns, err := ParseStructure(raw)
		return objOrNil(s, err), warns, err
	default:
		return nil, nil, invalid(kind, "", "not a renderable kind")
	}
}

// objOrNil keeps a typed-nil pointer out of the Object interface value.
func objOrNil[T Object](v T, err error) Object {
	if err != nil {
		return nil
	}
	return v
}

// ParseGraph validates and normalizes a graph payload.
// A valid graph declares a schema tag and has at least one series, each
// with at least one finite point.
func ParseGraph(raw []byte) (*Graph, error) {
	var g Graph
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, invalid(KindGraph, "", "malformed JSON: %v", err)
	}
	if g.Schema == "" {
		return nil, invalid(KindGraph, "schema", "schema tag is required")
	}
	if id := fixedKindFor(g.Schema); id != KindNone && id != KindGraph {
		return nil, invalid(KindGraph, "schema", "schema %q declares a %s view", g.Schema, id)
	}
	if len(g.Series) == 0 {
		return nil, invalid(KindGraph, "series", "at least one series is required")
	}
	for i, s := range g.Series {
		if len(s.Points) == 0 {
			return nil, invalid(KindGraph, fmt.Sprintf("series[%d].points", i), "series has no points")
		}
		for j, p := range s.Points {
			if !finite(p.X) || !finite(p.Y) {
				return nil, invalid(KindGraph, fmt.Sprintf("series[%d].points[%d]", i, j), "non-finite coordinate")
			}
		}
	}
	if g.View != nil {
		v := g.View
		for _, f := range []float64{v.PanX, v.PanY, v.Zoom, v.RectX, v.RectY, v.RectW, v.RectH} {
			if !finite(f) {
				return nil, invalid(KindGraph, "view", "non-finite viewport transform")
			}
		}
	}
	return &g, nil
}

// ParseSpace2D validates a 2D scene payload. At least one of points,
// shapes, drawlist must be non-empty, and every required numeric field
// must be finite.
func ParseSpace2D(raw []byte) (*Space2D, error) {
	var s Space2D
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, invalid(KindSpace2D, "", "malformed JSON: %v", err)
	}
	if len(s.Points) == 0 && len(s.Shapes) == 0 && len(s.Drawlist) == 0 {
		return nil, invalid(KindSpace2D, "", "scene has no points, shapes, or drawlist")
	}
	for i, p := range s.Points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.R) {
			return nil, invalid(KindSpace2D, fmt.Sprintf("points[%d]", i), "non-finite coordinate")
		}
	}
	for i, sh := range s.Shapes {
		if sh.Form == "" {
			return nil, invalid(KindSpace2D, fmt.Sprintf("shapes[%d].form", i), "shape form is required")
		}
		if !finite(sh.X) || !finite(sh.Y) || !finite(sh.W) || !finite(sh.H) {
			return nil, invalid(KindSpace2D, fmt.Sprintf("shapes[%d]", i), "non-finite geometry")
		}
	}
	for i, op := range s.Drawlist {
		if op.Op == "" {
			return nil, invalid(KindSpace2D, fmt.Sprintf("drawlist[%d].op", i), "draw op is required")
		}
		for j, a := range op.Args {
			if !finite(a) {
				return nil, invalid(KindSpace2D, fmt.Sprintf("drawlist[%d].args[%d]", i, j), "non-finite argument")
			}
		}
	}
	return &s, nil
}

// matrixTable is the alternate wire form for tables.
type matrixTable struct {
	Values    [][]any  `json:"values"`
	RowLabels []string `json:"row_labels,omitempty"`
	ColLabels []string `json:"col_labels,omitempty"`
}

// ParseTable validates a table payload and normalizes both accepted wire
// forms into the dense {columns, rows} shape. Matrix values without
// col_labels get default column names c1..cN; row_labels, when present,
// become a leading "row" column.
func ParseTable(raw []byte) (*Table, error) {
	var probe struct {
		Columns []string        `json:"columns"`
		Rows    [][]any         `json:"rows"`
		Matrix  json.RawMessage `json:"matrix"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, invalid(KindTable, "", "malformed JSON: %v", err)
	}

	if probe.Matrix != nil {
		var m matrixTable
		if err := json.Unmarshal(probe.Matrix, &m); err != nil {
			return nil, invalid(KindTable, "matrix", "malformed matrix: %v", err)
		}
		return normalizeMatrix(m)
	}

	if probe.Columns == nil || probe.Rows == nil {
		return nil, invalid(KindTable, "", "table needs columns+rows or matrix")
	}
	width := len(probe.Columns)
	for i, row := range probe.Rows {
		if len(row) != width {
			return nil, invalid(KindTable, fmt.Sprintf("rows[%d]", i), "row has %d cells, want %d", len(row), width)
		}
	}
	return &Table{Columns: probe.Columns, Rows: probe.Rows}, nil
}

func normalizeMatrix(m matrixTable) (*Table, error) {
	if len(m.Values) == 0 {
		return nil, invalid(KindTable, "matrix.values", "matrix has no values")
	}
	width := len(m.Values[0])
	for i, row := range m.Values {
		if len(row) != width {
			return nil, invalid(KindTable, fmt.Sprintf("matrix.values[%d]", i), "ragged matrix row")
		}
	}

	cols := m.ColLabels
	if len(cols) == 0 {
		cols = make([]string, width)
		for i := range cols {
			cols[i] = fmt.Sprintf("c%d", i+1)
		}
	} else if len(cols) != width {
		return nil, invalid(KindTable, "matrix.col_labels", "%d labels for %d columns", len(cols), width)
	}

	if len(m.RowLabels) == 0 {
		return &Table{Columns: cols, Rows: m.Values}, nil
	}
	if len(m.RowLabels) != len(m.Values) {
		return nil, invalid(KindTable, "matrix.row_labels", "%d labels for %d rows", len(m.RowLabels), len(m.Values))
	}

	labeled := &Table{Columns: append([]string{"row"}, cols...)}
	for i, row := range m.Values {
		labeled.Rows = append(labeled.Rows, append([]any{m.RowLabels[i]}, row...))
	}
	return labeled, nil
}

// ParseText validates a text payload. Accepts a bare JSON string or a
// {content, format} object; a bare string normalizes to format "plain".
func ParseText(raw []byte) (*Text, error) {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return &Text{Content: bare, Format: "plain"}, nil
	}
	var t Text
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, invalid(KindText, "", "neither a string nor a content object: %v", err)
	}
	if t.Format == "" {
		t.Format = "plain"
	}
	return &t, nil
}

// ParseStructure validates a node-graph payload. Edges referencing
// unknown node ids are dangling: kept, but reported as warnings so the
// renderer can still paint a partial graph.
func ParseStructure(raw []byte) (*Structure, []string, error) {
	var s Structure
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, nil, invalid(KindStructure, "", "malformed JSON: %v", err)
	}
	if s.Nodes == nil || s.Edges == nil {
		return nil, nil, invalid(KindStructure, "", "structure needs nodes[] and edges[]")
	}
	ids := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			return nil, nil, invalid(KindStructure, fmt.Sprintf("nodes[%d].id", i), "node id is required")
		}
		ids[n.ID] = true
	}
	var warns []string
	for i, e := range s.Edges {
		if !ids[e.From] {
			warns = append(warns, fmt.Sprintf("edges[%d]: dangling from %q", i, e.From))
		}
		if !ids[e.To] {
			warns = append(warns, fmt.Sprintf("edges[%d]: dangling to %q", i, e.To))
		}
	}
	return &s, warns, nil
}

// fixedKindFor maps a fixed schema id to its kind, KindNone for any
// other tag.
func fixedKindFor(schema string) Kind {
	switch schema {
	case SchemaGraph:
		return KindGraph
	case SchemaSpace2D:
		return KindSpace2D
	case SchemaTable:
		return KindTable
	case SchemaText:
		return KindText
	case SchemaStructure:
		return KindStructure
	default:
		return KindNone
	}
}
