package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGraphValid(t *testing.T) {
	raw := []byte(`{
		"schema": "view/graph",
		"axis": {"x": {"unit": "s"}, "y": {"unit": "m"}},
		"series": [{"id": "v", "label": "velocity", "points": [{"x": 0, "y": 1}, {"x": 1, "y": 2}]}]
	}`)
	g, err := ParseGraph(raw)
	require.NoError(t, err)
	assert.Equal(t, "view/graph", g.Schema)
	require.Len(t, g.Series, 1)
	assert.Len(t, g.Series[0].Points, 2)
	assert.Equal(t, "s", g.Axis.X.Unit)
}

func TestParseGraphRejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"no schema", `{"series":[{"points":[{"x":0,"y":1}]}]}`},
		{"wrong fixed schema", `{"schema":"view/table","series":[{"points":[{"x":0,"y":1}]}]}`},
		{"no series", `{"schema":"view/graph","series":[]}`},
		{"empty points", `{"schema":"view/graph","series":[{"points":[]}]}`},
		{"non-finite pan", `{"schema":"view/graph","series":[{"points":[{"x":0,"y":1}]}],"view":{"zoom":1,"pan_x":1e999}}`},
		{"non-finite rect", `{"schema":"view/graph","series":[{"points":[{"x":0,"y":1}]}],"view":{"zoom":1,"rect_w":1e999}}`},
		{"malformed", `{"schema":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseGraph([]byte(tc.raw))
			require.Error(t, err)
			var ve *ValidationError
			if assert.ErrorAs(t, err, &ve) {
				assert.Equal(t, KindGraph, ve.ViewKind)
			}
		})
	}
}

func TestParseSpace2DNeedsContent(t *testing.T) {
	_, err := ParseSpace2D([]byte(`{}`))
	assert.Error(t, err)

	s, err := ParseSpace2D([]byte(`{"points":[{"x":1,"y":2}]}`))
	require.NoError(t, err)
	assert.Len(t, s.Points, 1)

	s, err = ParseSpace2D([]byte(`{"shapes":[{"form":"rect","x":0,"y":0,"w":4,"h":2}]}`))
	require.NoError(t, err)
	assert.Len(t, s.Shapes, 1)

	s, err = ParseSpace2D([]byte(`{"drawlist":[{"op":"line","args":[0,0,1,1]}]}`))
	require.NoError(t, err)
	assert.Len(t, s.Drawlist, 1)
}

func TestParseSpace2DRejectsNonFinite(t *testing.T) {
	// 1e999 overflows float64 to +Inf during decoding.
	_, err := ParseSpace2D([]byte(`{"points":[{"x":1e999,"y":0}]}`))
	assert.Error(t, err)
}

func TestParseTableDense(t *testing.T) {
	tbl, err := ParseTable([]byte(`{"columns":["a","b"],"rows":[[1,"x"],[2,"y"]]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Columns)
	assert.Len(t, tbl.Rows, 2)
}

func TestParseTableRejectsRaggedRows(t *testing.T) {
	_, err := ParseTable([]byte(`{"columns":["a","b"],"rows":[[1]]}`))
	assert.Error(t, err)
}

func TestParseTableMatrixDefaultColumns(t *testing.T) {
	tbl, err := ParseTable([]byte(`{"matrix":{"values":[[1,2],[3,4]]}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, tbl.Columns)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []any{float64(1), float64(2)}, tbl.Rows[0])
}

func TestParseTableMatrixLabels(t *testing.T) {
	tbl, err := ParseTable([]byte(`{"matrix":{
		"values":[[1,2],[3,4]],
		"row_labels":["r1","r2"],
		"col_labels":["left","right"]
	}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"row", "left", "right"}, tbl.Columns)
	assert.Equal(t, []any{"r1", float64(1), float64(2)}, tbl.Rows[0])
}

func TestParseTableMatrixLabelMismatch(t *testing.T) {
	_, err := ParseTable([]byte(`{"matrix":{"values":[[1,2]],"col_labels":["only"]}}`))
	assert.Error(t, err)
}

func TestParseTextForms(t *testing.T) {
	txt, err := ParseText([]byte(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, "hello", txt.Content)
	assert.Equal(t, "plain", txt.Format)

	txt, err = ParseText([]byte(`{"content":"# hi","format":"markdown"}`))
	require.NoError(t, err)
	assert.Equal(t, "markdown", txt.Format)
}

func TestParseStructureDanglingEdgesWarn(t *testing.T) {
	s, warns, err := ParseStructure([]byte(`{
		"nodes":[{"id":"a"},{"id":"b"}],
		"edges":[{"from":"a","to":"b"},{"from":"a","to":"ghost"}]
	}`))
	require.NoError(t, err, "dangling edges warn, never fail")
	assert.Len(t, s.Edges, 2, "dangling edge is kept")
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "ghost")
}

func TestParseStructureRequiresBothArrays(t *testing.T) {
	_, _, err := ParseStructure([]byte(`{"nodes":[{"id":"a"}]}`))
	assert.Error(t, err)
}

// Round trip: any validated object, re-serialized, is accepted
// unchanged by the same validator.
func TestRoundTripStability(t *testing.T) {
	cases := []struct {
		name string
		kind Kind
		raw  string
	}{
		{"graph", KindGraph, `{"schema":"view/graph","axis":{"x":{"unit":"s"},"y":{}},"series":[{"id":"v","points":[{"x":0,"y":1}]}]}`},
		{"space2d", KindSpace2D, `{"points":[{"x":1,"y":2,"r":0.5}],"shapes":[{"form":"rect","x":0,"y":0,"w":1,"h":1}]}`},
		{"table dense", KindTable, `{"columns":["a"],"rows":[[1]]}`},
		{"table matrix", KindTable, `{"matrix":{"values":[[1,2],[3,4]]}}`},
		{"text", KindText, `{"content":"hi","format":"plain"}`},
		{"structure", KindStructure, `{"nodes":[{"id":"a"}],"edges":[]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, _, err := Parse(tc.kind, []byte(tc.raw))
			require.NoError(t, err)

			reserialized, err := json.Marshal(first)
			require.NoError(t, err)

			second, _, err := Parse(tc.kind, reserialized)
			require.NoError(t, err, "normalized form must be accepted")
			assert.Equal(t, first, second)
		})
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range Kinds {
		assert.Equal(t, k, KindFromString(k.String()))
	}
	assert.Equal(t, KindNone, KindFromString("sprite"))
	assert.Equal(t, "none", KindNone.String())
}

func TestParseUnknownKind(t *testing.T) {
	_, _, err := Parse(KindNone, []byte(`{}`))
	assert.Error(t, err)
}
