package view

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden files pin the normalized JSON handed to the renderer. Run
// `go test ./internal/view -update` to regenerate after an intentional
// contract change.
func TestNormalizedViewGolden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	cases := []struct {
		name string
		kind Kind
		raw  string
	}{
		{
			name: "graph",
			kind: KindGraph,
			raw:  `{"schema":"view/graph","axis":{"x":{"label":"time","unit":"s"},"y":{"unit":"m"}},"sample":{"var":"t"},"series":[{"id":"v","label":"velocity","points":[{"x":0,"y":1},{"x":1,"y":4}]}]}`,
		},
		{
			name: "table_matrix",
			kind: KindTable,
			raw:  `{"matrix":{"values":[[1,2],[3,4]],"row_labels":["r1","r2"]}}`,
		},
		{
			name: "text_bare",
			kind: KindText,
			raw:  `"hello"`,
		},
		{
			name: "structure",
			kind: KindStructure,
			raw:  `{"nodes":[{"id":"a","label":"alpha"},{"id":"b"}],"edges":[{"from":"a","to":"b"}]}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			obj, _, err := Parse(tc.kind, []byte(tc.raw))
			require.NoError(t, err)

			normalized, err := json.MarshalIndent(obj, "", "  ")
			require.NoError(t, err)
			g.Assert(t, tc.name, normalized)
		})
	}
}
