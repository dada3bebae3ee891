package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vantage-sim/vantage/internal/view"
)

func TestResolveFixedIDWins(t *testing.T) {
	// Payload sniffs as a table, but the exact schema id takes priority.
	r := NewResolver(Overrides{"view/graph": view.KindText})
	raw := []byte(`{"columns":["a"],"rows":[[1]]}`)
	assert.Equal(t, view.KindGraph, r.Resolve("view/graph", raw))
}

func TestResolveSniffBeforeOverrides(t *testing.T) {
	r := NewResolver(Overrides{"sim.grid": view.KindText})
	raw := []byte(`{"columns":["a"],"rows":[[1]]}`)
	assert.Equal(t, view.KindTable, r.Resolve("sim.grid", raw))
}

func TestResolveOverrideFallback(t *testing.T) {
	r := NewResolver(Overrides{"sim.population": view.KindGraph})
	raw := []byte(`{"series":[{"points":[{"x":0,"y":1}]}]}`)
	assert.Equal(t, view.KindGraph, r.Resolve("sim.population", raw))
}

func TestResolveNoMatch(t *testing.T) {
	r := NewResolver(nil)
	assert.Equal(t, view.KindNone, r.Resolve("sim.opaque", []byte(`{"blob":true}`)))
}

func TestSniff(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want view.Kind
	}{
		{"matrix", `{"matrix":{"values":[[1]]}}`, view.KindTable},
		{"columns+rows", `{"columns":[],"rows":[]}`, view.KindTable},
		{"columns only", `{"columns":[]}`, view.KindNone},
		{"nodes+edges", `{"nodes":[],"edges":[]}`, view.KindStructure},
		{"nodes only", `{"nodes":[]}`, view.KindNone},
		{"non-object", `[1,2,3]`, view.KindNone},
		{"malformed", `{`, view.KindNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sniff([]byte(tc.raw)))
		})
	}
}

func TestParseOverrides(t *testing.T) {
	table := `
# declared by the host
sim.population = graph
sim.terrain    = space2d
sim.report=text

sim.bogus = sprite
no-equals-line
= graph
sim.population = table
`
	o, err := ParseOverrides(strings.NewReader(table))
	require.NoError(t, err)

	assert.Equal(t, Overrides{
		"sim.population": view.KindTable, // later line wins
		"sim.terrain":    view.KindSpace2D,
		"sim.report":     view.KindText,
	}, o)
}

func TestParseOverridesEmpty(t *testing.T) {
	o, err := ParseOverrides(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, o)
}
