package schema

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/vantage-sim/vantage/internal/view"
)

// shapeSource declares one CUE definition per view kind. The structs are
// deliberately open ("..."): engines attach extension fields and a shape
// mismatch on a field we do not read must not reject the payload.
const shapeSource = `
#Axis: {
	label?: string
	unit?:  string
	kind?:  string
	...
}

#Graph: {
	schema: string
	axis?: {x?: #Axis, y?: #Axis, ...}
	sample?: {var?: string, unit?: string, ...}
	series: [...{
		id?:    string
		label?: string
		points: [...{x: number, y: number, ...}]
		...
	}]
	view?: {...}
	meta?: {...}
	...
}

#Space2D: {
	points?: [...{x: number, y: number, r?: number, color?: string, ...}]
	shapes?: [...{form: string, x: number, y: number, w?: number, h?: number, ...}]
	drawlist?: [...{op: string, args?: [...number], ...}]
	...
}

#Table: {
	columns: [...string]
	rows: [...[..._]]
	...
} | {
	matrix: {
		values: [...[..._]]
		row_labels?: [...string]
		col_labels?: [...string]
		...
	}
	...
}

#Text: string | {
	content: string
	format?: string
	...
}

#Structure: {
	nodes: [...{id: string, label?: string, ...}]
	edges: [...{from: string, to: string, label?: string, ...}]
	...
}
`

// Gate checks a raw payload against the declarative shape of a view
// kind before field-level validation runs. JSON is a subset of CUE, so
// payloads compile directly and unify against the definitions.
type Gate struct {
	ctx    *cue.Context
	shapes map[view.Kind]cue.Value
}

// NewGate compiles the shape definitions. Compilation failure is a
// programming error in shapeSource, not an input condition.
func NewGate() (*Gate, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(shapeSource, cue.Filename("viewshapes.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile view shapes: %w", err)
	}

	shapes := make(map[view.Kind]cue.Value, len(view.Kinds))
	for kind, def := range map[view.Kind]string{
		view.KindGraph:     "#Graph",
		view.KindSpace2D:   "#Space2D",
		view.KindTable:     "#Table",
		view.KindText:      "#Text",
		view.KindStructure: "#Structure",
	} {
		v := root.LookupPath(cue.ParsePath(def))
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("lookup %s: %w", def, err)
		}
		shapes[kind] = v
	}
	return &Gate{ctx: ctx, shapes: shapes}, nil
}

// ShapeError reports a shape mismatch with CUE's positioned detail.
type ShapeError struct {
	ViewKind view.Kind
	Detail   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s payload shape: %s", e.ViewKind, e.Detail)
}

// Check unifies a payload against the shape for kind. A nil error means
// the payload is structurally plausible; field-level validation still
// applies afterwards.
func (g *Gate) Check(kind view.Kind, raw []byte) error {
	shape, ok := g.shapes[kind]
	if !ok {
		return fmt.Errorf("no shape for kind %s", kind)
	}
	data := g.ctx.CompileBytes(raw, cue.Filename("payload.json"))
	if err := data.Err(); err != nil {
		return &ShapeError{ViewKind: kind, Detail: cueerrors.Details(err, nil)}
	}
	unified := shape.Unify(data)
	if err := unified.Validate(cue.Concrete(true), cue.Final()); err != nil {
		return &ShapeError{ViewKind: kind, Detail: cueerrors.Details(err, nil)}
	}
	return nil
}
