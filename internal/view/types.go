package view

// Kind identifies one of the five renderable view kinds.
// KindNone means "stored but never rendered".
type Kind int

const (
	KindNone Kind = iota
	KindGraph
	KindSpace2D
	KindTable
	KindText
	KindStructure
)

// Kinds lists all renderable kinds in a stable order.
var Kinds = []Kind{KindGraph, KindSpace2D, KindTable, KindText, KindStructure}

// String returns the lowercase name used in schema ids, override tables,
// and log lines.
func (k Kind) String() string {
	switch k {
	case KindGraph:
		return "graph"
	case KindSpace2D:
		return "space2d"
	case KindTable:
		return "table"
	case KindText:
		return "text"
	case KindStructure:
		return "structure"
	default:
		return "none"
	}
}

// KindFromString maps a view kind name to its Kind.
// Unknown names map to KindNone.
func KindFromString(s string) Kind {
	switch s {
	case "graph":
		return KindGraph
	case "space2d":
		return KindSpace2D
	case "table":
		return KindTable
	case "text":
		return KindText
	case "structure":
		return KindStructure
	default:
		return KindNone
	}
}

// Object is the sealed union of normalized view objects.
// Only the five types in this package implement it.
type Object interface {
	Kind() Kind
	viewObject()
}

// Point is one (x, y) sample of a graph series.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AxisSpec carries the unit/kind metadata of one axis. Unit and
// AxisKind participate in compare-mode compatibility checks, so two
// graphs that merely label an axis differently still compare.
type AxisSpec struct {
	Label    string `json:"label,omitempty"`
	Unit     string `json:"unit,omitempty"`
	AxisKind string `json:"kind,omitempty"`
}

// Axis describes both axes of a graph.
type Axis struct {
	X AxisSpec `json:"x"`
	Y AxisSpec `json:"y"`
}

// SampleSpec names the sampled variable a graph was recorded against
// (e.g. time, iteration count).
type SampleSpec struct {
	Var  string `json:"var,omitempty"`
	Unit string `json:"unit,omitempty"`
}

// Series is one plottable line of a graph.
type Series struct {
	ID     string  `json:"id,omitempty"`
	Label  string  `json:"label,omitempty"`
	Points []Point `json:"points"`
}

// Meta carries rendering hints attached by the engine. Update controls
// run merging downstream: "append" concatenates onto a matching run
// instead of creating a new one.
type Meta struct {
	Update string `json:"update,omitempty"`
}

// Bounds is an axis-aligned extent over a set of points.
type Bounds struct {
	MinX float64 `json:"min_x"`
	MaxX float64 `json:"max_x"`
	MinY float64 `json:"min_y"`
	MaxY float64 `json:"max_y"`
}

// Graph is the normalized graph view object.
type Graph struct {
	Schema string      `json:"schema"`
	Axis   *Axis       `json:"axis,omitempty"`
	Sample *SampleSpec `json:"sample,omitempty"`
	Series []Series    `json:"series"`
	View   *Viewport   `json:"view,omitempty"`
	Meta   *Meta       `json:"meta,omitempty"`
}

func (*Graph) Kind() Kind  { return KindGraph }
func (*Graph) viewObject() {}

// Viewport is the transform the renderer applies before painting.
// The projector may update it directly from fixed64 resource bindings
// without reprocessing the view.
type Viewport struct {
	PanX    float64 `json:"pan_x"`
	PanY    float64 `json:"pan_y"`
	Zoom    float64 `json:"zoom"`
	AutoFit bool    `json:"auto_fit"`
	RectX   float64 `json:"rect_x,omitempty"`
	RectY   float64 `json:"rect_y,omitempty"`
	RectW   float64 `json:"rect_w,omitempty"`
	RectH   float64 `json:"rect_h,omitempty"`
}

// ScenePoint is one point of a 2D scene.
type ScenePoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	R     float64 `json:"r,omitempty"`
	Color string  `json:"color,omitempty"`
}

// Shape is one primitive of a 2D scene.
type Shape struct {
	Form  string  `json:"form"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	W     float64 `json:"w,omitempty"`
	H     float64 `json:"h,omitempty"`
	Color string  `json:"color,omitempty"`
}

// DrawOp is one entry of an ordered drawlist.
type DrawOp struct {
	Op   string    `json:"op"`
	Args []float64 `json:"args,omitempty"`
}

// Space2D is the normalized 2D scene view object. At least one of
// Points, Shapes, Drawlist is non-empty in a valid scene.
type Space2D struct {
	Points   []ScenePoint `json:"points,omitempty"`
	Shapes   []Shape      `json:"shapes,omitempty"`
	Drawlist []DrawOp     `json:"drawlist,omitempty"`
}

func (*Space2D) Kind() Kind  { return KindSpace2D }
func (*Space2D) viewObject() {}

// Table is the normalized dense table view object. Matrix-form payloads
// are folded into this shape during parsing.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func (*Table) Kind() Kind  { return KindTable }
func (*Table) viewObject() {}

// Text is the normalized text view object. A bare JSON string payload
// normalizes to Format "plain".
type Text struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
}

func (*Text) Kind() Kind  { return KindText }
func (*Text) viewObject() {}

// Node is one node of a structure view.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// Edge is one edge of a structure view.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label,omitempty"`
}

// Structure is the normalized node-graph view object.
type Structure struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (*Structure) Kind() Kind  { return KindStructure }
func (*Structure) viewObject() {}
