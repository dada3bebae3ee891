package projector

import (
	"math"
	"strconv"

	"github.com/vantage-sim/vantage/internal/view"
)

// BindingTarget names one live viewport field a fixed64 tag can project
// onto without full reprocessing.
type BindingTarget int

const (
	TargetAxisXMin BindingTarget = iota + 1
	TargetAxisXMax
	TargetAxisYMin
	TargetAxisYMax
	TargetPanX
	TargetPanY
	TargetZoom
	TargetRectX
	TargetRectY
	TargetRectW
	TargetRectH
)

// BindingTable maps fixed64 resource tags to viewport targets. The
// table is injected configuration; DefaultBindings covers the tags the
// stock engine emits.
type BindingTable map[string]BindingTarget

// DefaultBindings returns the stock tag mapping.
func DefaultBindings() BindingTable {
	return BindingTable{
		"view.xmin":   TargetAxisXMin,
		"view.xmax":   TargetAxisXMax,
		"view.ymin":   TargetAxisYMin,
		"view.ymax":   TargetAxisYMax,
		"view.pan.x":  TargetPanX,
		"view.pan.y":  TargetPanY,
		"view.zoom":   TargetZoom,
		"view.rect.x": TargetRectX,
		"view.rect.y": TargetRectY,
		"view.rect.w": TargetRectW,
		"view.rect.h": TargetRectH,
	}
}

// applyBinding projects a changed fixed64 value onto the live viewport
// or axis bounds. Unparseable or non-finite values are ignored: the
// previous projection stands.
func (p *Projector) applyBinding(target BindingTarget, decimal string) bool {
	f, err := strconv.ParseFloat(decimal, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	switch target {
	case TargetAxisXMin:
		p.axisBounds.MinX = f
	case TargetAxisXMax:
		p.axisBounds.MaxX = f
	case TargetAxisYMin:
		p.axisBounds.MinY = f
	case TargetAxisYMax:
		p.axisBounds.MaxY = f
	case TargetPanX:
		p.viewport.PanX = f
	case TargetPanY:
		p.viewport.PanY = f
	case TargetZoom:
		if f <= 0 {
			return false
		}
		p.viewport.Zoom = f
		p.viewport.AutoFit = false
	case TargetRectX:
		p.viewport.RectX = f
	case TargetRectY:
		p.viewport.RectY = f
	case TargetRectW:
		p.viewport.RectW = f
	case TargetRectH:
		p.viewport.RectH = f
	default:
		return false
	}
	return true
}

// Viewport returns the live renderer transform.
func (p *Projector) Viewport() view.Viewport { return p.viewport }

// AxisBounds returns the live axis bounds driven by fixed64 bindings.
func (p *Projector) AxisBounds() view.Bounds { return p.axisBounds }
