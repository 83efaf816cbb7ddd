//go:build js && wasm

package main

import (
	"fmt"
	"image/color"
	"math"
	"syscall/js"

	"github.com/doodlepad/doodlepad/internal/engine"
)

// canvasSurface drives a CanvasRenderingContext2D.
type canvasSurface struct {
	ctx    js.Value
	stroke color.Color
}

var _ engine.Surface = (*canvasSurface)(nil)

// newCanvasSurface returns nil when the canvas has no 2D context, which leaves
// the engine drawing onto nothing.
func newCanvasSurface(canvas js.Value) engine.Surface {
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil
	}
	ctx := canvas.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil
	}
	ctx.Set("lineCap", "round")
	ctx.Set("lineJoin", "round")
	return &canvasSurface{ctx: ctx, stroke: color.Black}
}

func (s *canvasSurface) Clear() {
	canvas := s.ctx.Get("canvas")
	s.ctx.Call("save")
	s.ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
	s.ctx.Call("clearRect", 0, 0, canvas.Get("width"), canvas.Get("height"))
	s.ctx.Call("restore")
}

func (s *canvasSurface) Save()                  { s.ctx.Call("save") }
func (s *canvasSurface) Restore()               { s.ctx.Call("restore") }
func (s *canvasSurface) Translate(x, y float64) { s.ctx.Call("translate", x, y) }
func (s *canvasSurface) Rotate(radians float64) { s.ctx.Call("rotate", radians) }
func (s *canvasSurface) Scale(sx, sy float64)   { s.ctx.Call("scale", sx, sy) }
func (s *canvasSurface) BeginPath()             { s.ctx.Call("beginPath") }
func (s *canvasSurface) MoveTo(x, y float64)    { s.ctx.Call("moveTo", x, y) }
func (s *canvasSurface) LineTo(x, y float64)    { s.ctx.Call("lineTo", x, y) }

func (s *canvasSurface) Circle(x, y, r float64) {
	s.ctx.Call("moveTo", x+r, y)
	s.ctx.Call("arc", x, y, r, 0, 2*math.Pi)
}

func (s *canvasSurface) Stroke() {
	s.ctx.Set("strokeStyle", engine.CSSColor(s.stroke))
	s.ctx.Call("stroke")
}

func (s *canvasSurface) Fill()                      { s.ctx.Call("fill") }
func (s *canvasSurface) SetLineWidth(w float64)     { s.ctx.Set("lineWidth", w) }
func (s *canvasSurface) StrokeColor() color.Color   { return s.stroke }
func (s *canvasSurface) SetFillColor(c color.Color) { s.ctx.Set("fillStyle", engine.CSSColor(c)) }

func (s *canvasSurface) SetFontSize(px float64) {
	s.ctx.Set("font", fmt.Sprintf("%gpx sans-serif", px))
}

func (s *canvasSurface) FillText(text string, x, y float64) {
	s.ctx.Call("fillText", text, x, y)
}
