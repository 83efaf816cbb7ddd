// Package raster renders engine commands into images with fogleman/gg.
package raster

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"

	"github.com/doodlepad/doodlepad/internal/engine"
)

var _ engine.Surface = (*Canvas)(nil)

type canvasState struct {
	matrix      engine.Matrix2D
	lineWidth   float64
	strokeColor color.Color
	fillColor   color.Color
	fontSize    float64
}

// Canvas is an engine.Surface backed by an RGBA image.
//
// gg strokes in device space, so the canvas tracks the current transform
// alongside gg's own and scales line widths by it before stroking.
type Canvas struct {
	dc         *gg.Context
	fonts      *Fonts
	background color.Color
	state      canvasState
	stack      []canvasState
}

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackground sets the color Clear fills with. Use color.Transparent for
// Canvas2D clearRect semantics.
func WithBackground(c color.Color) Option {
	return func(cv *Canvas) { cv.background = c }
}

// WithStrokeColor sets the initial stroke color.
func WithStrokeColor(c color.Color) Option {
	return func(cv *Canvas) { cv.state.strokeColor = c }
}

// WithFonts sets the font used for sticker glyphs.
func WithFonts(f *Fonts) Option {
	return func(cv *Canvas) {
		if f != nil {
			cv.fonts = f
		}
	}
}

// NewCanvas creates a width×height canvas cleared to its background.
func NewCanvas(width, height int, opts ...Option) *Canvas {
	cv := &Canvas{
		dc:         gg.NewContext(width, height),
		fonts:      DefaultFonts(),
		background: color.White,
		state: canvasState{
			matrix:      engine.Identity(),
			lineWidth:   1,
			strokeColor: color.Black,
			fillColor:   color.Black,
			fontSize:    10,
		},
	}
	for _, opt := range opts {
		opt(cv)
	}
	cv.dc.SetLineCapRound()
	cv.dc.SetLineJoinRound()
	cv.Clear()
	return cv
}

func (cv *Canvas) Width() int  { return cv.dc.Width() }
func (cv *Canvas) Height() int { return cv.dc.Height() }

// Image returns the backing image. It is not copied.
func (cv *Canvas) Image() image.Image { return cv.dc.Image() }

// EncodePNG writes the canvas as a PNG.
func (cv *Canvas) EncodePNG(w io.Writer) error { return cv.dc.EncodePNG(w) }

func (cv *Canvas) Clear() {
	cv.dc.SetColor(cv.background)
	cv.dc.Clear()
}

func (cv *Canvas) Save() {
	cv.stack = append(cv.stack, cv.state)
	cv.dc.Push()
}

func (cv *Canvas) Restore() {
	if len(cv.stack) == 0 {
		return
	}
	cv.state = cv.stack[len(cv.stack)-1]
	cv.stack = cv.stack[:len(cv.stack)-1]
	cv.dc.Pop()
}

func (cv *Canvas) Translate(x, y float64) {
	cv.state.matrix = cv.state.matrix.Multiply(engine.Translate(x, y))
	cv.dc.Translate(x, y)
}

func (cv *Canvas) Rotate(radians float64) {
	cv.state.matrix = cv.state.matrix.Multiply(engine.Rotate(radians))
	cv.dc.Rotate(radians)
}

func (cv *Canvas) Scale(sx, sy float64) {
	cv.state.matrix = cv.state.matrix.Multiply(engine.Scale(sx, sy))
	cv.dc.Scale(sx, sy)
}

func (cv *Canvas) BeginPath()          { cv.dc.ClearPath() }
func (cv *Canvas) MoveTo(x, y float64) { cv.dc.MoveTo(x, y) }
func (cv *Canvas) LineTo(x, y float64) { cv.dc.LineTo(x, y) }

func (cv *Canvas) Circle(x, y, r float64) {
	cv.dc.DrawCircle(x, y, r)
}

func (cv *Canvas) Stroke() {
	cv.dc.SetColor(cv.state.strokeColor)
	cv.dc.SetLineWidth(cv.state.lineWidth * cv.state.matrix.ScaleFactor())
	cv.dc.StrokePreserve()
}

func (cv *Canvas) Fill() {
	cv.dc.SetColor(cv.state.fillColor)
	cv.dc.FillPreserve()
}

func (cv *Canvas) SetLineWidth(w float64)       { cv.state.lineWidth = w }
func (cv *Canvas) StrokeColor() color.Color     { return cv.state.strokeColor }
func (cv *Canvas) SetStrokeColor(c color.Color) { cv.state.strokeColor = c }
func (cv *Canvas) SetFillColor(c color.Color)   { cv.state.fillColor = c }
func (cv *Canvas) SetFontSize(px float64)       { cv.state.fontSize = px }

func (cv *Canvas) FillText(text string, x, y float64) {
	cv.dc.SetFontFace(cv.fonts.Face(cv.state.fontSize))
	cv.dc.SetColor(cv.state.fillColor)
	cv.dc.DrawString(text, x, y)
}
