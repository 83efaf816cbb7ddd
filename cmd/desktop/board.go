package main

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/doodlepad/doodlepad/internal/engine"
	"github.com/doodlepad/doodlepad/internal/raster"
)

// board shows an engine's drawing and feeds it mouse input. The drawing has a
// fixed logical size; the widget can be any size and maps between the two.
type board struct {
	widget.BaseWidget

	mu     sync.Mutex
	eng    *engine.Engine
	dirty  bool
	fonts  *raster.Fonts
	width  float32
	height float32
	image  *canvas.Raster
}

var _ fyne.Widget = (*board)(nil)
var _ fyne.Draggable = (*board)(nil)
var _ desktop.Mouseable = (*board)(nil)
var _ desktop.Hoverable = (*board)(nil)

func newBoard(eng *engine.Engine, fonts *raster.Fonts, width, height int) *board {
	b := &board{eng: eng, fonts: fonts, width: float32(width), height: float32(height)}
	markDirty := func(engine.EventKind) { b.dirty = true }
	eng.Subscribe(engine.EventDrawingChanged, markDirty)
	eng.Subscribe(engine.EventToolChanged, markDirty)

	b.image = canvas.NewRaster(b.draw)
	b.image.SetMinSize(fyne.NewSize(b.width, b.height))
	b.ExtendBaseWidget(b)
	return b
}

// do runs fn against the engine and repaints once if anything changed.
func (b *board) do(fn func(e *engine.Engine)) {
	b.mu.Lock()
	b.dirty = false
	fn(b.eng)
	dirty := b.dirty
	b.mu.Unlock()
	if dirty {
		b.image.Refresh()
	}
}

// draw renders at the raster's pixel size, so the drawing stays sharp on
// high-density displays.
func (b *board) draw(w, h int) image.Image {
	cv := raster.NewCanvas(w, h, raster.WithFonts(b.fonts))
	cv.Scale(float64(w)/float64(b.width), float64(h)/float64(b.height))
	b.mu.Lock()
	b.eng.Redraw(cv)
	b.mu.Unlock()
	return cv.Image()
}

// RenderOnto lets the board act as an export source.
func (b *board) RenderOnto(s engine.Surface) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.eng.RenderOnto(s)
}

func (b *board) toDrawing(pos fyne.Position) engine.Point {
	size := b.Size()
	if size.Width == 0 || size.Height == 0 {
		return engine.Pt(float64(pos.X), float64(pos.Y))
	}
	return engine.Pt(
		float64(pos.X*b.width/size.Width),
		float64(pos.Y*b.height/size.Height),
	)
}

func (b *board) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(b.image)
}

func (b *board) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p := b.toDrawing(e.Position)
	b.do(func(eng *engine.Engine) {
		eng.BeginStroke(p)
		eng.SetCursorPreview(p)
	})
}

func (b *board) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.do(func(eng *engine.Engine) { eng.EndStroke() })
}

func (b *board) Dragged(e *fyne.DragEvent) {
	p := b.toDrawing(e.Position)
	b.do(func(eng *engine.Engine) {
		eng.Extend(p)
		eng.SetCursorPreview(p)
	})
}

func (b *board) DragEnd() {
	b.do(func(eng *engine.Engine) { eng.EndStroke() })
}

func (b *board) MouseIn(e *desktop.MouseEvent) { b.MouseMoved(e) }

func (b *board) MouseMoved(e *desktop.MouseEvent) {
	p := b.toDrawing(e.Position)
	b.do(func(eng *engine.Engine) { eng.SetCursorPreview(p) })
}

func (b *board) MouseOut() {
	b.do(func(eng *engine.Engine) { eng.HideCursorPreview() })
}
