//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/doodlepad/doodlepad/internal/document"
	"github.com/doodlepad/doodlepad/internal/engine"
)

const (
	canvasSize  = 256
	exportScale = 4
)

var (
	eng     *engine.Engine
	palette *engine.Palette
	surface engine.Surface
	doc     js.Value
	toolbar js.Value
	canvas  js.Value
)

func main() {
	eng = engine.NewEngine()
	palette = engine.NewPalette()
	doc = js.Global().Get("document")

	buildPage()

	surface = newCanvasSurface(canvas)
	redraw := func(engine.EventKind) { eng.Redraw(surface) }
	eng.Subscribe(engine.EventDrawingChanged, redraw)
	eng.Subscribe(engine.EventToolChanged, redraw)

	canvas.Call("addEventListener", "mousedown", js.FuncOf(mouseDown))
	canvas.Call("addEventListener", "mousemove", js.FuncOf(mouseMove))
	canvas.Call("addEventListener", "mouseup", js.FuncOf(mouseUp))
	canvas.Call("addEventListener", "mouseout", js.FuncOf(mouseOut))

	// Create the engine API object
	doodleEngine := js.Global().Get("Object").New()

	// --- Commands (page → engine) ---
	doodleEngine.Set("undo", js.FuncOf(func(js.Value, []js.Value) interface{} { eng.Undo(); return nil }))
	doodleEngine.Set("redo", js.FuncOf(func(js.Value, []js.Value) interface{} { eng.Redo(); return nil }))
	doodleEngine.Set("clear", js.FuncOf(func(js.Value, []js.Value) interface{} { eng.Clear(); return nil }))
	doodleEngine.Set("selectMarker", js.FuncOf(selectMarker))
	doodleEngine.Set("selectSticker", js.FuncOf(selectSticker))
	doodleEngine.Set("addSticker", js.FuncOf(addStickerJS))
	doodleEngine.Set("loadDrawing", js.FuncOf(loadDrawing))
	doodleEngine.Set("exportPNG", js.FuncOf(func(js.Value, []js.Value) interface{} { exportPNG(); return nil }))

	// --- Queries (page ← engine) ---
	doodleEngine.Set("render", js.FuncOf(func(js.Value, []js.Value) interface{} { return eng.Render() }))
	doodleEngine.Set("getDrawing", js.FuncOf(getDrawing))
	doodleEngine.Set("canUndo", js.FuncOf(func(js.Value, []js.Value) interface{} { return eng.CanUndo() }))
	doodleEngine.Set("canRedo", js.FuncOf(func(js.Value, []js.Value) interface{} { return eng.CanRedo() }))

	js.Global().Set("doodleEngine", doodleEngine)
	js.Global().Set("doodleWasmReady", js.ValueOf(true))

	eng.Redraw(surface)

	// Keep Go runtime alive
	select {}
}

func buildPage() {
	body := doc.Get("body")
	doc.Set("title", "doodlin' pad")

	h1 := doc.Call("createElement", "h1")
	h1.Set("textContent", "doodlin' pad")
	body.Call("appendChild", h1)

	canvas = doc.Call("createElement", "canvas")
	canvas.Set("id", "doodle")
	canvas.Set("width", canvasSize)
	canvas.Set("height", canvasSize)
	canvas.Get("style").Set("border", "1px solid #888")
	canvas.Get("style").Set("cursor", "none")
	body.Call("appendChild", canvas)

	toolbar = doc.Call("createElement", "div")
	body.Call("appendChild", toolbar)

	button("clear", eng.Clear)
	button("undo", eng.Undo)
	button("redo", eng.Redo)
	button("thin", func() { eng.SelectTool(engine.Marker(engine.ThinWidth)) })
	button("thick", func() { eng.SelectTool(engine.Marker(engine.ThickWidth)) })
	for _, glyph := range palette.Stickers() {
		stickerButton(glyph)
	}
	button("custom sticker", promptSticker)
	button("export", exportPNG)
}

func button(label string, onClick func()) js.Value {
	b := doc.Call("createElement", "button")
	b.Set("textContent", label)
	b.Call("addEventListener", "click", js.FuncOf(func(js.Value, []js.Value) interface{} {
		onClick()
		return nil
	}))
	toolbar.Call("appendChild", b)
	return b
}

func stickerButton(glyph string) {
	button(glyph, func() { eng.SelectTool(engine.Sticker(glyph)) })
}

func addSticker(glyph string) error {
	t, added, err := palette.AddSticker(glyph)
	if err != nil {
		return err
	}
	if added {
		stickerButton(t.Glyph)
	}
	return eng.SelectTool(t)
}

func promptSticker() {
	answer := js.Global().Call("prompt", "Sticker text or emoji")
	if answer.Type() != js.TypeString {
		return
	}
	// An empty answer is the same as cancelling.
	addSticker(answer.String())
}

// --- Mouse handlers ---

func eventPoint(e js.Value) engine.Point {
	return engine.Pt(e.Get("offsetX").Float(), e.Get("offsetY").Float())
}

func mouseDown(this js.Value, args []js.Value) interface{} {
	p := eventPoint(args[0])
	eng.BeginStroke(p)
	eng.SetCursorPreview(p)
	return nil
}

func mouseMove(this js.Value, args []js.Value) interface{} {
	e := args[0]
	p := eventPoint(e)
	if e.Get("buttons").Int()&1 != 0 {
		eng.Extend(p)
	}
	eng.SetCursorPreview(p)
	return nil
}

func mouseUp(this js.Value, args []js.Value) interface{} {
	eng.EndStroke()
	return nil
}

func mouseOut(this js.Value, args []js.Value) interface{} {
	eng.HideCursorPreview()
	return nil
}

// exportPNG replays the history at 4× onto an offscreen canvas and downloads it.
func exportPNG() {
	off := doc.Call("createElement", "canvas")
	off.Set("width", canvasSize*exportScale)
	off.Set("height", canvasSize*exportScale)
	s := newCanvasSurface(off)
	if s == nil {
		return
	}
	s.Scale(exportScale, exportScale)
	eng.RenderOnto(s)

	a := doc.Call("createElement", "a")
	a.Set("href", off.Call("toDataURL", "image/png"))
	a.Set("download", "doodle.png")
	a.Call("click")
}

// --- API handlers ---

func selectMarker(this js.Value, args []js.Value) interface{} {
	width := engine.ThinWidth
	if len(args) > 0 && args[0].Type() == js.TypeNumber {
		width = args[0].Float()
	}
	return result(eng.SelectTool(engine.Marker(width)))
}

func selectSticker(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing glyph"})
	}
	return result(eng.SelectTool(engine.Sticker(args[0].String())))
}

func addStickerJS(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing glyph"})
	}
	return result(addSticker(args[0].String()))
}

func loadDrawing(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing drawing JSON"})
	}
	var d document.Drawing
	if err := json.Unmarshal([]byte(args[0].String()), &d); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return result(eng.LoadDrawing(&d))
}

func getDrawing(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(eng.Snapshot("", canvasSize, canvasSize))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return string(data)
}

func result(err error) interface{} {
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}
