package engine

import (
	"encoding/json"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Surface = (*Recorder)(nil)

func TestRedrawPaintsConnectedSegments(t *testing.T) {
	e := newTestEngine()
	stroke(e, Pt(10, 10), Pt(20, 10), Pt(20, 20))
	rec := NewRecorder()

	e.Redraw(rec)

	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "clear", cmds[0].Op)
	assert.Equal(t, "stroke", cmds[1].Op)
	assert.Equal(t, []PathCommand{
		{"M", 10.0, 10.0},
		{"L", 20.0, 10.0},
		{"L", 20.0, 20.0},
	}, cmds[1].Path)
	assert.Equal(t, ThinWidth, cmds[1].StrokeWidth)
}

func TestSinglePointLineDrawsEmptyPath(t *testing.T) {
	c := NewCommand(Marker(3), Pt(4, 4))
	rec := NewRecorder()

	assert.NotPanics(t, func() { c.Execute(rec, DefaultTool()) })

	cmds := rec.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, []PathCommand{{"M", 4.0, 4.0}}, cmds[0].Path)
}

func TestExecuteIsIdempotent(t *testing.T) {
	c := NewCommand(Sticker("🍕"), Pt(30, 40))
	c.Drag(Pt(40, 50))
	a, b := NewRecorder(), NewRecorder()

	c.Execute(a, DefaultTool())
	c.Execute(b, DefaultTool())
	c.Execute(b, DefaultTool())

	require.Len(t, b.Commands(), 2)
	assert.Equal(t, a.Commands()[0], b.Commands()[0])
	assert.Equal(t, a.Commands()[0], b.Commands()[1])
}

func TestStickerTransformDoesNotLeak(t *testing.T) {
	c := NewCommand(Sticker("🧀"), Pt(50, 60))
	c.Drag(Pt(50, 70))
	rec := NewRecorder()

	c.Execute(rec, DefaultTool())

	cmds := rec.Commands()
	require.Len(t, cmds, 1)
	text := cmds[0]
	assert.Equal(t, "text", text.Op)
	assert.Equal(t, "🧀", text.Text)
	assert.Equal(t, StickerSize, text.FontSize)
	assert.Equal(t, StickerOffset.X, text.X)
	assert.Equal(t, StickerOffset.Y, text.Y)

	m := Translate(50, 60).Multiply(Rotate(math.Pi / 2))
	assert.InDeltaSlice(t, m.ToSlice(), text.Transform, 1e-9)

	assert.True(t, rec.Matrix().IsIdentity())
}

func TestCursorPreviewDrawnLast(t *testing.T) {
	e := newTestEngine()
	stroke(e, Pt(0, 0), Pt(5, 5))
	require.NoError(t, e.SelectTool(Marker(ThickWidth)))
	e.SetCursorPreview(Pt(7, 8))
	rec := NewRecorder()
	rec.SetStrokeColor(color.RGBA{R: 255, A: 255})

	e.Redraw(rec)

	cmds := rec.Commands()
	require.Len(t, cmds, 3)
	last := cmds[2]
	assert.Equal(t, "fill", last.Op)
	assert.Equal(t, []PathCommand{{"A", 7.0, 8.0, ThickWidth / 2}}, last.Path)
	assert.Equal(t, "rgba(255,0,0,1)", last.Fill)
}

func TestStickerCursorPreviewIsUnrotated(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.SelectTool(Sticker("🌮")))
	e.SetCursorPreview(Pt(12, 13))
	rec := NewRecorder()

	e.Redraw(rec)

	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, "text", cmds[1].Op)
	assert.Equal(t, "🌮", cmds[1].Text)
	assert.Equal(t, Translate(12, 13).ToSlice(), cmds[1].Transform)
}

func TestCursorPreviewIsNotHistory(t *testing.T) {
	e := newTestEngine()
	e.SetCursorPreview(Pt(1, 1))

	assert.Empty(t, e.Active())
	e.Undo()
	p, ok := e.Cursor()
	assert.True(t, ok)
	assert.Equal(t, Pt(1, 1), p)

	e.HideCursorPreview()
	_, ok = e.Cursor()
	assert.False(t, ok)
}

func TestRenderingScalesGeometry(t *testing.T) {
	e := newTestEngine()
	stroke(e, Pt(10, 10), Pt(20, 10), Pt(20, 20))
	require.NoError(t, e.SelectTool(Sticker("🧀")))
	stroke(e, Pt(40, 40), Pt(50, 50))

	base := NewRecorder()
	e.RenderOnto(base)

	for _, k := range []float64{0.5, 2, 4} {
		scaled := NewRecorder()
		scaled.Scale(k, k)
		e.RenderOnto(scaled)

		b, s := base.Commands(), scaled.Commands()
		require.Len(t, s, len(b))

		assert.InDelta(t, b[0].StrokeWidth*k, s[0].StrokeWidth, 1e-9)
		for i := range b[0].Path {
			assert.InDelta(t, b[0].Path[i][1].(float64)*k, s[0].Path[i][1].(float64), 1e-9)
			assert.InDelta(t, b[0].Path[i][2].(float64)*k, s[0].Path[i][2].(float64), 1e-9)
		}

		bm, sm := matrixOf(b[1].Transform), matrixOf(s[1].Transform)
		assert.InDelta(t, bm.ScaleFactor()*k, sm.ScaleFactor(), 1e-9)
		bx, by := bm.TransformPoint(b[1].X, b[1].Y)
		sx, sy := sm.TransformPoint(s[1].X, s[1].Y)
		assert.InDelta(t, bx*k, sx, 1e-9)
		assert.InDelta(t, by*k, sy, 1e-9)
	}
}

func TestRenderJSON(t *testing.T) {
	e := newTestEngine()
	assert.JSONEq(t, `[{"op":"clear"}]`, e.Render())

	stroke(e, Pt(1, 2), Pt(3, 4))
	var cmds []DrawCommand
	require.NoError(t, json.Unmarshal([]byte(e.Render()), &cmds))
	require.Len(t, cmds, 2)
	assert.Equal(t, "stroke", cmds[1].Op)
	assert.Equal(t, "rgba(0,0,0,1)", cmds[1].Stroke)
}

func TestRestoreWithoutSave(t *testing.T) {
	rec := NewRecorder()
	rec.Translate(3, 4)

	rec.Restore()

	assert.Equal(t, Translate(3, 4), rec.Matrix())
}

func matrixOf(s []float64) Matrix2D {
	var m Matrix2D
	copy(m[:], s)
	return m
}
