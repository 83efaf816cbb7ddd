package session

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlepad/doodlepad/internal/engine"
)

func newTestSession() *Session {
	return New("sess_test", Config{Width: 256, Height: 256})
}

func msg(t *testing.T, typ string, payload interface{}) *Message {
	t.Helper()
	m := &Message{Type: typ}
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		m.Payload = data
	}
	return m
}

func renderOf(t *testing.T, replies []*Message) RenderPayload {
	t.Helper()
	require.Len(t, replies, 1)
	require.Equal(t, TypeRender, replies[0].Type)
	var p RenderPayload
	require.NoError(t, json.Unmarshal(replies[0].Payload, &p))
	return p
}

func errorOf(t *testing.T, replies []*Message) string {
	t.Helper()
	require.Len(t, replies, 1)
	require.Equal(t, TypeError, replies[0].Type)
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(replies[0].Payload, &p))
	return p.Message
}

func TestStrokeProducesRenders(t *testing.T) {
	s := newTestSession()

	r := renderOf(t, s.Handle(msg(t, TypePointerDown, PointerPayload{X: 10, Y: 10, Buttons: 1})))
	assert.True(t, r.CanUndo)
	assert.False(t, r.CanRedo)

	renderOf(t, s.Handle(msg(t, TypePointerMove, PointerPayload{X: 20, Y: 10, Buttons: 1})))
	r = renderOf(t, s.Handle(msg(t, TypePointerUp, nil)))

	// clear, the line, the cursor preview
	require.Len(t, r.Ops, 3)
	assert.Equal(t, "stroke", r.Ops[1].Op)
	assert.Len(t, r.Ops[1].Path, 2)
	assert.Equal(t, "fill", r.Ops[2].Op)

	d := s.Snapshot()
	require.Len(t, d.Commands, 1)
	assert.Len(t, d.Commands[0].Points, 2)
	assert.Equal(t, 256, d.Width)
}

func TestHoverMovesCursorOnly(t *testing.T) {
	s := newTestSession()

	r := renderOf(t, s.Handle(msg(t, TypePointerMove, PointerPayload{X: 5, Y: 5})))

	assert.False(t, r.CanUndo)
	require.Len(t, r.Ops, 2)
	assert.Equal(t, "fill", r.Ops[1].Op)

	r = renderOf(t, s.Handle(msg(t, TypePointerLeave, nil)))
	assert.Len(t, r.Ops, 1)

	assert.Empty(t, s.Handle(msg(t, TypePointerLeave, nil)), "already hidden")
}

func TestNoOpsSendNothing(t *testing.T) {
	s := newTestSession()

	assert.Empty(t, s.Handle(msg(t, TypePointerUp, nil)))
	assert.Empty(t, s.Handle(msg(t, TypeHistoryUndo, nil)))
	assert.Empty(t, s.Handle(msg(t, TypeHistoryRedo, nil)))
	assert.Empty(t, s.Handle(msg(t, TypeHistoryClear, nil)))
}

func TestUndoRedoClear(t *testing.T) {
	s := newTestSession()
	s.Handle(msg(t, TypePointerDown, PointerPayload{X: 1, Y: 1, Buttons: 1}))
	s.Handle(msg(t, TypePointerUp, nil))

	r := renderOf(t, s.Handle(msg(t, TypeHistoryUndo, nil)))
	assert.False(t, r.CanUndo)
	assert.True(t, r.CanRedo)

	r = renderOf(t, s.Handle(msg(t, TypeHistoryRedo, nil)))
	assert.True(t, r.CanUndo)

	r = renderOf(t, s.Handle(msg(t, TypeHistoryClear, nil)))
	assert.False(t, r.CanUndo)
	assert.False(t, r.CanRedo)
	assert.Empty(t, s.Snapshot().Commands)
}

func TestClearKeepsRedoWhenConfigured(t *testing.T) {
	s := New("sess_test", Config{Width: 8, Height: 8, ClearKeepsRedo: true})
	s.Handle(msg(t, TypePointerDown, PointerPayload{X: 1, Y: 1}))
	s.Handle(msg(t, TypePointerDown, PointerPayload{X: 2, Y: 2}))
	s.Handle(msg(t, TypeHistoryUndo, nil))

	r := renderOf(t, s.Handle(msg(t, TypeHistoryClear, nil)))

	assert.True(t, r.CanRedo)
}

func TestToolSelect(t *testing.T) {
	s := newTestSession()

	r := renderOf(t, s.Handle(msg(t, TypeToolSelect, ToolPayload{Kind: "sticker", Glyph: "🍕"})))
	assert.Equal(t, ToolPayload{Kind: "sticker", Glyph: "🍕"}, r.Tool)

	r = renderOf(t, s.Handle(msg(t, TypeToolSelect, ToolPayload{Kind: "marker", Width: engine.ThickWidth})))
	assert.Equal(t, ToolPayload{Kind: "marker", Width: engine.ThickWidth}, r.Tool)

	assert.Contains(t, errorOf(t, s.Handle(msg(t, TypeToolSelect, ToolPayload{Kind: "marker"}))), "invalid tool")
	assert.Contains(t, errorOf(t, s.Handle(msg(t, TypeToolSelect, ToolPayload{Kind: "eraser"}))), "invalid tool")
}

func TestStickerAdd(t *testing.T) {
	s := newTestSession()

	r := renderOf(t, s.Handle(msg(t, TypeStickerAdd, StickerPayload{Glyph: " 🐸 "})))
	assert.Equal(t, append(append([]string(nil), engine.DefaultStickers...), "🐸"), r.Stickers)
	assert.Equal(t, "🐸", r.Tool.Glyph)

	r = renderOf(t, s.Handle(msg(t, TypeStickerAdd, StickerPayload{Glyph: "🐸"})))
	assert.Len(t, r.Stickers, len(engine.DefaultStickers)+1)

	errorOf(t, s.Handle(msg(t, TypeStickerAdd, StickerPayload{Glyph: "  "})))
}

func TestRejectedMessages(t *testing.T) {
	s := newTestSession()

	assert.Contains(t, errorOf(t, s.Handle(&Message{Type: "layer.add"})), "unknown message type")
	assert.Contains(t, errorOf(t, s.Handle(&Message{Type: TypePointerDown})), "bad payload")
	assert.Contains(t, errorOf(t, s.Handle(&Message{Type: TypePointerDown, Payload: json.RawMessage(`"x"`)})), "bad payload")
	assert.Empty(t, s.Snapshot().Commands)
}

func TestWelcome(t *testing.T) {
	s := newTestSession()

	m := s.Welcome("client-1")

	assert.Equal(t, TypeWelcome, m.Type)
	assert.Equal(t, "client-1", m.ClientID)
	var p WelcomePayload
	require.NoError(t, json.Unmarshal(m.Payload, &p))
	assert.Equal(t, "sess_test", p.SessionID)
	assert.Equal(t, 256, p.Width)
	assert.Equal(t, engine.DefaultStickers, p.Stickers)
}

func TestRenderOnEmptySessionHasOps(t *testing.T) {
	s := newTestSession()

	var p RenderPayload
	require.NoError(t, json.Unmarshal(s.Render().Payload, &p))

	require.Len(t, p.Ops, 1)
	assert.Equal(t, "clear", p.Ops[0].Op)
}
