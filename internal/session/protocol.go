package session

import (
	"encoding/json"

	"github.com/doodlepad/doodlepad/internal/engine"
)

// Message is the websocket envelope in both directions.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	ClientID  string          `json:"clientId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypePointerDown  = "pointer.down"
	TypePointerMove  = "pointer.move"
	TypePointerUp    = "pointer.up"
	TypePointerLeave = "pointer.leave"
	TypeToolSelect   = "tool.select"
	TypeStickerAdd   = "sticker.add"
	TypeHistoryUndo  = "history.undo"
	TypeHistoryRedo  = "history.redo"
	TypeHistoryClear = "history.clear"

	// Server → client
	TypeWelcome = "welcome"
	TypeRender  = "render"
	TypeError   = "error"
)

// PointerPayload carries pointer.* events in surface coordinates. Buttons is
// the DOM MouseEvent.buttons bitmask; bit 0 is the primary button.
type PointerPayload struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Buttons int     `json:"buttons,omitempty"`
}

type ToolPayload struct {
	Kind  string  `json:"kind"`
	Width float64 `json:"width,omitempty"`
	Glyph string  `json:"glyph,omitempty"`
}

type StickerPayload struct {
	Glyph string `json:"glyph"`
}

type WelcomePayload struct {
	SessionID string   `json:"sessionId"`
	ClientID  string   `json:"clientId"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Stickers  []string `json:"stickers"`
}

// RenderPayload is a full redraw of the session's surface.
type RenderPayload struct {
	Ops      []engine.DrawCommand `json:"ops"`
	CanUndo  bool                 `json:"canUndo"`
	CanRedo  bool                 `json:"canRedo"`
	Tool     ToolPayload          `json:"tool"`
	Stickers []string             `json:"stickers"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func toolPayload(t engine.Tool) ToolPayload {
	p := ToolPayload{Kind: t.Kind.String()}
	if t.Kind == engine.ToolSticker {
		p.Glyph = t.Glyph
	} else {
		p.Width = t.Width
	}
	return p
}

func (p ToolPayload) tool() (engine.Tool, error) {
	kind, err := engine.ParseToolKind(p.Kind)
	if err != nil {
		return engine.Tool{}, err
	}
	return engine.Tool{Kind: kind, Width: p.Width, Glyph: p.Glyph}, nil
}

func newMessage(typ, sessionID string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, SessionID: sessionID, Payload: data}
}
