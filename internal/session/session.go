// Package session runs a private doodle engine behind each websocket connection.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doodlepad/doodlepad/internal/document"
	"github.com/doodlepad/doodlepad/internal/engine"
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrUnknownMessage = errors.New("unknown message type")
	ErrBadPayload     = errors.New("bad payload")
)

// Config sizes new sessions and sets their connection timing.
type Config struct {
	Width          int
	Height         int
	ClearKeepsRedo bool
	Timing         Timing
}

// Timing controls a client connection. Zero fields take the defaults below.
type Timing struct {
	WriteTimeout   time.Duration
	PingInterval   time.Duration
	MaxMessageSize int64
	SendBuffer     int
}

const (
	DefaultWriteTimeout   = 10 * time.Second
	DefaultPingInterval   = 30 * time.Second
	DefaultMaxMessageSize = 64 * 1024
	DefaultSendBuffer     = 256
)

func (t Timing) withDefaults() Timing {
	if t.WriteTimeout <= 0 {
		t.WriteTimeout = DefaultWriteTimeout
	}
	if t.PingInterval <= 0 {
		t.PingInterval = DefaultPingInterval
	}
	if t.MaxMessageSize <= 0 {
		t.MaxMessageSize = DefaultMaxMessageSize
	}
	if t.SendBuffer <= 0 {
		t.SendBuffer = DefaultSendBuffer
	}
	return t
}

// Session owns one engine. Handle, Snapshot and RenderOnto may be called from
// different goroutines; the engine itself only ever sees one at a time.
type Session struct {
	id     string
	width  int
	height int

	mu      sync.Mutex
	engine  *engine.Engine
	palette *engine.Palette
	dirty   bool
}

func New(id string, cfg Config) *Session {
	var opts []engine.Option
	if cfg.ClearKeepsRedo {
		opts = append(opts, engine.WithRedoKeptOnClear())
	}
	s := &Session{
		id:      id,
		width:   cfg.Width,
		height:  cfg.Height,
		engine:  engine.NewEngine(opts...),
		palette: engine.NewPalette(),
	}
	markDirty := func(engine.EventKind) { s.dirty = true }
	s.engine.Subscribe(engine.EventDrawingChanged, markDirty)
	s.engine.Subscribe(engine.EventToolChanged, markDirty)
	return s
}

func (s *Session) ID() string  { return s.id }
func (s *Session) Width() int  { return s.width }
func (s *Session) Height() int { return s.height }

// Handle applies one client message and returns the replies: a single render
// when anything visible changed, an error message when the input was rejected,
// or nothing.
func (s *Session) Handle(msg *Message) []*Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dirty = false
	if err := s.apply(msg); err != nil {
		return []*Message{newMessage(TypeError, s.id, ErrorPayload{Message: err.Error()})}
	}
	if !s.dirty {
		return nil
	}
	return []*Message{s.render()}
}

func (s *Session) apply(msg *Message) error {
	e := s.engine
	switch msg.Type {
	case TypePointerDown:
		var p PointerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		e.BeginStroke(engine.Pt(p.X, p.Y))
		e.SetCursorPreview(engine.Pt(p.X, p.Y))
	case TypePointerMove:
		var p PointerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		if p.Buttons&1 != 0 {
			e.Extend(engine.Pt(p.X, p.Y))
		}
		e.SetCursorPreview(engine.Pt(p.X, p.Y))
	case TypePointerUp:
		e.EndStroke()
	case TypePointerLeave:
		e.HideCursorPreview()
	case TypeToolSelect:
		var p ToolPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		t, err := p.tool()
		if err != nil {
			return err
		}
		return e.SelectTool(t)
	case TypeStickerAdd:
		var p StickerPayload
		if err := decode(msg, &p); err != nil {
			return err
		}
		t, added, err := s.palette.AddSticker(p.Glyph)
		if err != nil {
			return err
		}
		if added {
			s.dirty = true
		}
		return e.SelectTool(t)
	case TypeHistoryUndo:
		e.Undo()
	case TypeHistoryRedo:
		e.Redo()
	case TypeHistoryClear:
		e.Clear()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}

func decode(msg *Message, v interface{}) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%w: %s without payload", ErrBadPayload, msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadPayload, msg.Type, err)
	}
	return nil
}

// Welcome builds the first message sent on a new connection.
func (s *Session) Welcome(clientID string) *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := newMessage(TypeWelcome, s.id, WelcomePayload{
		SessionID: s.id,
		ClientID:  clientID,
		Width:     s.width,
		Height:    s.height,
		Stickers:  s.palette.Stickers(),
	})
	msg.ClientID = clientID
	return msg
}

// Render builds a full redraw message.
func (s *Session) Render() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.render()
}

func (s *Session) render() *Message {
	rec := engine.NewRecorder()
	s.engine.Redraw(rec)
	ops := rec.Commands()
	if ops == nil {
		ops = []engine.DrawCommand{}
	}
	return newMessage(TypeRender, s.id, RenderPayload{
		Ops:      ops,
		CanUndo:  s.engine.CanUndo(),
		CanRedo:  s.engine.CanRedo(),
		Tool:     toolPayload(s.engine.Tool()),
		Stickers: s.palette.Stickers(),
	})
}

// RenderOnto replays the committed commands onto dst, for export.
func (s *Session) RenderOnto(dst engine.Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.RenderOnto(dst)
}

// Snapshot returns the committed commands as a drawing.
func (s *Session) Snapshot() *document.Drawing {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot(s.id, s.width, s.height)
}
