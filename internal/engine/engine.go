package engine

import (
	"fmt"

	"github.com/doodlepad/doodlepad/internal/document"
	"github.com/doodlepad/doodlepad/internal/typeid"
)

// Engine is the doodle pad's drawing state: command history, selected tool and
// cursor preview, plus the bus that tells the shell when to redraw.
//
// An Engine is not safe for concurrent use. Shells drive it from a single event
// loop; hosts with several goroutines must serialize access themselves.
type Engine struct {
	history *History
	tool    Tool
	cursor  *Command
	bus     *Bus
	newID   func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithTool sets the initially selected tool.
func WithTool(t Tool) Option {
	return func(e *Engine) { e.tool = t }
}

// WithRedoKeptOnClear makes Clear leave the redo buffer reachable, so commands
// undone before a clear can still be redone after it.
func WithRedoKeptOnClear() Option {
	return func(e *Engine) { e.history.keepRedoOnClear = true }
}

// WithIDGenerator overrides how command IDs are minted.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates an engine with an empty history and the default tool.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		history: &History{},
		tool:    DefaultTool(),
		bus:     NewBus(),
		newID:   typeid.NewCommandID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// --- Commands (shell → engine) ---

// BeginStroke starts a new command with the current tool at p.
func (e *Engine) BeginStroke(p Point) {
	cmd := NewCommand(e.tool, p)
	cmd.ID = e.newID()
	e.history.Begin(cmd)
	e.bus.Publish(EventDrawingChanged)
}

// Extend drags the in-progress command to p. Without one it does nothing.
func (e *Engine) Extend(p Point) {
	if e.history.Extend(p) {
		e.bus.Publish(EventDrawingChanged)
	}
}

// EndStroke freezes the in-progress command.
func (e *Engine) EndStroke() {
	if e.history.End() {
		e.bus.Publish(EventDrawingChanged)
	}
}

// Undo moves the newest command to the redo buffer.
func (e *Engine) Undo() {
	if e.history.Undo() {
		e.bus.Publish(EventDrawingChanged)
	}
}

// Redo restores the most recently undone command.
func (e *Engine) Redo() {
	if e.history.Redo() {
		e.bus.Publish(EventDrawingChanged)
	}
}

// Clear removes every committed command.
func (e *Engine) Clear() {
	if e.history.Clear() {
		e.bus.Publish(EventDrawingChanged)
	}
}

// SelectTool changes the tool used by subsequent commands and the cursor preview.
func (e *Engine) SelectTool(t Tool) error {
	if err := t.Validate(); err != nil {
		return err
	}
	e.tool = t
	e.bus.Publish(EventToolChanged)
	return nil
}

// SetCursorPreview shows the tool indicator at p.
func (e *Engine) SetCursorPreview(p Point) {
	if e.cursor == nil {
		e.cursor = NewCursor(p)
	} else {
		e.cursor.Drag(p)
	}
	e.bus.Publish(EventToolChanged)
}

// HideCursorPreview removes the tool indicator.
func (e *Engine) HideCursorPreview() {
	if e.cursor == nil {
		return
	}
	e.cursor = nil
	e.bus.Publish(EventToolChanged)
}

// Subscribe registers fn to run after every change of the given kind.
func (e *Engine) Subscribe(kind EventKind, fn Listener) {
	e.bus.Subscribe(kind, fn)
}

// LoadDrawing replaces the history with the commands of d.
func (e *Engine) LoadDrawing(d *document.Drawing) error {
	if err := d.Validate(); err != nil {
		return err
	}
	cmds := make([]*Command, len(d.Commands))
	for i, dc := range d.Commands {
		cmds[i] = commandFromDocument(dc)
		if cmds[i].ID == "" {
			cmds[i].ID = e.newID()
		}
	}
	e.history.Load(cmds)
	e.bus.Publish(EventDrawingChanged)
	return nil
}

// --- Rendering ---

// Redraw repaints s from scratch: clear, every committed command oldest first,
// then the cursor preview on top. A nil surface is ignored.
func (e *Engine) Redraw(s Surface) {
	if s == nil {
		return
	}
	s.Clear()
	e.RenderOnto(s)
	if e.cursor != nil {
		e.cursor.Execute(s, e.tool)
	}
}

// RenderOnto replays the committed commands onto s without clearing it and
// without the cursor preview. A nil surface is ignored.
func (e *Engine) RenderOnto(s Surface) {
	if s == nil {
		return
	}
	e.history.each(func(cmd *Command) {
		cmd.Execute(s, e.tool)
	})
}

// Render records a full redraw and returns it as a JSON draw command buffer.
func (e *Engine) Render() string {
	rec := NewRecorder()
	e.Redraw(rec)
	result, _ := DrawCommandsToJSON(rec.Commands())
	return result
}

// --- Queries (shell ← engine) ---

func (e *Engine) Tool() Tool { return e.tool }

// Cursor returns the cursor preview point, if one is shown.
func (e *Engine) Cursor() (Point, bool) {
	if e.cursor == nil {
		return Point{}, false
	}
	return e.cursor.Anchor, true
}

func (e *Engine) Active() []Command     { return e.history.Active() }
func (e *Engine) RedoBuffer() []Command { return e.history.RedoBuffer() }
func (e *Engine) CanUndo() bool         { return e.history.CanUndo() }
func (e *Engine) CanRedo() bool         { return e.history.CanRedo() }

// Current returns the command being extended, if any.
func (e *Engine) Current() (Command, bool) { return e.history.Current() }

// Snapshot serializes the committed commands as a drawing of the given size.
func (e *Engine) Snapshot(id string, width, height int) *document.Drawing {
	d := document.NewEmptyDrawing(id, width, height)
	e.history.each(func(cmd *Command) {
		d.Commands = append(d.Commands, commandToDocument(cmd))
	})
	return d
}

func commandToDocument(c *Command) document.Command {
	switch c.Kind {
	case KindSticker:
		return document.Command{
			ID:       c.ID,
			Type:     document.CommandTypeSticker,
			Anchor:   &document.Point{X: c.Anchor.X, Y: c.Anchor.Y},
			Glyph:    c.Glyph,
			Rotation: c.Rotation,
		}
	default:
		points := make([]document.Point, len(c.Points))
		for i, p := range c.Points {
			points[i] = document.Point{X: p.X, Y: p.Y}
		}
		return document.Command{
			ID:     c.ID,
			Type:   document.CommandTypeLine,
			Points: points,
			Width:  c.Width,
		}
	}
}

func commandFromDocument(dc document.Command) *Command {
	switch dc.Type {
	case document.CommandTypeSticker:
		return &Command{
			ID:       dc.ID,
			Kind:     KindSticker,
			Anchor:   Point{X: dc.Anchor.X, Y: dc.Anchor.Y},
			Glyph:    dc.Glyph,
			Rotation: dc.Rotation,
		}
	case document.CommandTypeLine:
		points := make([]Point, len(dc.Points))
		for i, p := range dc.Points {
			points[i] = Point{X: p.X, Y: p.Y}
		}
		return &Command{ID: dc.ID, Kind: KindLine, Points: points, Width: dc.Width}
	default:
		panic(fmt.Sprintf("engine: unvalidated command type %q", dc.Type))
	}
}
