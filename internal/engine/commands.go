package engine

import (
	"image/color"
)

// CommandKind tags the variant held by a Command.
type CommandKind int

const (
	KindLine CommandKind = iota + 1
	KindSticker
	KindCursor
)

func (k CommandKind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindSticker:
		return "sticker"
	case KindCursor:
		return "cursor"
	default:
		return "unknown"
	}
}

// Sticker glyphs are drawn at StickerSize pixels, shifted by StickerOffset so the
// glyph sits centred over its anchor.
const StickerSize = 32.0

var StickerOffset = Point{X: -StickerSize / 2, Y: StickerSize / 2}

// Command is a recorded, replayable draw action.
//
// Line uses Points and Width. Sticker uses Anchor, Glyph and Rotation.
// Cursor uses Anchor and takes its shape from the tool passed to Execute.
type Command struct {
	ID       string
	Kind     CommandKind
	Points   []Point
	Width    float64
	Anchor   Point
	Glyph    string
	Rotation float64
}

// NewCommand builds the command the given tool starts at p:
// a one-point line for a marker, an unrotated sticker otherwise.
func NewCommand(tool Tool, p Point) *Command {
	if tool.Kind == ToolSticker {
		return &Command{Kind: KindSticker, Anchor: p, Glyph: tool.Glyph}
	}
	return &Command{Kind: KindLine, Points: []Point{p}, Width: tool.Width}
}

// NewCursor builds a cursor preview at p.
func NewCursor(p Point) *Command {
	return &Command{Kind: KindCursor, Anchor: p}
}

// Drag extends the command in response to continued pointer motion.
func (c *Command) Drag(p Point) {
	switch c.Kind {
	case KindLine:
		c.Points = append(c.Points, p)
	case KindSticker:
		// Recomputed from the anchor each time, never accumulated.
		c.Rotation = p.Sub(c.Anchor).Angle()
	case KindCursor:
		c.Anchor = p
	}
}

// Execute draws the command onto s. It only draws: calling it repeatedly on a
// surface in the same state produces the same pixels.
func (c *Command) Execute(s Surface, tool Tool) {
	switch c.Kind {
	case KindLine:
		c.executeLine(s)
	case KindSticker:
		s.Save()
		s.Translate(c.Anchor.X, c.Anchor.Y)
		s.Rotate(c.Rotation)
		drawGlyph(s, c.Glyph)
		s.Restore()
	case KindCursor:
		c.executeCursor(s, tool)
	}
}

func (c *Command) executeLine(s Surface) {
	if len(c.Points) == 0 {
		return
	}
	s.BeginPath()
	s.MoveTo(c.Points[0].X, c.Points[0].Y)
	for _, p := range c.Points[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.SetLineWidth(c.Width)
	s.Stroke()
}

func (c *Command) executeCursor(s Surface, tool Tool) {
	switch tool.Kind {
	case ToolMarker:
		s.Save()
		s.SetFillColor(strokeOrBlack(s))
		s.BeginPath()
		s.Circle(c.Anchor.X, c.Anchor.Y, tool.Width/2)
		s.Fill()
		s.Restore()
	case ToolSticker:
		s.Save()
		s.Translate(c.Anchor.X, c.Anchor.Y)
		drawGlyph(s, tool.Glyph)
		s.Restore()
	}
}

func drawGlyph(s Surface, glyph string) {
	s.SetFontSize(StickerSize)
	s.FillText(glyph, StickerOffset.X, StickerOffset.Y)
}

func strokeOrBlack(s Surface) color.Color {
	if c := s.StrokeColor(); c != nil {
		return c
	}
	return color.Black
}

// Clone returns a deep copy of the command.
func (c *Command) Clone() Command {
	out := *c
	if c.Points != nil {
		out.Points = append([]Point(nil), c.Points...)
	}
	return out
}
