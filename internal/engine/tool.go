package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTool is returned when a tool's payload does not match its kind.
var ErrInvalidTool = errors.New("invalid tool")

// ToolKind tags the active drawing mode.
type ToolKind int

const (
	ToolMarker ToolKind = iota + 1
	ToolSticker
)

func (k ToolKind) String() string {
	switch k {
	case ToolMarker:
		return "marker"
	case ToolSticker:
		return "sticker"
	default:
		return "unknown"
	}
}

// ParseToolKind maps a wire name back to a ToolKind.
func ParseToolKind(s string) (ToolKind, error) {
	switch s {
	case "marker":
		return ToolMarker, nil
	case "sticker":
		return ToolSticker, nil
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidTool, s)
	}
}

// Tool is the current tool selection: a marker of some width or a sticker glyph.
// Only the field matching Kind is meaningful.
type Tool struct {
	Kind  ToolKind
	Width float64
	Glyph string
}

// Marker returns a marker tool drawing lines of the given width.
func Marker(width float64) Tool {
	return Tool{Kind: ToolMarker, Width: width}
}

// Sticker returns a sticker tool placing the given glyph.
func Sticker(glyph string) Tool {
	return Tool{Kind: ToolSticker, Glyph: glyph}
}

// Validate checks that the payload fits the tag.
func (t Tool) Validate() error {
	switch t.Kind {
	case ToolMarker:
		if !(t.Width > 0) {
			return fmt.Errorf("%w: marker width must be positive, got %v", ErrInvalidTool, t.Width)
		}
	case ToolSticker:
		if t.Glyph == "" {
			return fmt.Errorf("%w: sticker glyph is empty", ErrInvalidTool)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidTool, t.Kind)
	}
	return nil
}

func (t Tool) String() string {
	if t.Kind == ToolSticker {
		return "sticker(" + t.Glyph + ")"
	}
	return fmt.Sprintf("marker(%g)", t.Width)
}

// Preset marker widths.
const (
	ThinWidth  = 2.0
	ThickWidth = 8.0
)

// DefaultStickers are the stickers offered before any custom ones are added.
var DefaultStickers = []string{"🧀", "🍕", "🌮"}

// DefaultTool is the tool selected when an engine is created.
func DefaultTool() Tool {
	return Marker(ThinWidth)
}

// Palette is the list of stickers a shell offers as buttons.
type Palette struct {
	stickers []string
}

// NewPalette returns a palette seeded with DefaultStickers.
func NewPalette() *Palette {
	return &Palette{stickers: append([]string(nil), DefaultStickers...)}
}

// Stickers returns the glyphs in the order they were added.
func (p *Palette) Stickers() []string {
	return append([]string(nil), p.stickers...)
}

// AddSticker trims glyph and appends it unless it is empty or already present.
// It returns the sticker tool for the glyph and whether the palette grew.
func (p *Palette) AddSticker(glyph string) (Tool, bool, error) {
	glyph = strings.TrimSpace(glyph)
	if glyph == "" {
		return Tool{}, false, fmt.Errorf("%w: sticker glyph is empty", ErrInvalidTool)
	}
	for _, s := range p.stickers {
		if s == glyph {
			return Sticker(glyph), false, nil
		}
	}
	p.stickers = append(p.stickers, glyph)
	return Sticker(glyph), true, nil
}
