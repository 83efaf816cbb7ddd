package document

import (
	"errors"
	"fmt"
)

// ErrInvalidDrawing wraps every validation failure of a Drawing.
var ErrInvalidDrawing = errors.New("invalid drawing")

// MaxSize bounds each side of a drawing's surface.
const MaxSize = 4096

// Drawing is the serialized form of a doodle: the committed commands in draw
// order plus the size of the surface they were drawn on.
type Drawing struct {
	ID       string    `json:"id,omitempty"`
	Name     string    `json:"name,omitempty"`
	Width    int       `json:"width"`
	Height   int       `json:"height"`
	Commands []Command `json:"commands"`
}

type CommandType string

const (
	CommandTypeLine    CommandType = "line"
	CommandTypeSticker CommandType = "sticker"
)

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Command struct {
	ID   string      `json:"id,omitempty"`
	Type CommandType `json:"type"`

	// Line
	Points []Point `json:"points,omitempty"`
	Width  float64 `json:"width,omitempty"`

	// Sticker
	Anchor   *Point  `json:"anchor,omitempty"`
	Glyph    string  `json:"glyph,omitempty"`
	Rotation float64 `json:"rotation,omitempty"`
}

// NewEmptyDrawing creates a drawing with no commands.
func NewEmptyDrawing(id string, width, height int) *Drawing {
	return &Drawing{
		ID:       id,
		Name:     "doodle",
		Width:    width,
		Height:   height,
		Commands: []Command{},
	}
}

// Validate reports the first malformed field.
func (d *Drawing) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Width > MaxSize || d.Height > MaxSize {
		return fmt.Errorf("%w: size %dx%d outside 1..%d", ErrInvalidDrawing, d.Width, d.Height, MaxSize)
	}
	for i, c := range d.Commands {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("command %d: %w", i, err)
		}
	}
	return nil
}

func (c Command) Validate() error {
	switch c.Type {
	case CommandTypeLine:
		if len(c.Points) == 0 {
			return fmt.Errorf("%w: line has no points", ErrInvalidDrawing)
		}
		if !(c.Width > 0) {
			return fmt.Errorf("%w: line width must be positive, got %v", ErrInvalidDrawing, c.Width)
		}
	case CommandTypeSticker:
		if c.Anchor == nil {
			return fmt.Errorf("%w: sticker has no anchor", ErrInvalidDrawing)
		}
		if c.Glyph == "" {
			return fmt.Errorf("%w: sticker glyph is empty", ErrInvalidDrawing)
		}
	default:
		return fmt.Errorf("%w: unknown command type %q", ErrInvalidDrawing, c.Type)
	}
	return nil
}
