// Package export turns a doodle into a downloadable file.
package export

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/doodlepad/doodlepad/internal/engine"
	"github.com/doodlepad/doodlepad/internal/raster"
)

var (
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrInvalidOptions = errors.New("invalid export options")
)

// MaxPixels bounds the size of an export: scaled width times scaled height.
const MaxPixels = 8192 * 8192

// Renderer replays committed commands onto a surface. *engine.Engine
// satisfies it.
type Renderer interface {
	RenderOnto(s engine.Surface)
}

// Format is an export file type.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat maps a file extension to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatPDF:
		return "application/pdf"
	default:
		return "image/png"
	}
}

// Options sizes an export. Width and Height are the drawing's on-screen size;
// the output is Scale times larger in each dimension.
type Options struct {
	Width      int
	Height     int
	Scale      float64
	Fonts      *raster.Fonts
	Background color.Color
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidOptions, o.Width, o.Height)
	}
	if !(o.Scale > 0) {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalidOptions, o.Scale)
	}
	w, h := float64(o.Width)*o.Scale, float64(o.Height)*o.Scale
	if w*h > MaxPixels {
		return fmt.Errorf("%w: %.0fx%.0f exceeds %d pixels", ErrInvalidOptions, w, h, MaxPixels)
	}
	return nil
}

func (o Options) scaled() (int, int) {
	w := int(float64(o.Width)*o.Scale + 0.5)
	h := int(float64(o.Height)*o.Scale + 0.5)
	return max(w, 1), max(h, 1)
}

func (o Options) background() color.Color {
	if o.Background == nil {
		return color.White
	}
	return o.Background
}

func (o Options) fonts() *raster.Fonts {
	if o.Fonts == nil {
		return raster.DefaultFonts()
	}
	return o.Fonts
}

// Write encodes r in the given format.
func Write(w io.Writer, format Format, r Renderer, opts Options) error {
	switch format {
	case FormatPNG:
		return PNG(w, r, opts)
	case FormatPDF:
		return PDF(w, r, opts)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}
