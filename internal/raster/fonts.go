package raster

import (
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

// Fonts hands out faces of one TrueType font, cached per pixel size.
type Fonts struct {
	mu    sync.Mutex
	data  []byte
	ttf   *truetype.Font
	faces map[float64]font.Face
}

// NewFonts parses a TrueType font.
func NewFonts(ttf []byte) (*Fonts, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	return &Fonts{data: ttf, ttf: f, faces: make(map[float64]font.Face)}, nil
}

// LoadFonts reads and parses a TrueType font file.
func LoadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return NewFonts(data)
}

var (
	defaultOnce  sync.Once
	defaultFonts *Fonts
)

// DefaultFonts returns the embedded Go Regular font.
// It has no emoji glyphs; configure a font file for those.
func DefaultFonts() *Fonts {
	defaultOnce.Do(func() {
		f, err := NewFonts(goregular.TTF)
		if err != nil {
			panic(err)
		}
		defaultFonts = f
	})
	return defaultFonts
}

// TTF returns the raw font file, for embedding in other formats.
func (f *Fonts) TTF() []byte {
	return f.data
}

// Face returns the face for the given pixel size at 72 DPI.
func (f *Fonts) Face(px float64) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[px]; ok {
		return face
	}
	face := truetype.NewFace(f.ttf, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	f.faces[px] = face
	return face
}
