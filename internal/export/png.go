package export

import (
	"fmt"
	"io"

	"github.com/doodlepad/doodlepad/internal/raster"
)

// PNG rasterizes r at opts.Scale and writes it as a PNG image. The cursor
// preview is never part of an export.
func PNG(w io.Writer, r Renderer, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	width, height := opts.scaled()
	cv := raster.NewCanvas(width, height,
		raster.WithBackground(opts.background()),
		raster.WithFonts(opts.fonts()),
	)
	cv.Scale(opts.Scale, opts.Scale)
	r.RenderOnto(cv)
	if err := cv.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
