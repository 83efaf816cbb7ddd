package engine

import "image/color"

// Surface is a 2D drawing context shaped after the HTML Canvas2D API.
//
// Paths are built in user space: points passed to MoveTo, LineTo and Circle are
// mapped through the transform current at the time of the call. Line widths,
// circle radii and font sizes are user-space lengths as well, so a surface scaled
// by k renders every command k times larger.
type Surface interface {
	// Clear erases the whole surface, ignoring the current transform.
	Clear()

	// Save pushes the transform and drawing state; Restore pops it.
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Circle adds a closed circular subpath.
	Circle(x, y, r float64)
	Stroke()
	Fill()

	SetLineWidth(w float64)
	StrokeColor() color.Color
	SetFillColor(c color.Color)

	SetFontSize(px float64)
	// FillText draws text with its baseline-left corner at (x, y).
	FillText(text string, x, y float64)
}
