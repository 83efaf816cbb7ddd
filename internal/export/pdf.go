package export

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"github.com/doodlepad/doodlepad/internal/engine"
)

const stickerFont = "sticker"

// PDF writes r as a single-page vector PDF. One canvas pixel is one point
// before opts.Scale is applied.
func PDF(w io.Writer, r Renderer, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	pdf := newPDF(float64(opts.Width)*opts.Scale, float64(opts.Height)*opts.Scale)
	pdf.AddUTF8FontFromBytes(stickerFont, "", opts.fonts().TTF())
	pdf.AddPage()

	s := newPDFSurface(pdf, opts.background())
	s.Scale(opts.Scale, opts.Scale)
	r.RenderOnto(s)
	s.close()

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func newPDF(width, height float64) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("doodlepad", true)
	return pdf
}

type subpath struct {
	points []engine.Point
	circle bool
	radius float64
}

type pdfState struct {
	lineWidth   float64
	strokeColor color.Color
	fillColor   color.Color
	fontSize    float64
}

// pdfSurface is an engine.Surface that writes PDF path operators. Save and
// Restore map onto the PDF graphics state stack, which also carries the
// transform, so line widths and glyphs scale without help.
type pdfSurface struct {
	pdf   *gofpdf.Fpdf
	state pdfState
	stack []pdfState
	path  []subpath
}

var _ engine.Surface = (*pdfSurface)(nil)

func newPDFSurface(pdf *gofpdf.Fpdf, background color.Color) *pdfSurface {
	s := &pdfSurface{
		pdf: pdf,
		state: pdfState{
			lineWidth:   1,
			strokeColor: color.Black,
			fillColor:   color.Black,
			fontSize:    10,
		},
	}
	if _, _, _, a := background.RGBA(); a > 0 {
		w, h := pdf.GetPageSize()
		pdf.SetFillColor(rgb(background))
		pdf.Rect(0, 0, w, h, "F")
	}
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")
	// gofpdf refuses transforms outside a TransformBegin block.
	pdf.TransformBegin()
	return s
}

// close unwinds any unbalanced Save calls and the base transform block.
func (s *pdfSurface) close() {
	for range s.stack {
		s.pdf.TransformEnd()
	}
	s.stack = nil
	s.pdf.TransformEnd()
}

// Clear does nothing: exports start from a fresh page and PDF content can only
// be painted over.
func (s *pdfSurface) Clear() {}

func (s *pdfSurface) Save() {
	s.stack = append(s.stack, s.state)
	s.pdf.TransformBegin()
}

func (s *pdfSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.pdf.TransformEnd()
}

func (s *pdfSurface) Translate(x, y float64) { s.pdf.TransformTranslate(x, y) }

// Rotate turns clockwise on screen. gofpdf angles run counterclockwise.
func (s *pdfSurface) Rotate(radians float64) {
	s.pdf.TransformRotate(-radians*180/math.Pi, 0, 0)
}

func (s *pdfSurface) Scale(sx, sy float64) { s.pdf.TransformScale(sx*100, sy*100, 0, 0) }

func (s *pdfSurface) BeginPath() { s.path = s.path[:0] }

func (s *pdfSurface) MoveTo(x, y float64) {
	s.path = append(s.path, subpath{points: []engine.Point{engine.Pt(x, y)}})
}

func (s *pdfSurface) LineTo(x, y float64) {
	n := len(s.path)
	if n == 0 || s.path[n-1].circle {
		s.MoveTo(x, y)
		return
	}
	s.path[n-1].points = append(s.path[n-1].points, engine.Pt(x, y))
}

func (s *pdfSurface) Circle(x, y, r float64) {
	s.path = append(s.path, subpath{
		points: []engine.Point{engine.Pt(x, y)},
		circle: true,
		radius: r,
	})
}

func (s *pdfSurface) Stroke() {
	s.pdf.SetDrawColor(rgb(s.state.strokeColor))
	s.pdf.SetLineWidth(s.state.lineWidth)
	s.paint("D")
}

func (s *pdfSurface) Fill() {
	s.pdf.SetFillColor(rgb(s.state.fillColor))
	s.paint("F")
}

// paint emits the current path. A lone MoveTo paints nothing, as on a canvas.
func (s *pdfSurface) paint(style string) {
	for _, sp := range s.path {
		if sp.circle {
			c := sp.points[0]
			s.pdf.Circle(c.X, c.Y, sp.radius, style)
			continue
		}
		if len(sp.points) < 2 {
			continue
		}
		s.pdf.MoveTo(sp.points[0].X, sp.points[0].Y)
		for _, p := range sp.points[1:] {
			s.pdf.LineTo(p.X, p.Y)
		}
		s.pdf.DrawPath(style)
	}
}

func (s *pdfSurface) SetLineWidth(w float64)     { s.state.lineWidth = w }
func (s *pdfSurface) StrokeColor() color.Color   { return s.state.strokeColor }
func (s *pdfSurface) SetFillColor(c color.Color) { s.state.fillColor = c }
func (s *pdfSurface) SetFontSize(px float64)     { s.state.fontSize = px }

func (s *pdfSurface) FillText(text string, x, y float64) {
	s.pdf.SetFont(stickerFont, "", s.state.fontSize)
	s.pdf.SetTextColor(rgb(s.state.fillColor))
	s.pdf.Text(x, y, text)
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}
