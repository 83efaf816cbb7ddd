package engine

import (
	"encoding/json"
	"fmt"
	"image/color"
)

// DrawCommand represents a single drawing operation for a frontend to execute.
// A thin frontend receives a list of these and executes them on a Canvas2D context.
//
// Path coordinates and StrokeWidth are already in device pixels. Text is drawn
// after setting Transform, with X/Y and FontSize in the transformed space.
type DrawCommand struct {
	Op          string        `json:"op"`                    // Operation: "clear", "stroke", "fill", "text"
	Transform   []float64     `json:"transform,omitempty"`   // [a, b, c, d, e, f] affine matrix for "text"
	Path        []PathCommand `json:"path,omitempty"`        // Path data for "stroke" and "fill"
	Fill        string        `json:"fill,omitempty"`        // Fill color
	Stroke      string        `json:"stroke,omitempty"`      // Stroke color
	StrokeWidth float64       `json:"strokeWidth,omitempty"` // Stroke width
	Text        string        `json:"text,omitempty"`
	FontSize    float64       `json:"fontSize,omitempty"`
	X           float64       `json:"x,omitempty"`
	Y           float64       `json:"y,omitempty"`
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["A", cx, cy, r] (full circle).
type PathCommand []interface{}

type recorderState struct {
	matrix      Matrix2D
	lineWidth   float64
	strokeColor color.Color
	fillColor   color.Color
	fontSize    float64
}

// Recorder is a Surface that records what is drawn instead of rasterizing it.
type Recorder struct {
	state    recorderState
	stack    []recorderState
	path     []PathCommand
	commands []DrawCommand
}

// NewRecorder creates a recorder with Canvas2D defaults: identity transform,
// 1px black lines, black fill and a 10px font.
func NewRecorder() *Recorder {
	return &Recorder{state: recorderState{
		matrix:      Identity(),
		lineWidth:   1,
		strokeColor: color.Black,
		fillColor:   color.Black,
		fontSize:    10,
	}}
}

// Commands returns the recorded operations in painter's order.
func (r *Recorder) Commands() []DrawCommand {
	return r.commands
}

// Reset drops recorded operations and restores the default state.
func (r *Recorder) Reset() {
	*r = *NewRecorder()
}

// Matrix returns the current transform.
func (r *Recorder) Matrix() Matrix2D { return r.state.matrix }

func (r *Recorder) Clear() {
	r.commands = append(r.commands, DrawCommand{Op: "clear"})
}

func (r *Recorder) Save() {
	r.stack = append(r.stack, r.state)
}

func (r *Recorder) Restore() {
	if len(r.stack) == 0 {
		return
	}
	r.state = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) {
	r.state.matrix = r.state.matrix.Multiply(Translate(x, y))
}

func (r *Recorder) Rotate(radians float64) {
	r.state.matrix = r.state.matrix.Multiply(Rotate(radians))
}

func (r *Recorder) Scale(sx, sy float64) {
	r.state.matrix = r.state.matrix.Multiply(Scale(sx, sy))
}

func (r *Recorder) BeginPath() {
	r.path = nil
}

func (r *Recorder) MoveTo(x, y float64) {
	dx, dy := r.state.matrix.TransformPoint(x, y)
	r.path = append(r.path, PathCommand{"M", dx, dy})
}

func (r *Recorder) LineTo(x, y float64) {
	dx, dy := r.state.matrix.TransformPoint(x, y)
	r.path = append(r.path, PathCommand{"L", dx, dy})
}

func (r *Recorder) Circle(x, y, radius float64) {
	dx, dy := r.state.matrix.TransformPoint(x, y)
	r.path = append(r.path, PathCommand{"A", dx, dy, radius * r.state.matrix.ScaleFactor()})
}

func (r *Recorder) Stroke() {
	r.commands = append(r.commands, DrawCommand{
		Op:          "stroke",
		Path:        append([]PathCommand(nil), r.path...),
		Stroke:      CSSColor(r.state.strokeColor),
		StrokeWidth: r.state.lineWidth * r.state.matrix.ScaleFactor(),
	})
}

func (r *Recorder) Fill() {
	r.commands = append(r.commands, DrawCommand{
		Op:   "fill",
		Path: append([]PathCommand(nil), r.path...),
		Fill: CSSColor(r.state.fillColor),
	})
}

func (r *Recorder) SetLineWidth(w float64) { r.state.lineWidth = w }

func (r *Recorder) StrokeColor() color.Color { return r.state.strokeColor }

// SetStrokeColor changes the color used by Stroke and by the marker cursor preview.
func (r *Recorder) SetStrokeColor(c color.Color) { r.state.strokeColor = c }

func (r *Recorder) SetFillColor(c color.Color) { r.state.fillColor = c }

func (r *Recorder) SetFontSize(px float64) { r.state.fontSize = px }

func (r *Recorder) FillText(text string, x, y float64) {
	r.commands = append(r.commands, DrawCommand{
		Op:        "text",
		Transform: r.state.matrix.ToSlice(),
		Text:      text,
		FontSize:  r.state.fontSize,
		Fill:      CSSColor(r.state.fillColor),
		X:         x,
		Y:         y,
	})
}

// CSSColor formats c as a CSS rgba() color.
func CSSColor(c color.Color) string {
	if c == nil {
		return ""
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)", n.R, n.G, n.B, float64(n.A)/255)
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		return "[]", nil
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
