package engine

import "math"

// Point is a 2-D coordinate in surface pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Angle returns the direction of the vector p in radians, as atan2(y, x).
func (p Point) Angle() float64 {
	return math.Atan2(p.Y, p.X)
}
