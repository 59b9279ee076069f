// Package physics holds the 2D geometry and rigid body primitives of the
// particle collider: points, line segments, triangles, forces and the
// collision rules that act on them.
//
// Intersection tests compare coordinates after rounding to the nearest
// integer. Geometry below unit scale is therefore approximated.
package physics

import "github.com/chewxy/math32"

// Point is a 2D position.
type Point struct {
	X float32
	Y float32
}

// Translate returns the point moved by (dx, dy)
func (p Point) Translate(dx, dy float32) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// round rounds half away from zero.
func round(x float32) float32 {
	if x < 0 {
		return -math32.Floor(-x + 0.5)
	}
	return math32.Floor(x + 0.5)
}

func degrees(rad float32) float32 {
	return rad * 180 / math32.Pi
}
