package physics

import "github.com/chewxy/math32"

// Collision is a contact between two segments. Hit is the x coordinate of
// the intersection.
type Collision struct {
	lineA Line
	lineB Line
	Hit   float32
}

func newCollision(a, b Line, hit float32) Collision {
	return Collision{lineA: a, lineB: b, Hit: hit}
}

func (c Collision) LineA() Line { return c.lineA }
func (c Collision) LineB() Line { return c.lineB }

// Pos returns the point of contact on line A. When line A is vertical the
// height is taken from line B, and when both are vertical from the middle
// of their shared y-range.
func (c Collision) Pos() Point {
	if y, err := c.lineA.At(c.Hit); err == nil {
		return Point{X: c.Hit, Y: y}
	}
	if y, err := c.lineB.At(c.Hit); err == nil {
		return Point{X: c.Hit, Y: y}
	}
	lo := math32.Max(c.lineA.Lowest().Y, c.lineB.Lowest().Y)
	hi := math32.Min(c.lineA.Upest().Y, c.lineB.Upest().Y)
	return Point{X: c.Hit, Y: (lo + hi) / 2}
}

// Angle returns the contact angle in degrees.
func (c Collision) Angle() float32 {
	return math32.Abs(c.lineA.Angle() - c.lineB.Angle())
}
