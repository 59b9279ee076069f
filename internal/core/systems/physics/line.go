package physics

import "github.com/chewxy/math32"

// Line is a segment between two points owned elsewhere, usually by a
// Triangle. It is guaranteed that a.X <= b.X.
type Line struct {
	a *Point
	b *Point
}

// LineFromPoints builds a Line over a and b, swapping them when needed so
// the left point comes first.
func LineFromPoints(a, b *Point) Line {
	if a.X <= b.X {
		return Line{a: a, b: b}
	}
	return Line{a: b, b: a}
}

func (l Line) Leftest() Point  { return *l.a }
func (l Line) Rightest() Point { return *l.b }

func (l Line) Upest() Point {
	if l.a.Y >= l.b.Y {
		return *l.a
	}
	return *l.b
}

func (l Line) Lowest() Point {
	if l.a.Y < l.b.Y {
		return *l.a
	}
	return *l.b
}

// IsVertical reports whether the x-extent of the line rounds to zero.
func (l Line) IsVertical() bool {
	return round(l.b.X-l.a.X) == 0
}

// Steepness returns the slope of the line, or ErrUndefinedSlope when the
// line is vertical.
func (l Line) Steepness() (float32, error) {
	if l.IsVertical() {
		return 0, ErrUndefinedSlope
	}
	return (l.b.Y - l.a.Y) / (l.b.X - l.a.X), nil
}

// Intercept returns the y value where the extended line crosses x = 0.
func (l Line) Intercept() (float32, error) {
	m, err := l.Steepness()
	if err != nil {
		return 0, err
	}
	return l.a.Y - m*l.a.X, nil
}

// At samples the extended line at x.
func (l Line) At(x float32) (float32, error) {
	m, err := l.Steepness()
	if err != nil {
		return 0, err
	}
	return l.a.Y + m*(x-l.a.X), nil
}

// Angle returns the incline of the line in degrees, 90 when vertical.
func (l Line) Angle() float32 {
	m, err := l.Steepness()
	if err != nil {
		return 90
	}
	return degrees(math32.Atan(m))
}

func (l Line) boundsOverlap(other Line) bool {
	if l.a.X > other.b.X || l.b.X < other.a.X {
		return false
	}
	return l.Lowest().Y <= other.Upest().Y && l.Upest().Y >= other.Lowest().Y
}

// CollisionWith tests the two segments for intersection. The second result
// is false when the segments do not touch.
func (l Line) CollisionWith(other Line) (Collision, bool) {
	if !l.boundsOverlap(other) {
		return Collision{}, false
	}

	selfSlope, selfErr := l.Steepness()
	otherSlope, otherErr := other.Steepness()
	selfVertical, otherVertical := selfErr != nil, otherErr != nil

	if selfVertical && otherVertical {
		x := round(l.a.X)
		if x != round(other.a.X) {
			return Collision{}, false
		}
		return newCollision(l, other, x), true
	}

	// Area where both lines are defined
	defMin := math32.Max(l.a.X, other.a.X)
	defMax := math32.Min(l.b.X, other.b.X)
	lo, hi := round(defMin), round(defMax)

	// A single vertical segment always collapses the overlap to one point,
	// so it needs the height check before the edge-touching case.
	if selfVertical {
		return crossVertical(l, other, l, other, otherSlope, lo, hi)
	}
	if otherVertical {
		return crossVertical(l, other, other, l, selfSlope, lo, hi)
	}

	if lo == hi {
		return newCollision(l, other, defMin), true
	}

	selfBase := l.a.Y - selfSlope*l.a.X
	otherBase := other.a.Y - otherSlope*other.a.X

	if round(selfSlope) == round(otherSlope) {
		if round(selfBase) != round(otherBase) {
			return Collision{}, false
		}
		return newCollision(l, other, math32.Min(l.a.X, other.a.X)), true
	}

	hit := (otherBase - selfBase) / (selfSlope - otherSlope)
	if r := round(hit); r < lo || r > hi {
		return Collision{}, false
	}
	return newCollision(l, other, hit), true
}

// crossVertical intersects a vertical segment with a sloped one by sampling
// the sloped line at the vertical's x.
func crossVertical(self, other, vertical, sloped Line, slope float32, lo, hi float32) (Collision, bool) {
	x := vertical.a.X
	if r := round(x); r < lo || r > hi {
		return Collision{}, false
	}
	y := round(sloped.a.Y + slope*(x-sloped.a.X))
	if y < round(vertical.Lowest().Y) || y > round(vertical.Upest().Y) {
		return Collision{}, false
	}
	return newCollision(self, other, x), true
}
