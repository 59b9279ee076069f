package physics

import "github.com/chewxy/math32"

// Triangle is the atomic element of a body's mesh.
type Triangle struct {
	A Point
	B Point
	C Point
}

func NewTriangle(a, b, c Point) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Vertices returns copies of the three corners.
func (t Triangle) Vertices() [3]Point {
	return [3]Point{t.A, t.B, t.C}
}

// Points gives mutable access to the corners.
func (t *Triangle) Points() [3]*Point {
	return [3]*Point{&t.A, &t.B, &t.C}
}

// Edges returns the three sides as views into t.
func (t *Triangle) Edges() [3]Line {
	return [3]Line{
		LineFromPoints(&t.A, &t.B),
		LineFromPoints(&t.B, &t.C),
		LineFromPoints(&t.C, &t.A),
	}
}

// Bounds returns the lower-left and upper-right corners of the bounding box.
func (t Triangle) Bounds() (lower, upper Point) {
	lower = Point{
		X: math32.Min(t.A.X, math32.Min(t.B.X, t.C.X)),
		Y: math32.Min(t.A.Y, math32.Min(t.B.Y, t.C.Y)),
	}
	upper = Point{
		X: math32.Max(t.A.X, math32.Max(t.B.X, t.C.X)),
		Y: math32.Max(t.A.Y, math32.Max(t.B.Y, t.C.Y)),
	}
	return lower, upper
}

func (t Triangle) Centroid() Point {
	return Point{
		X: (t.A.X + t.B.X + t.C.X) / 3,
		Y: (t.A.Y + t.B.Y + t.C.Y) / 3,
	}
}

// Translate moves every corner by (dx, dy).
func (t *Triangle) Translate(dx, dy float32) {
	for _, p := range t.Points() {
		p.X += dx
		p.Y += dy
	}
}

// Barycentric returns the coordinates of p relative to t. ok is false for a
// degenerate triangle with zero area.
func (t Triangle) Barycentric(p Point) (alpha, beta, gamma float32, ok bool) {
	det := (t.B.Y-t.C.Y)*(t.A.X-t.C.X) + (t.C.X-t.B.X)*(t.A.Y-t.C.Y)
	if det == 0 {
		return 0, 0, 0, false
	}
	alpha = ((t.B.Y-t.C.Y)*(p.X-t.C.X) + (t.C.X-t.B.X)*(p.Y-t.C.Y)) / det
	beta = ((t.C.Y-t.A.Y)*(p.X-t.C.X) + (t.A.X-t.C.X)*(p.Y-t.C.Y)) / det
	gamma = 1 - alpha - beta
	return alpha, beta, gamma, true
}

// Contains reports whether p lies inside t or on its border.
func (t Triangle) Contains(p Point) bool {
	alpha, beta, gamma, ok := t.Barycentric(p)
	if !ok {
		return false
	}
	return inUnit(alpha) && inUnit(beta) && inUnit(gamma)
}

func inUnit(v float32) bool {
	return v >= 0 && v <= 1
}

// Collisions returns every crossing between the edges of t and the edges of
// other. The edge pairs are skipped only when all of other's corners lie
// inside t.
func (t *Triangle) Collisions(other *Triangle) []Collision {
	contained := 0
	for _, p := range other.Vertices() {
		if t.Contains(p) {
			contained++
		}
	}
	if contained == len(other.Vertices()) {
		return nil
	}

	var found []Collision
	own, theirs := t.Edges(), other.Edges()
	for _, edge := range own {
		for _, otherEdge := range theirs {
			if c, ok := edge.CollisionWith(otherEdge); ok {
				found = append(found, c)
			}
		}
	}
	return found
}
