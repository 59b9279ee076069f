package physics

import (
	"fmt"
	"math"
)

var _ Interact = (*Particle)(nil)

// Particle is a square body made of two triangles centered on its position.
// The mesh is only ever translated together with the position.
type Particle struct {
	pos   Point
	mesh  [2]Triangle
	force Vector2D
	mass  float64
	size  float32
}

// NewParticle creates a square particle of side size centered on pos.
func NewParticle(pos Point, force Vector2D, mass float64, size float32) (*Particle, error) {
	if !(mass > 0) || math.IsInf(mass, 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMass, mass)
	}
	if !(size > 0) || math.IsInf(float64(size), 1) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}

	half := size / 2
	upperLeft := Point{X: pos.X - half, Y: pos.Y + half}
	upperRight := Point{X: pos.X + half, Y: pos.Y + half}
	lowerRight := Point{X: pos.X + half, Y: pos.Y - half}
	lowerLeft := Point{X: pos.X - half, Y: pos.Y - half}

	return &Particle{
		pos:   pos,
		force: force,
		mass:  mass,
		size:  size,
		mesh: [2]Triangle{
			NewTriangle(upperLeft, upperRight, lowerRight),
			NewTriangle(upperLeft, lowerRight, lowerLeft),
		},
	}, nil
}

func (p *Particle) Mesh() []Triangle { return p.mesh[:] }

func (p *Particle) Mass() float64           { return p.mass }
func (p *Particle) Force() Vector2D         { return p.force }
func (p *Particle) SetForce(force Vector2D) { p.force = force }
func (p *Particle) Position() Point         { return p.pos }
func (p *Particle) Size() float32           { return p.size }
func (p *Particle) Speed() Vector2D         { return Speed(p) }

func (p *Particle) Advance(tick float64) {
	if tick == 0 {
		return
	}
	speed := p.Speed()
	dx := float32(speed.X * tick)
	dy := float32(speed.Y * tick)

	p.pos = p.pos.Translate(dx, dy)
	for i := range p.mesh {
		p.mesh[i].Translate(dx, dy)
	}
}

func (p *Particle) CollisionsWith(other Shape) []Collision {
	return CollisionsBetween(p, other)
}

func (p *Particle) Collide(other Move) {
	Collide(p, other)
}

func (p *Particle) Bounce() {
	Bounce(p)
}
