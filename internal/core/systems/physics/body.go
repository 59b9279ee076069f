package physics

// Shape exposes the collision mesh of a body.
type Shape interface {
	Mesh() []Triangle
}

// Move is a body with mass that is pushed around by a force.
type Move interface {
	Shape

	Mass() float64
	Force() Vector2D
	SetForce(Vector2D)
	Position() Point

	// Advance integrates the position and mesh by one tick of the given length
	Advance(tick float64)
}

// Interact is a moving body that can touch other bodies.
type Interact interface {
	Move

	CollisionsWith(other Shape) []Collision
	Collide(other Move)
	Bounce()
}

// Speed returns the velocity of m, force divided by mass.
func Speed(m Move) Vector2D {
	return m.Force().AsVelocity(m.Mass())
}

// CollisionsBetween checks every triangle of a against every triangle of b.
// An empty result means the bodies are not in contact.
func CollisionsBetween(a, b Shape) []Collision {
	var all []Collision
	own, theirs := a.Mesh(), b.Mesh()
	for i := range own {
		for j := range theirs {
			all = append(all, own[i].Collisions(&theirs[j])...)
		}
	}
	return all
}

// Collide exchanges momentum between self and other along the difference of
// their velocities. Both new forces are derived from the state before the
// call.
func Collide(self, other Move) {
	selfForce, otherForce := self.Force(), other.Force()
	selfMass, otherMass := self.Mass(), other.Mass()
	diff := Speed(self).Sub(Speed(other))

	otherDelta := exchange(diff, otherMass/selfMass).Scale(otherMass)
	selfDelta := exchange(diff.Neg(), selfMass/otherMass).Scale(selfMass)

	other.SetForce(otherForce.Neg().Add(otherDelta))
	self.SetForce(selfForce.Neg().Add(selfDelta))
}

func exchange(diff Vector2D, ratio float64) Vector2D {
	return diff.Sub(diff.Div(ratio)).Neg()
}

// Bounce reverses the force of m.
func Bounce(m Move) {
	m.SetForce(m.Force().Neg())
}
