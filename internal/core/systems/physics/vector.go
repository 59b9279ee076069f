package physics

import "math"

// Vector2D is a force, or a velocity once divided by mass.
type Vector2D struct {
	X float64
	Y float64
}

// NewVector2D creates a vector from its components
func NewVector2D(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Add returns the component-wise sum of two vectors
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X + other.X,
		Y: v.Y + other.Y,
	}
}

// Sub returns the component-wise difference of two vectors
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{
		X: v.X - other.X,
		Y: v.Y - other.Y,
	}
}

// Neg returns the vector pointing the opposite way
func (v Vector2D) Neg() Vector2D {
	return Vector2D{X: -v.X, Y: -v.Y}
}

// Scale multiplies both components by k
func (v Vector2D) Scale(k float64) Vector2D {
	return Vector2D{
		X: v.X * k,
		Y: v.Y * k,
	}
}

// Div divides both components by k. Dividing by zero is not checked.
func (v Vector2D) Div(k float64) Vector2D {
	return Vector2D{
		X: v.X / k,
		Y: v.Y / k,
	}
}

// Magnitude returns the Euclidean norm
func (v Vector2D) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// AsPolar returns the magnitude and the angle atan(x/y) in degrees.
// The arctangent has a single branch, so opposite vectors share an angle;
// only compare angles relative to each other.
func (v Vector2D) AsPolar() (magnitude, angle float64) {
	magnitude = v.Magnitude()
	if magnitude == 0 {
		return 0, 0
	}
	return magnitude, math.Atan(v.X/v.Y) * 180 / math.Pi
}

// AsVelocity converts a force into the velocity of a body of the given mass
func (v Vector2D) AsVelocity(mass float64) Vector2D {
	return v.Div(mass)
}
