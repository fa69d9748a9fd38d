package engine

import "math"

// Body is a point mass in the viewport. Bodies carry no identity of their
// own; they are distinguished by their slot in the engine's body list.
type Body struct {
	Pos    Vec2
	Vel    Vec2
	Mass   float64
	Radius float64
}

// RadiusForMass maps a mass to the drawn/collision radius.
func RadiusForMass(mass float64) float64 {
	return 2 * math.Sqrt(mass)
}

// NewBody constructs a body with the radius derived from its mass.
func NewBody(pos, vel Vec2, mass float64) (Body, error) {
	if mass <= 0 {
		return Body{}, ErrNonPositiveMass
	}
	return Body{Pos: pos, Vel: vel, Mass: mass, Radius: RadiusForMass(mass)}, nil
}

// NewBodyWithRadius constructs a body with an explicitly supplied radius.
func NewBodyWithRadius(pos, vel Vec2, mass, radius float64) (Body, error) {
	if mass <= 0 {
		return Body{}, ErrNonPositiveMass
	}
	if radius <= 0 {
		return Body{}, ErrNonPositiveRadius
	}
	return Body{Pos: pos, Vel: vel, Mass: mass, Radius: radius}, nil
}
