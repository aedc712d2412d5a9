// Package nbody simulates point masses under mutual gravitational attraction
// and derives a render-ready view of the simulation: instance records, a
// barycenter-centered camera transform and bounded per-body trails.
package nbody

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrInvalidMass is returned by Body.Validate for zero, negative or non-finite masses.
	ErrInvalidMass = errors.New("body mass must be positive and finite")
	// ErrNonFinite is returned by Body.Validate when a position or velocity is NaN or infinite.
	ErrNonFinite = errors.New("body state must be finite")
)

// Body is a simulated point mass. Bodies are owned by a Space and handed out by value.
type Body struct {
	Position mgl64.Vec2
	Velocity mgl64.Vec2
	Mass     float64
}

// NewBody creates a body with the given initial state.
func NewBody(position, velocity mgl64.Vec2, mass float64) Body {
	return Body{
		Position: position,
		Velocity: velocity,
		Mass:     mass,
	}
}

// Momentum returns mass * velocity.
func (b Body) Momentum() mgl64.Vec2 {
	return b.Velocity.Mul(b.Mass)
}

// KineticEnergy returns m * |v|^2 / 2.
func (b Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
}

// Validate reports whether the body can be integrated without producing
// non-finite values on its own. Space never calls it; scene loaders do.
func (b Body) Validate() error {
	if math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0) || b.Mass <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidMass, b.Mass)
	}
	if !finiteVec(b.Position) {
		return fmt.Errorf("%w: position %v", ErrNonFinite, b.Position)
	}
	if !finiteVec(b.Velocity) {
		return fmt.Errorf("%w: velocity %v", ErrNonFinite, b.Velocity)
	}
	return nil
}

func finiteVec(v mgl64.Vec2) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
