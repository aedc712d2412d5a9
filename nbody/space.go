package nbody

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Space is the simulation engine. It owns an ordered, fixed set of bodies
// (index = identity) and a parallel force accumulator of the same length.
//
// Step integrates with a fixed time step of 1 and a gravitational constant
// of 1. Coincident bodies and zero masses are not guarded against: the
// resulting NaN/Inf values propagate into the state. Use Finite (or the
// FiniteGuard system) to detect it.
type Space struct {
	bodies []Body
	forces []mgl64.Vec2
	steps  uint64
}

// NewSpace creates a space from a copy of the given bodies.
func NewSpace(bodies []Body) *Space {
	return &Space{
		bodies: append([]Body(nil), bodies...),
		forces: make([]mgl64.Vec2, len(bodies)),
	}
}

// Step advances the simulation by one time unit: pairwise gravity followed
// by semi-implicit Euler integration (velocity first, then position using
// the updated velocity).
func (s *Space) Step() {
	s.accumulateForces()
	for i := range s.bodies {
		body := &s.bodies[i]
		force := s.forces[i]
		body.Velocity = body.Velocity.Add(mgl64.Vec2{force[0] / body.Mass, force[1] / body.Mass})
		body.Position = body.Position.Add(body.Velocity)
	}
	s.steps++
}

func (s *Space) accumulateForces() {
	clear(s.forces)
	for i := 0; i < len(s.bodies); i++ {
		for j := i + 1; j < len(s.bodies); j++ {
			force := gravityForce(&s.bodies[i], &s.bodies[j])
			s.forces[i] = s.forces[i].Add(force)
			s.forces[j] = s.forces[j].Sub(force)
		}
	}
}

// gravityForce returns the force exerted on a by b. The direction of a zero
// displacement is undefined and yields NaN components.
func gravityForce(a, b *Body) mgl64.Vec2 {
	d := b.Position.Sub(a.Position)
	direction := d.Normalize()
	rSquared := d.Dot(d)
	return direction.Mul(a.Mass * b.Mass / rSquared)
}

// Len returns the number of bodies.
func (s *Space) Len() int {
	return len(s.bodies)
}

// Body returns a copy of the body at index i.
func (s *Space) Body(i int) Body {
	return s.bodies[i]
}

// Bodies returns a copy of all bodies in index order.
func (s *Space) Bodies() []Body {
	return append([]Body(nil), s.bodies...)
}

// Force returns the force accumulated for body i during the last Step.
func (s *Space) Force(i int) mgl64.Vec2 {
	return s.forces[i]
}

// Steps returns the number of completed steps, wrapping on overflow.
func (s *Space) Steps() uint64 {
	return s.steps
}

// Finite reports whether every position and velocity is finite.
func (s *Space) Finite() bool {
	for i := range s.bodies {
		if !finiteVec(s.bodies[i].Position) || !finiteVec(s.bodies[i].Velocity) {
			return false
		}
	}
	return true
}
