package nbody

import (
	"github.com/go-gl/mathgl/mgl64"
)

// SpaceStats is a snapshot of conserved quantities and bookkeeping for a Space.
type SpaceStats struct {
	BodyCount       int
	Steps           uint64
	TotalMass       float64
	Momentum        mgl64.Vec2
	KineticEnergy   float64
	PotentialEnergy float64
	TotalEnergy     float64
	Barycenter      mgl64.Vec2
	Finite          bool
}

// CollectStats computes statistics for the current state of space.
// Potential energy uses the same G = 1 convention as Step.
func CollectStats(space *Space) *SpaceStats {
	stats := &SpaceStats{
		BodyCount: space.Len(),
		Steps:     space.Steps(),
		Finite:    space.Finite(),
	}

	bodies := space.bodies
	for i := range bodies {
		stats.TotalMass += bodies[i].Mass
		stats.Momentum = stats.Momentum.Add(bodies[i].Momentum())
		stats.KineticEnergy += bodies[i].KineticEnergy()

		for j := i + 1; j < len(bodies); j++ {
			d := bodies[j].Position.Sub(bodies[i].Position)
			stats.PotentialEnergy -= bodies[i].Mass * bodies[j].Mass / d.Len()
		}
	}
	stats.TotalEnergy = stats.KineticEnergy + stats.PotentialEnergy

	if len(bodies) > 0 {
		stats.Barycenter = Barycenter(bodies)
	}

	return stats
}
