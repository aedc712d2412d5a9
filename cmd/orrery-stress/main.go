package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/nbody"
	"github.com/plus3/orrery/scene"
)

const (
	centralMass = 10000
	minRadius   = 80
	maxRadius   = 600
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	bodyCount := flag.Int("bodies", 200, "The number of orbiting bodies (plus one central mass).")
	seed := flag.Uint64("seed", 1, "Seed for the initial body layout.")
	trail := flag.Int("trail", nbody.MaxTrackLength, "Trail length per body.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting n-body stress test...")

	// 1. Build the initial bodies
	log.Printf("Placing %d bodies around a central mass...\n", *bodyCount)
	bodies, colors := randomDisc(*bodyCount, *seed)
	space := nbody.NewSpace(bodies)
	view := nbody.NewSpaceView(colors, *trail)

	energy := &EnergySampler{}
	stage := nbody.NewDefaultStage(space, view)
	stage.Register(energy)

	// 2. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Bodies:         space.Len(),
		TrailLength:    view.Tracks()[0].Cap(),
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		StartStats:     *nbody.CollectStats(space),
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var samples []float64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			frameStart := time.Now()
			stage.Once()
			samples = append(samples, float64(time.Since(frameStart))/float64(time.Microsecond))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.FrameTime = NewStats(samples)
	report.Stage = *stage.GetStats()
	report.EndStats = *nbody.CollectStats(space)
	report.Drift = energy.Drift()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 3. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

// randomDisc places n light bodies on circular orbits around a heavy one.
func randomDisc(n int, seed uint64) ([]nbody.Body, []colorful.Color) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	configs := make([]scene.BodyConfig, n+1)
	configs[0] = scene.BodyConfig{Mass: centralMass}
	for i := 1; i <= n; i++ {
		r := minRadius + rng.Float64()*(maxRadius-minRadius)
		theta := rng.Float64() * 2 * math.Pi
		configs[i] = scene.BodyConfig{
			Mass: 0.1 + rng.Float64(),
			Pos:  [2]float64{r * math.Cos(theta), r * math.Sin(theta)},
		}
	}
	scene.SetOrbitalVelocities(configs)

	bodies := make([]nbody.Body, len(configs))
	for i, c := range configs {
		bodies[i] = nbody.NewBody(mgl64.Vec2(c.Pos), mgl64.Vec2(c.Vel), c.Mass)
	}
	return bodies, colorful.FastHappyPalette(len(bodies))
}

// EnergySampler records the total energy after every frame.
type EnergySampler struct {
	energies []float64
}

func (e *EnergySampler) Execute(frame *nbody.Frame) {
	e.energies = append(e.energies, nbody.CollectStats(frame.Space).TotalEnergy)
}

// Drift returns (E - E0) / |E0| for every recorded frame.
func (e *EnergySampler) Drift() []float64 {
	if len(e.energies) == 0 {
		return nil
	}
	ref := math.Abs(e.energies[0])
	drift := make([]float64, len(e.energies))
	for i, energy := range e.energies {
		drift[i] = (energy - e.energies[0]) / ref
	}
	return drift
}
