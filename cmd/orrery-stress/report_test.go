package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/plus3/orrery/nbody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Stats{}, NewStats(nil))
	})

	t.Run("summary", func(t *testing.T) {
		samples := []float64{5, 1, 3, 2, 4}
		stats := NewStats(samples)

		assert.Equal(t, 5, stats.Count)
		assert.InDelta(t, 3, stats.Mean, 1e-12)
		assert.InDelta(t, math.Sqrt(2.5), stats.StdDev, 1e-12)
		assert.Equal(t, 1.0, stats.Min)
		assert.Equal(t, 5.0, stats.Max)
		assert.Equal(t, 3.0, stats.P50)
		assert.Equal(t, 5.0, stats.P99)

		// input is left unsorted
		assert.Equal(t, []float64{5, 1, 3, 2, 4}, samples)
	})
}

func TestDownsample(t *testing.T) {
	short := []float64{1, 2, 3}
	assert.Equal(t, short, downsample(short, 10))

	long := make([]float64, 101)
	for i := range long {
		long[i] = float64(i)
	}
	out := downsample(long, 11)
	require.Len(t, out, 11)
	assert.Equal(t, 0.0, out[0])
	assert.Equal(t, 50.0, out[5])
	assert.Equal(t, 100.0, out[10])
}

func TestRandomDisc(t *testing.T) {
	bodies, colors := randomDisc(20, 7)
	require.Len(t, bodies, 21)
	assert.Len(t, colors, 21)

	assert.Equal(t, float64(centralMass), bodies[0].Mass)
	assert.Zero(t, bodies[0].Velocity.Len())

	for i, b := range bodies[1:] {
		r := b.Position.Len()
		assert.GreaterOrEqual(t, r, float64(minRadius), "body %d", i+1)
		assert.LessOrEqual(t, r, float64(maxRadius), "body %d", i+1)

		// circular orbit: velocity perpendicular to the radius
		assert.InDelta(t, 0, b.Position.Dot(b.Velocity), 1e-9, "body %d", i+1)
		assert.InDelta(t, math.Sqrt(centralMass/r), b.Velocity.Len(), 1e-9, "body %d", i+1)
	}

	again, _ := randomDisc(20, 7)
	assert.Equal(t, bodies, again)
}

func TestReportGenerate(t *testing.T) {
	bodies, colors := randomDisc(5, 1)
	space := nbody.NewSpace(bodies)
	view := nbody.NewSpaceView(colors, 16)

	energy := &EnergySampler{}
	stage := nbody.NewDefaultStage(space, view)
	stage.Register(energy)

	start := *nbody.CollectStats(space)
	for range 50 {
		stage.Once()
	}

	drift := energy.Drift()
	require.Len(t, drift, 50)
	assert.Equal(t, 0.0, drift[0])

	report := &Report{
		Bodies:      space.Len(),
		TrailLength: 16,
		Seed:        1,
		FrameTime:   NewStats([]float64{10, 20, 30}),
		Stage:       *stage.GetStats(),
		StartStats:  start,
		EndStats:    *nbody.CollectStats(space),
		Drift:       drift,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Generate(&buf))

	out := buf.String()
	assert.Contains(t, out, "# N-Body Stress Test Report")
	assert.Contains(t, out, "- **Bodies:** 6")
	assert.Contains(t, out, "- **Steps:** 50")
	assert.Contains(t, out, "StepSystem")
	assert.Contains(t, out, "relative energy drift")
	assert.NotContains(t, out, "GC Pause Durations")
}

func TestEnergySamplerEmpty(t *testing.T) {
	assert.Nil(t, (&EnergySampler{}).Drift())
}
