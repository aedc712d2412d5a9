package scene_test

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/nbody"
	"github.com/plus3/orrery/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	s, err := scene.Parse([]byte(`{
		"name": "pair",
		"trail_length": 50,
		"bodies": [
			{"mass": 10, "pos": [1, 2], "vel": [0.5, 0], "color": "#ff0000"},
			{"mass": 2.5, "pos": [-3, 4], "vel": [0, -1], "color": "#0000ff"}
		]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "pair", s.Name)
	assert.Equal(t, 50, s.TrailLength)

	bodies := s.Bodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, nbody.NewBody(mgl64.Vec2{1, 2}, mgl64.Vec2{0.5, 0}, 10), bodies[0])
	assert.Equal(t, nbody.NewBody(mgl64.Vec2{-3, 4}, mgl64.Vec2{0, -1}, 2.5), bodies[1])

	assert.Equal(t, []colorful.Color{{R: 1, G: 0, B: 0}, {R: 0, G: 0, B: 1}}, s.Colors())

	view := s.NewView(0)
	assert.Equal(t, 2, view.Len())
	assert.Equal(t, 50, view.Tracks()[0].Cap())
	assert.Equal(t, 7, s.NewView(7).Tracks()[1].Cap())
	assert.Equal(t, 2, s.NewSpace().Len())
}

func TestParseFillsMissingColors(t *testing.T) {
	s, err := scene.Parse([]byte(`{"bodies": [
		{"mass": 1, "pos": [0, 0], "vel": [0, 0]},
		{"mass": 1, "pos": [5, 0], "vel": [0, 0], "color": "#00ff00"}
	]}`))
	require.NoError(t, err)

	colors := s.Colors()
	require.Len(t, colors, 2)
	assert.True(t, colors[0].IsValid())
	assert.Equal(t, colorful.Color{R: 0, G: 1, B: 0}, colors[1])
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		err  error
		msg  string
	}{
		{"malformed json", `{"bodies": [`, nil, "parse scene"},
		{"no bodies", `{"bodies": []}`, scene.ErrNoBodies, ""},
		{"zero mass", `{"bodies": [{"mass": 0}]}`, nbody.ErrInvalidMass, "body 0"},
		{"negative mass", `{"bodies": [{"mass": 1}, {"mass": -2, "pos": [1, 1]}]}`, nbody.ErrInvalidMass, "body 1"},
		{"bad color", `{"bodies": [{"mass": 1, "color": "red"}]}`, nil, `color "red"`},
		{"negative trail", `{"trail_length": -1, "bodies": [{"mass": 1}]}`, nil, "trail_length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scene.Parse([]byte(tt.data))
			require.Error(t, err)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseTooManyBodies(t *testing.T) {
	entries := make([]string, scene.MaxBodies+1)
	for i := range entries {
		entries[i] = `{"mass": 1}`
	}

	_, err := scene.Parse([]byte(`{"bodies": [` + strings.Join(entries, ",") + `]}`))
	assert.ErrorIs(t, err, scene.ErrTooManyBodies)
}

func TestSetOrbitalVelocities(t *testing.T) {
	bodies := []scene.BodyConfig{
		{Mass: 400, Pos: [2]float64{10, 10}},
		{Mass: 1, Pos: [2]float64{10, 110}},
		{Mass: 1, Pos: [2]float64{35, 10}, Vel: [2]float64{0.3, 0}},
		{Mass: 1, Pos: [2]float64{10, 10}},
	}

	scene.SetOrbitalVelocities(bodies)

	// r = 100, v = sqrt(400/100) = 2, perpendicular to the radius.
	assert.InDelta(t, -2.0, bodies[1].Vel[0], 1e-12)
	assert.InDelta(t, 0.0, bodies[1].Vel[1], 1e-12)

	assert.Equal(t, [2]float64{0.3, 0}, bodies[2].Vel, "moving bodies are left alone")
	assert.Equal(t, [2]float64{0, 0}, bodies[3].Vel, "coincident bodies are left alone")
	assert.Equal(t, [2]float64{0, 0}, bodies[0].Vel)
}

func TestLoad(t *testing.T) {
	t.Run("auto orbit scene", func(t *testing.T) {
		s, err := scene.Load(filepath.Join("testdata", "solar.json"))
		require.NoError(t, err)

		bodies := s.Bodies()
		require.Len(t, bodies, 5)
		for _, b := range bodies[1:] {
			r := b.Position.Sub(bodies[0].Position)
			assert.InDelta(t, 0, r.Dot(b.Velocity), 1e-9)
			assert.InDelta(t, math.Sqrt(bodies[0].Mass/r.Len()), b.Velocity.Len(), 1e-9)
		}
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := scene.Load(filepath.Join("testdata", "bad-mass.json"))
		require.Error(t, err)
		assert.ErrorIs(t, err, nbody.ErrInvalidMass)
		assert.Contains(t, err.Error(), "bad-mass.json")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := scene.Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDefault(t *testing.T) {
	s := scene.Default()

	bodies := s.Bodies()
	require.Len(t, bodies, 3)
	assert.Equal(t, 150.0, bodies[0].Mass)
	assert.Equal(t, mgl64.Vec2{-50, -50}, bodies[1].Position)
	assert.Equal(t, mgl64.Vec2{0, 0.2}, bodies[2].Velocity)

	assert.Equal(t, colorful.Color{R: 1, G: 0, B: 0}, s.Colors()[0])
	assert.Equal(t, nbody.MaxTrackLength, s.NewView(0).Tracks()[0].Cap())
}
