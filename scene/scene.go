// Package scene loads the initial bodies and colors of a simulation from
// JSON scene files.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/nbody"
)

// MaxBodies bounds the number of bodies a scene may declare.
const MaxBodies = 100

var (
	ErrNoBodies      = errors.New("scene has no bodies")
	ErrTooManyBodies = fmt.Errorf("scene has more than %d bodies", MaxBodies)
)

// Scene is the decoded form of a scene file.
type Scene struct {
	Name        string       `json:"name"`
	TrailLength int          `json:"trail_length,omitempty"`
	AutoOrbit   bool         `json:"auto_orbit,omitempty"`
	Bodies      []BodyConfig `json:"bodies"`

	colors []colorful.Color
}

// BodyConfig is one body entry of a scene file. Color is "#rrggbb"; when
// empty a palette color is assigned.
type BodyConfig struct {
	Mass  float64    `json:"mass"`
	Pos   [2]float64 `json:"pos"`
	Vel   [2]float64 `json:"vel"`
	Color string     `json:"color,omitempty"`
}

// Load reads and parses the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scene. When AutoOrbit is set, bodies after
// the first that have zero velocity are put on a circular orbit around it.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	if s.AutoOrbit {
		SetOrbitalVelocities(s.Bodies)
	}

	if err := s.init(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Scene) init() error {
	if len(s.Bodies) == 0 {
		return ErrNoBodies
	}
	if len(s.Bodies) > MaxBodies {
		return ErrTooManyBodies
	}
	if s.TrailLength < 0 {
		return fmt.Errorf("trail_length must not be negative, got %d", s.TrailLength)
	}

	palette := colorful.FastHappyPalette(len(s.Bodies))
	s.colors = make([]colorful.Color, len(s.Bodies))

	for i, b := range s.Bodies {
		if err := b.body().Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}

		if b.Color == "" {
			s.colors[i] = palette[i]
			continue
		}
		c, err := colorful.Hex(b.Color)
		if err != nil {
			return fmt.Errorf("body %d: color %q: %w", i, b.Color, err)
		}
		s.colors[i] = c
	}
	return nil
}

func (b BodyConfig) body() nbody.Body {
	return nbody.NewBody(mgl64.Vec2(b.Pos), mgl64.Vec2(b.Vel), b.Mass)
}

// SetOrbitalVelocities gives every body after the first, if it is at rest,
// the velocity of a circular orbit around the first body (G = 1).
func SetOrbitalVelocities(bodies []BodyConfig) {
	if len(bodies) == 0 {
		return
	}

	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if bodies[i].Vel != [2]float64{} {
			continue
		}

		dx := bodies[i].Pos[0] - central.Pos[0]
		dy := bodies[i].Pos[1] - central.Pos[1]
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(central.Mass / r)
		bodies[i].Vel = [2]float64{-dy / r * v, dx / r * v}
	}
}

// Bodies returns the initial bodies in declaration order.
func (s *Scene) Bodies() []nbody.Body {
	bodies := make([]nbody.Body, len(s.Bodies))
	for i, b := range s.Bodies {
		bodies[i] = b.body()
	}
	return bodies
}

// Colors returns one color per body.
func (s *Scene) Colors() []colorful.Color {
	return s.colors
}

// NewSpace creates a simulation engine seeded with the scene's bodies.
func (s *Scene) NewSpace() *nbody.Space {
	return nbody.NewSpace(s.Bodies())
}

// NewView creates a view for the scene. trailLength overrides the scene's
// own trail length when positive.
func (s *Scene) NewView(trailLength int) *nbody.SpaceView {
	if trailLength <= 0 {
		trailLength = s.TrailLength
	}
	return nbody.NewSpaceView(s.colors, trailLength)
}

// Default returns the built-in three-body scene.
func Default() *Scene {
	s := &Scene{
		Name: "three bodies",
		Bodies: []BodyConfig{
			{Mass: 150, Pos: [2]float64{100, 50}, Vel: [2]float64{0.2, -0.2}, Color: "#ff0000"},
			{Mass: 15, Pos: [2]float64{-50, -50}, Vel: [2]float64{0, 0.2}, Color: "#00ff00"},
			{Mass: 5, Pos: [2]float64{50, -50}, Vel: [2]float64{0, 0.2}, Color: "#0000ff"},
		},
	}
	if err := s.init(); err != nil {
		panic("invalid default scene: " + err.Error())
	}
	return s
}
