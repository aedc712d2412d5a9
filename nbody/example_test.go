package nbody_test

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/plus3/orrery/nbody"
)

// ExampleSpace shows two equal masses at rest pulling on each other. After a
// single step each has moved the same distance toward the other.
func ExampleSpace() {
	space := nbody.NewSpace([]nbody.Body{
		nbody.NewBody(mgl64.Vec2{-10, 0}, mgl64.Vec2{0, 0}, 4),
		nbody.NewBody(mgl64.Vec2{10, 0}, mgl64.Vec2{0, 0}, 4),
	})

	space.Step()

	for i, body := range space.Bodies() {
		fmt.Printf("body %d: x=%.2f y=%.2f vx=%.2f\n", i, body.Position[0], body.Position[1], body.Velocity[0])
	}
	// Output:
	// body 0: x=-9.99 y=0.00 vx=0.01
	// body 1: x=9.99 y=0.00 vx=-0.01
}

// ExampleSpaceView demonstrates the per-frame host loop: step the space,
// then derive the view. The camera keeps the barycenter at the origin and
// each trail grows by one entry per update.
func ExampleSpaceView() {
	space := nbody.NewSpace([]nbody.Body{
		nbody.NewBody(mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, 3),
		nbody.NewBody(mgl64.Vec2{40, 0}, mgl64.Vec2{1, 0}, 1),
	})
	view := nbody.NewSpaceView([]colorful.Color{
		{R: 1, G: 0, B: 0},
		{R: 0, G: 0, B: 1},
	}, 2)

	for range 3 {
		space.Step()
		view.Update(space)
	}

	translation := view.ViewMatrix().Col(3)
	fmt.Printf("camera x offset: %.2f\n", translation[0])
	fmt.Printf("updates: %d\n", view.UpdateCount())
	for i, track := range view.Tracks() {
		fmt.Printf("track %d: %d visible of %d recorded\n", i, track.Len(), track.Total())
	}
	// Output:
	// camera x offset: -13.00
	// updates: 3
	// track 0: 2 visible of 3 recorded
	// track 1: 2 visible of 3 recorded
}
