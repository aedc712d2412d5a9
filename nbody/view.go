package nbody

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
)

// MaxTrackLength is the default number of trail entries retained per body.
const MaxTrackLength = 1000

// SpaceView derives render-ready data from a Space: one instance record and
// one trail per body, plus a camera transform that keeps the barycenter at
// the origin. The body count is fixed at construction.
//
// Slices returned by the accessors are owned by the view and are only valid
// until the next Update.
type SpaceView struct {
	instances   []BodyVertex
	tracks      []*Trail
	view        mgl32.Mat4
	center      mgl64.Vec2
	updateCount uint64
}

// NewSpaceView creates a view for len(colors) bodies. Each trail retains
// trackLength entries; a non-positive trackLength selects MaxTrackLength.
func NewSpaceView(colors []colorful.Color, trackLength int) *SpaceView {
	if trackLength <= 0 {
		trackLength = MaxTrackLength
	}

	instances := make([]BodyVertex, len(colors))
	tracks := make([]*Trail, len(colors))
	for i, c := range colors {
		instances[i].Color = [4]float32{float32(c.R), float32(c.G), float32(c.B), 1}
		tracks[i] = NewTrail(trackLength)
	}

	return &SpaceView{
		instances: instances,
		tracks:    tracks,
		view:      mgl32.Ident4(),
	}
}

// Update refreshes instances, trails and the camera transform from the
// current state of space. The body count of space must match the view's;
// a mismatch is a programming error and panics.
func (v *SpaceView) Update(space *Space) {
	if space.Len() != len(v.instances) {
		panic(fmt.Sprintf("space view tracks %d bodies but space has %d", len(v.instances), space.Len()))
	}

	for i := range space.bodies {
		pos := narrow(space.bodies[i].Position)
		v.instances[i].BodyPos = pos
		v.tracks[i].Append(TrackVertex{Pos: pos})
	}

	v.center = Barycenter(space.bodies)
	v.view = mgl32.Translate3D(float32(-v.center[0]), float32(-v.center[1]), 0)

	// Wraps silently at 2^64.
	v.updateCount++
}

func narrow(p mgl64.Vec2) [2]float32 {
	return [2]float32{float32(p[0]), float32(p[1])}
}

// Barycenter returns the mass-weighted mean position of bodies. It is NaN
// when the total mass is zero.
func Barycenter(bodies []Body) mgl64.Vec2 {
	var weighted mgl64.Vec2
	var totalMass float64
	for i := range bodies {
		weighted = weighted.Add(bodies[i].Position.Mul(bodies[i].Mass))
		totalMass += bodies[i].Mass
	}
	return mgl64.Vec2{weighted[0] / totalMass, weighted[1] / totalMass}
}

// Len returns the number of bodies the view was built for.
func (v *SpaceView) Len() int {
	return len(v.instances)
}

// Instances returns the per-body instance records.
func (v *SpaceView) Instances() []BodyVertex {
	return v.instances
}

// Tracks returns the per-body trails.
func (v *SpaceView) Tracks() []*Trail {
	return v.tracks
}

// ViewMatrix returns the camera transform: a translation by the negated barycenter.
func (v *SpaceView) ViewMatrix() mgl32.Mat4 {
	return v.view
}

// Center returns the barycenter computed by the last Update.
func (v *SpaceView) Center() mgl64.Vec2 {
	return v.center
}

// UpdateCount returns the number of Update calls modulo 2^64.
func (v *SpaceView) UpdateCount() uint64 {
	return v.updateCount
}

// ClearTracks empties every trail.
func (v *SpaceView) ClearTracks() {
	for _, t := range v.tracks {
		t.Reset()
	}
}
