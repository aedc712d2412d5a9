package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MaxBodiesCount is the largest number of body instances drawn per frame.
	MaxBodiesCount = 100

	CircleRadius       float32 = 2
	CircleQuality              = 12
	CircleIndicesCount         = (CircleQuality - 2) * 3
)

// CircleVertices returns the outline of a body, centered on the origin, in world units.
func CircleVertices() []mgl32.Vec2 {
	const aspect = 2 * math.Pi / CircleQuality

	vertices := make([]mgl32.Vec2, CircleQuality)
	for i := range vertices {
		angle := float64(i) * aspect
		vertices[i] = mgl32.Vec2{
			float32(math.Cos(angle)) * CircleRadius,
			float32(math.Sin(angle)) * CircleRadius,
		}
	}
	return vertices
}

// CircleIndices triangulates CircleVertices as a fan around vertex 0.
func CircleIndices() []uint16 {
	indices := make([]uint16, CircleIndicesCount)
	for i := 0; i < CircleQuality-2; i++ {
		indices[i*3+1] = uint16(i + 1)
		indices[i*3+2] = uint16(i + 2)
	}
	return indices
}

// Projection returns an orthographic projection with the origin at the
// center of a width x height screen. zoom > 1 magnifies.
func Projection(width, height int, zoom float32) mgl32.Mat4 {
	halfWidth := float32(width) / 2 / zoom
	halfHeight := float32(height) / 2 / zoom
	return mgl32.Ortho(-halfWidth, halfWidth, -halfHeight, halfHeight, 0, 1)
}

// ToScreen maps a world position through mvp into pixel coordinates, with
// y growing downwards.
func ToScreen(mvp mgl32.Mat4, pos [2]float32, width, height int) (float32, float32) {
	clip := mvp.Mul4x1(mgl32.Vec4{pos[0], pos[1], 0, 1})
	x := (clip[0] + 1) / 2 * float32(width)
	y := (1 - clip[1]) / 2 * float32(height)
	return x, y
}
