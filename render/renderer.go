// Package render draws a nbody.SpaceView with ebiten: bodies as filled
// circles in their instance color, trails as white line strips.
package render

import (
	"image"
	"image/color"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/kamstrup/intmap"
	"github.com/plus3/orrery/nbody"
)

const (
	MinZoom float32 = 0.05
	MaxZoom float32 = 50

	// Trails are stroked in chunks so a single DrawTriangles call stays
	// within 16-bit indices.
	trackChunk = 2048
	trackWidth = 1
)

type trackBuffer struct {
	vertices []ebiten.Vertex
	indices  []uint16
}

// Renderer owns the GPU-side resources used to draw a view. It is not safe
// for concurrent use and must only be used from ebiten's Draw.
type Renderer struct {
	zoom float32

	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image

	circle        []mgl32.Vec2
	circleIndices []uint16

	bodyVertices []ebiten.Vertex
	bodyIndices  []uint16

	tracks      *intmap.Map[int, *trackBuffer]
	trackPoints []nbody.TrackVertex
}

// New creates a renderer with zoom 1.
func New() *Renderer {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)

	return &Renderer{
		zoom:          1,
		whiteImage:    white,
		whiteSubImage: white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		circle:        CircleVertices(),
		circleIndices: CircleIndices(),
		tracks:        intmap.New[int, *trackBuffer](MaxBodiesCount),
	}
}

// Zoom returns the current magnification.
func (r *Renderer) Zoom() float32 {
	return r.zoom
}

// SetZoom sets the magnification, clamped to [MinZoom, MaxZoom].
func (r *Renderer) SetZoom(zoom float32) {
	r.zoom = max(MinZoom, min(MaxZoom, zoom))
}

// Draw renders view onto screen.
func (r *Renderer) Draw(screen *ebiten.Image, view *nbody.SpaceView) {
	if view.Len() > MaxBodiesCount {
		panic("cannot draw " + strconv.Itoa(view.Len()) + " bodies, limit is " + strconv.Itoa(MaxBodiesCount))
	}

	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	mvp := Projection(width, height, r.zoom).Mul4(view.ViewMatrix())

	r.drawBodies(screen, view.Instances(), mvp, width, height)
	for i, track := range view.Tracks() {
		r.drawTrack(screen, i, track, mvp, width, height)
	}
}

func (r *Renderer) drawBodies(screen *ebiten.Image, instances []nbody.BodyVertex, mvp mgl32.Mat4, width, height int) {
	r.bodyVertices = r.bodyVertices[:0]
	r.bodyIndices = r.bodyIndices[:0]

	for _, instance := range instances {
		base := uint16(len(r.bodyVertices))
		for _, offset := range r.circle {
			x, y := ToScreen(mvp, [2]float32{instance.BodyPos[0] + offset[0], instance.BodyPos[1] + offset[1]}, width, height)
			r.bodyVertices = append(r.bodyVertices, ebiten.Vertex{
				DstX:   x,
				DstY:   y,
				SrcX:   1,
				SrcY:   1,
				ColorR: instance.Color[0],
				ColorG: instance.Color[1],
				ColorB: instance.Color[2],
				ColorA: instance.Color[3],
			})
		}
		for _, idx := range r.circleIndices {
			r.bodyIndices = append(r.bodyIndices, base+idx)
		}
	}

	if len(r.bodyIndices) == 0 {
		return
	}
	screen.DrawTriangles(r.bodyVertices, r.bodyIndices, r.whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (r *Renderer) drawTrack(screen *ebiten.Image, body int, track *nbody.Trail, mvp mgl32.Mat4, width, height int) {
	if track.Len() < 2 {
		return
	}

	buf, ok := r.tracks.Get(body)
	if !ok {
		buf = &trackBuffer{}
		r.tracks.Put(body, buf)
	}

	r.trackPoints = track.AppendVisible(r.trackPoints[:0])
	for start := 0; start < len(r.trackPoints)-1; start += trackChunk - 1 {
		end := min(start+trackChunk, len(r.trackPoints))

		var path vector.Path
		for i, p := range r.trackPoints[start:end] {
			x, y := ToScreen(mvp, p.Pos, width, height)
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}

		buf.vertices, buf.indices = path.AppendVerticesAndIndicesForStroke(buf.vertices[:0], buf.indices[:0], &vector.StrokeOptions{
			Width: trackWidth,
		})
		for i := range buf.vertices {
			buf.vertices[i].SrcX = 1
			buf.vertices[i].SrcY = 1
			buf.vertices[i].ColorR = 1
			buf.vertices[i].ColorG = 1
			buf.vertices[i].ColorB = 1
			buf.vertices[i].ColorA = 1
		}
		screen.DrawTriangles(buf.vertices, buf.indices, r.whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	}
}

// Forget drops the cached trail buffers.
func (r *Renderer) Forget() {
	r.tracks.Clear()
}
