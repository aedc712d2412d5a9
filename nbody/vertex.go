package nbody

// BodyVertex is the per-body instance record handed to a renderer.
type BodyVertex struct {
	BodyPos [2]float32
	Color   [4]float32
}

// TrackVertex is a single recorded trail position.
type TrackVertex struct {
	Pos [2]float32
}
