package debugui

import (
	"github.com/plus3/orrery/nbody"
)

// EnergyHistory is a nbody.System that samples the total energy of the
// space every frame into a fixed-size ring, relative to the first sample.
type EnergyHistory struct {
	samples []float64
	head    int
	size    int

	reference    float64
	hasReference bool
	drift        []float32
}

func NewEnergyHistory(frames int) *EnergyHistory {
	return &EnergyHistory{
		samples: make([]float64, frames),
		drift:   make([]float32, 0, frames),
	}
}

func (h *EnergyHistory) Execute(frame *nbody.Frame) {
	energy := nbody.CollectStats(frame.Space).TotalEnergy
	if !h.hasReference {
		h.reference = energy
		h.hasReference = true
	}

	h.samples[h.head] = energy
	h.head = (h.head + 1) % len(h.samples)
	if h.size < len(h.samples) {
		h.size++
	}
}

// Len returns the number of retained samples.
func (h *EnergyHistory) Len() int {
	return h.size
}

// Reference returns the energy of the first sample.
func (h *EnergyHistory) Reference() float64 {
	return h.reference
}

// Drift returns (E - E0) / |E0| for every retained sample, oldest first.
// The slice is reused by the next call.
func (h *EnergyHistory) Drift() []float32 {
	h.drift = h.drift[:0]
	for i := 0; i < h.size; i++ {
		e := h.samples[(h.head-h.size+i+len(h.samples))%len(h.samples)]
		d := e - h.reference
		if h.reference != 0 {
			d /= max(h.reference, -h.reference)
		}
		h.drift = append(h.drift, float32(d))
	}
	return h.drift
}
