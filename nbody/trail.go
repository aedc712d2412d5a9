package nbody

import (
	"iter"
	"strconv"
)

// Trail is a fixed-capacity ring of the most recent positions of one body.
// Appending past the capacity overwrites the oldest entry, so memory stays
// bounded no matter how long the simulation runs.
type Trail struct {
	buf   []TrackVertex
	head  int
	size  int
	total uint64
}

// NewTrail creates an empty trail holding at most capacity entries.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		panic("trail capacity must be positive, got " + strconv.Itoa(capacity))
	}
	return &Trail{buf: make([]TrackVertex, capacity)}
}

// Append records a new position, evicting the oldest one when full.
func (t *Trail) Append(v TrackVertex) {
	t.buf[t.head] = v
	t.head = (t.head + 1) % len(t.buf)
	if t.size < len(t.buf) {
		t.size++
	}
	t.total++
}

// Len returns the number of visible entries: min(Total, Cap).
func (t *Trail) Len() int {
	return t.size
}

// Cap returns the maximum number of retained entries.
func (t *Trail) Cap() int {
	return len(t.buf)
}

// Total returns how many entries were ever appended.
func (t *Trail) Total() uint64 {
	return t.total
}

// At returns the i-th visible entry, 0 being the oldest.
func (t *Trail) At(i int) TrackVertex {
	if i < 0 || i >= t.size {
		panic("trail index out of range: " + strconv.Itoa(i))
	}
	return t.buf[t.index(i)]
}

func (t *Trail) index(i int) int {
	return (t.head - t.size + i + len(t.buf)) % len(t.buf)
}

// Last returns the most recently appended entry.
func (t *Trail) Last() (TrackVertex, bool) {
	if t.size == 0 {
		return TrackVertex{}, false
	}
	return t.buf[t.index(t.size-1)], true
}

// Visible returns the retained entries oldest first in a new slice.
func (t *Trail) Visible() []TrackVertex {
	return t.AppendVisible(make([]TrackVertex, 0, t.size))
}

// AppendVisible appends the retained entries, oldest first, to dst.
func (t *Trail) AppendVisible(dst []TrackVertex) []TrackVertex {
	start := t.index(0)
	if start+t.size <= len(t.buf) {
		return append(dst, t.buf[start:start+t.size]...)
	}
	dst = append(dst, t.buf[start:]...)
	return append(dst, t.buf[:t.head]...)
}

// All iterates over the retained entries oldest first.
func (t *Trail) All() iter.Seq2[int, TrackVertex] {
	return func(yield func(int, TrackVertex) bool) {
		for i := 0; i < t.size; i++ {
			if !yield(i, t.buf[t.index(i)]) {
				return
			}
		}
	}
}

// Reset drops every retained entry. Total is preserved.
func (t *Trail) Reset() {
	t.head = 0
	t.size = 0
}
