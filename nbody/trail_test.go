package nbody_test

import (
	"testing"

	"github.com/plus3/orrery/nbody"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vertex(x float32) nbody.TrackVertex {
	return nbody.TrackVertex{Pos: [2]float32{x, -x}}
}

func TestTrail(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		trail := nbody.NewTrail(3)

		_, ok := trail.Last()
		assert.False(t, ok)
		assert.Empty(t, trail.Visible())
		assert.Equal(t, 3, trail.Cap())
	})

	t.Run("wraps keeping the newest entries in order", func(t *testing.T) {
		trail := nbody.NewTrail(3)
		for i := range 7 {
			trail.Append(vertex(float32(i)))
		}

		require.Equal(t, 3, trail.Len())
		assert.Equal(t, uint64(7), trail.Total())
		assert.Equal(t, []nbody.TrackVertex{vertex(4), vertex(5), vertex(6)}, trail.Visible())
		assert.Equal(t, vertex(4), trail.At(0))
		assert.Equal(t, vertex(6), trail.At(2))

		last, ok := trail.Last()
		assert.True(t, ok)
		assert.Equal(t, vertex(6), last)
	})

	t.Run("all matches visible", func(t *testing.T) {
		trail := nbody.NewTrail(4)
		for i := range 6 {
			trail.Append(vertex(float32(i)))
		}

		var seen []nbody.TrackVertex
		for i, v := range trail.All() {
			assert.Equal(t, len(seen), i)
			seen = append(seen, v)
		}
		assert.Equal(t, trail.Visible(), seen)
	})

	t.Run("append visible reuses storage", func(t *testing.T) {
		trail := nbody.NewTrail(2)
		trail.Append(vertex(1))
		trail.Append(vertex(2))
		trail.Append(vertex(3))

		buf := make([]nbody.TrackVertex, 0, 8)
		buf = trail.AppendVisible(buf)
		buf = trail.AppendVisible(buf)

		assert.Equal(t, []nbody.TrackVertex{vertex(2), vertex(3), vertex(2), vertex(3)}, buf)
	})

	t.Run("reset", func(t *testing.T) {
		trail := nbody.NewTrail(2)
		trail.Append(vertex(1))
		trail.Append(vertex(2))
		trail.Append(vertex(3))
		trail.Reset()

		assert.Equal(t, 0, trail.Len())
		assert.Equal(t, uint64(3), trail.Total())

		trail.Append(vertex(9))
		assert.Equal(t, []nbody.TrackVertex{vertex(9)}, trail.Visible())
	})

	t.Run("out of range", func(t *testing.T) {
		trail := nbody.NewTrail(2)
		trail.Append(vertex(1))

		assert.Panics(t, func() { trail.At(1) })
		assert.Panics(t, func() { trail.At(-1) })
	})

	t.Run("invalid capacity", func(t *testing.T) {
		assert.Panics(t, func() { nbody.NewTrail(0) })
	})
}
