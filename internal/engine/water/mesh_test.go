package water

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridMesh(t *testing.T) {
	m, err := NewGridMesh(4)
	require.NoError(t, err)

	assert.Equal(t, 25, m.VertexCount())
	assert.Equal(t, 4, m.GridResolution())
	assert.Len(t, m.Indices(), 4*4*6)

	first := m.Vertex(0)
	last := m.Vertex(m.VertexCount() - 1)
	assert.Equal(t, float32(-1), first.Base.X)
	assert.Equal(t, float32(-1), first.Base.Y)
	assert.InDelta(t, 1, last.Base.X, 1e-6)
	assert.InDelta(t, 1, last.Base.Y, 1e-6)

	for _, idx := range m.Indices() {
		assert.Less(t, int(idx), m.VertexCount())
	}
}

func TestNewGridMeshInvalid(t *testing.T) {
	for _, res := range []int{0, -3} {
		_, err := NewGridMesh(res)
		assert.ErrorIs(t, err, ErrInvalidResolution)
	}
}

func TestForEachVertexBumpsVersion(t *testing.T) {
	m, err := NewGridMesh(2)
	require.NoError(t, err)

	v0 := m.Version()
	visited := 0
	m.ForEachVertex(func(i int, v *Vertex) {
		assert.Equal(t, visited, i)
		visited++
	})
	assert.Equal(t, m.VertexCount(), visited)
	assert.Greater(t, m.Version(), v0)
}

func TestInterleave(t *testing.T) {
	m, err := NewGridMesh(1)
	require.NoError(t, err)
	m.ForEachVertex(func(i int, v *Vertex) {
		v.Amplitude[0] = float32(i)
	})

	buf := m.Interleave(nil)
	require.Len(t, buf, m.VertexCount()*VertexStride)
	for i := range m.VertexCount() {
		v := m.Vertex(i)
		o := i * VertexStride
		assert.Equal(t, v.Position.X, buf[o])
		assert.Equal(t, v.Position.Y, buf[o+1])
		assert.Equal(t, v.Position.Z, buf[o+2])
		assert.Equal(t, float32(i), buf[o+3])
	}

	// Reuses capacity.
	again := m.Interleave(buf)
	assert.Same(t, &buf[0], &again[0])
}

func TestBounds(t *testing.T) {
	m, err := NewGridMesh(3)
	require.NoError(t, err)
	UpdateFrame(m, Params{PlaneSize: 5}, 0)

	lo, hi := m.Bounds()
	assert.InDelta(t, -5, lo.X, 1e-5)
	assert.InDelta(t, -5, lo.Y, 1e-5)
	assert.InDelta(t, 5, hi.X, 1e-5)
	assert.InDelta(t, 5, hi.Y, 1e-5)
	assert.Zero(t, lo.Z)
	assert.Zero(t, hi.Z)
}
