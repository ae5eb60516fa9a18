// Package water provides the wave-surface grid mesh and its per-frame update.
package water

import (
	"errors"
	"fmt"

	"github.com/Faultbox/waveview/pkg/math"
)

// DirNum is the number of amplitude channels carried by each vertex.
const DirNum = 16

// DefaultResolution is the number of grid cells per side.
const DefaultResolution = 200

// VertexStride is the number of floats per vertex written by Interleave:
// position (3) followed by amplitude channel 0.
const VertexStride = 4

// ErrInvalidResolution is returned when a grid is requested with fewer than
// one cell per side.
var ErrInvalidResolution = errors.New("water: grid resolution must be positive")

// Vertex is one surface sample. Base is the planar position on the unit
// square [-1, 1]² and never changes; Position is rewritten every frame.
type Vertex struct {
	Base      math.Vec3
	Position  math.Vec3
	Amplitude [DirNum]float32
}

// Mesh is a fixed-topology grid of (resolution+1)² vertices.
type Mesh struct {
	vertices   []Vertex
	indices    []uint32
	resolution int
	version    uint64
}

// NewGridMesh builds the unit-square grid with two triangles per cell.
func NewGridMesh(resolution int) (*Mesh, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}

	side := resolution + 1
	m := &Mesh{
		vertices:   make([]Vertex, side*side),
		indices:    make([]uint32, 0, resolution*resolution*6),
		resolution: resolution,
	}

	step := 2 / float32(resolution)
	for y := range side {
		for x := range side {
			base := math.Vec3{X: -1 + float32(x)*step, Y: -1 + float32(y)*step}
			m.vertices[y*side+x] = Vertex{Base: base, Position: base}
		}
	}

	for y := range resolution {
		for x := range resolution {
			i0 := uint32(y*side + x)
			i1 := i0 + 1
			i2 := i0 + uint32(side)
			i3 := i2 + 1
			m.indices = append(m.indices, i0, i1, i2, i1, i3, i2)
		}
	}

	return m, nil
}

// ForEachVertex calls fn with a mutable pointer to every vertex, in index order.
func (m *Mesh) ForEachVertex(fn func(i int, v *Vertex)) {
	for i := range m.vertices {
		fn(i, &m.vertices[i])
	}
	m.version++
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.vertices) }

// GridResolution returns the number of cells per side.
func (m *Mesh) GridResolution() int { return m.resolution }

// Indices returns the triangle index list. The slice must not be modified.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Vertex returns a copy of vertex i.
func (m *Mesh) Vertex(i int) Vertex { return m.vertices[i] }

// Version increases every time vertex data is rewritten.
func (m *Mesh) Version() uint64 { return m.version }

// Bounds returns the axis-aligned bounds of the current positions.
func (m *Mesh) Bounds() (lo, hi math.Vec3) {
	if len(m.vertices) == 0 {
		return lo, hi
	}
	lo = m.vertices[0].Position
	hi = lo
	for i := 1; i < len(m.vertices); i++ {
		p := m.vertices[i].Position
		lo = math.Vec3{X: min(lo.X, p.X), Y: min(lo.Y, p.Y), Z: min(lo.Z, p.Z)}
		hi = math.Vec3{X: max(hi.X, p.X), Y: max(hi.Y, p.Y), Z: max(hi.Z, p.Z)}
	}
	return lo, hi
}

// Interleave packs positions and amplitude channel 0 into dst for GPU upload,
// growing it if needed.
func (m *Mesh) Interleave(dst []float32) []float32 {
	n := len(m.vertices) * VertexStride
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	for i, v := range m.vertices {
		o := i * VertexStride
		dst[o] = v.Position.X
		dst[o+1] = v.Position.Y
		dst[o+2] = v.Position.Z
		dst[o+3] = v.Amplitude[0]
	}
	return dst
}
