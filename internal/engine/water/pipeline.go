package water

import "github.com/Faultbox/waveview/pkg/math"

// VertexStore is the mutable vertex storage the pipeline writes into.
type VertexStore interface {
	ForEachVertex(fn func(i int, v *Vertex))
	VertexCount() int
}

// UpdateFrame rewrites every vertex of store from p at simulation time t.
//
// Each vertex has its amplitude channels cleared, its planar base scaled by
// the plane size and channel 0 set to the amplitude. When p.Displace is set
// the selected wave model displaces the scaled position.
func UpdateFrame(store VertexStore, p Params, t float32) {
	k := p.WaveVector.Length()
	dir := p.WaveVector.Normalize()

	store.ForEachVertex(func(_ int, v *Vertex) {
		v.Amplitude = [DirNum]float32{}
		v.Position = v.Base.Scale(p.PlaneSize)
		v.Amplitude[0] = p.Amplitude

		if !p.Displace {
			return
		}
		phase := p.WaveVector.Dot(v.Position.XY())
		switch p.WaveType {
		case Stokes:
			v.Position.Z += StokesHeight(p.Amplitude, k, phase, t)
		case Gerstner:
			dx, dz := GerstnerDisplacement(p.Amplitude, k, phase, t)
			v.Position = v.Position.Add(math.Vec3{X: dir.X * dx, Y: dir.Y * dx, Z: dz})
		}
		if !v.Position.IsFinite() {
			v.Position = v.Base.Scale(p.PlaneSize)
		}
	})
}

// Simulation owns the simulation clock.
type Simulation struct {
	time float32
}

// Step updates store at the current time and then advances the clock by
// p.TimeStep().
func (s *Simulation) Step(store VertexStore, p Params) {
	UpdateFrame(store, p, s.time)
	s.time += p.TimeStep()
}

// Time returns the current simulation time.
func (s *Simulation) Time() float32 { return s.time }

// Reset rewinds the clock to zero.
func (s *Simulation) Reset() { s.time = 0 }
