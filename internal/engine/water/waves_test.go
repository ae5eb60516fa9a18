package water

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestStokesHeight(t *testing.T) {
	assert.Zero(t, StokesHeight(0, 1, 0.3, 2))
	assert.Zero(t, StokesHeight(1, 0, 0.3, 2))
	assert.Zero(t, StokesHeight(1, -1, 0.3, 2))
	assert.Zero(t, StokesHeight(1, math32.NaN(), 0.3, 2))

	// At θ = 0 all harmonics peak together.
	a, k := float32(0.2), float32(1.5)
	ka := a * k
	want := a * (1 + 0.5*ka + 0.375*ka*ka)
	assert.InDelta(t, want, StokesHeight(a, k, 0, 0), 1e-6)
}

func TestGerstnerDisplacement(t *testing.T) {
	x, z := GerstnerDisplacement(0, 1, 0.5, 1)
	assert.Zero(t, x)
	assert.Zero(t, z)

	x, z = GerstnerDisplacement(1, 0, 0.5, 1)
	assert.Zero(t, x)
	assert.Zero(t, z)

	// Particles move on circles of radius a.
	for _, phase := range []float32{0, 0.7, 2.1, 4} {
		x, z = GerstnerDisplacement(0.3, 2, phase, 0.25)
		assert.InDelta(t, 0.3, math32.Hypot(x, z), 1e-6)
	}
}

func TestParamsTimeStep(t *testing.T) {
	assert.InDelta(t, 0.1, DefaultParams().TimeStep(), 1e-7)
	assert.InDelta(t, 1000, Params{LogTimeStep: 3}.TimeStep(), 1e-3)
}

func TestWaveTypeText(t *testing.T) {
	var w WaveType
	require.NoError(t, w.UnmarshalText([]byte("Stokes")))
	assert.Equal(t, Stokes, w)

	require.NoError(t, yaml.Unmarshal([]byte("gerstner"), &w))
	assert.Equal(t, Gerstner, w)

	assert.Error(t, w.UnmarshalText([]byte("airy")))

	out, err := yaml.Marshal(Stokes)
	require.NoError(t, err)
	assert.Equal(t, "stokes\n", string(out))

	assert.Equal(t, "WaveType(9)", WaveType(9).String())
}
